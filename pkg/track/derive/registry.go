package derive

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/internal/store"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// Status is the outcome of one field in a derivation pass.
type Status int

const (
	// Computed means the column was appended.
	Computed Status = iota
	// Exists means the table already had a column of that name.
	Exists
	// MissingInput means at least one required column was absent.
	MissingInput
)

func (s Status) String() string {
	switch s {
	case Computed:
		return "computed"
	case Exists:
		return "exists"
	case MissingInput:
		return "missing input"
	default:
		return "unknown"
	}
}

// Entry reports what happened to one field.
type Entry struct {
	Name    string
	Status  Status
	Missing []string
	Elapsed time.Duration
}

// Report lists the entries of a derivation pass in registry order.
type Report struct {
	Entries []Entry
}

// Computed returns the names of the fields appended by the pass.
func (r *Report) Computed() []string {
	var res []string
	for _, e := range r.Entries {
		if e.Status == Computed {
			res = append(res, e.Name)
		}
	}

	return res
}

// Registry is an ordered list of derived fields. A field may only depend on table
// columns and on fields declared before it.
type Registry struct {
	fields []Field
}

// New creates a registry evaluating fields in the given order.
func New(fields ...Field) *Registry {
	return &Registry{fields: append([]Field(nil), fields...)}
}

// Fields returns the fields in evaluation order.
func (r *Registry) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// With returns a registry with fields appended after the existing ones.
func (r *Registry) With(fields ...Field) *Registry {
	return New(append(r.Fields(), fields...)...)
}

// Without returns a registry without the named fields.
func (r *Registry) Without(names ...string) *Registry {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}

	res := &Registry{}
	for _, f := range r.fields {
		if _, ok := drop[f.Name]; !ok {
			res.fields = append(res.fields, f)
		}
	}

	return res
}

// Apply appends every field whose inputs are present and whose name is free, in order.
// Existing columns are never touched; running Apply twice appends nothing the second time.
func (r *Registry) Apply(ctx context.Context, t *model.Table) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	report := &Report{Entries: make([]Entry, 0, len(r.fields))}

	for _, f := range r.fields {
		if t.Has(f.Name) {
			report.Entries = append(report.Entries, Entry{Name: f.Name, Status: Exists})

			continue
		}

		in := make(Inputs, len(f.Requires))
		var missing []string
		for _, name := range f.Requires {
			values, ok := t.Floats(name)
			if !ok {
				missing = append(missing, name)

				continue
			}
			in[name] = values
		}

		if len(missing) > 0 {
			logger.Debug("derived field skipped", "field", f.Name, "missing", missing)
			report.Entries = append(report.Entries, Entry{Name: f.Name, Status: MissingInput, Missing: missing})

			continue
		}

		start := time.Now()
		values, err := f.Compute(in, t.Len())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to compute %s", f.Name)
		}

		if len(values) != t.Len() {
			return nil, errors.Wrapf(model.ErrSchema, "field %s computed %d rows for a table of %d", f.Name, len(values), t.Len())
		}

		err = t.AddFloat(f.Name, values)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to append %s", f.Name)
		}

		report.Entries = append(report.Entries, Entry{Name: f.Name, Status: Computed, Elapsed: time.Since(start)})
	}

	return report, nil
}

// Validate checks names are unique and dependencies only point backwards.
func (r *Registry) Validate() error {
	_, _, err := r.Graph()

	return err
}

const (
	kindAttribute = "kind"
	kindField     = "field"
	kindColumn    = "column"
)

// Graph returns the dependency graph of the registry: one vertex per field and per plain
// input column, one edge per dependency. The store allows in-place vertex updates.
func (r *Registry) Graph() (graph.Graph[string, string], store.CustomStore[string, string], error) {
	var st store.CustomStore[string, string] = store.NewOrderedStore[string, string]()
	g := graph.NewWithStore(graph.StringHash, st, graph.Directed(), graph.PreventCycles())

	position := make(map[string]int, len(r.fields))
	for i, f := range r.fields {
		err := g.AddVertex(f.Name, graph.VertexAttribute(kindAttribute, kindField))
		if errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, nil, errors.Wrapf(ErrInvalidRegistry, "duplicate field %s", f.Name)
		}
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to add field %s", f.Name)
		}
		position[f.Name] = i
	}

	for i, f := range r.fields {
		for _, req := range f.Requires {
			pos, isField := position[req]
			if isField && pos >= i {
				return nil, nil, errors.Wrapf(ErrInvalidRegistry, "field %s depends on %s declared after it", f.Name, req)
			}

			if !isField {
				err := g.AddVertex(req, graph.VertexAttribute(kindAttribute, kindColumn))
				if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
					return nil, nil, errors.Wrapf(err, "unable to add column %s", req)
				}
			}

			err := g.AddEdge(req, f.Name)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, nil, errors.Wrapf(err, "unable to link %s to %s", req, f.Name)
			}
		}
	}

	return g, st, nil
}
