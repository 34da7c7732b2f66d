package align

import (
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// DefaultKey is the column used as the alignment axis.
const DefaultKey = "model_number"

// Option configures an Aligner.
type Option func(a *Aligner)

// WithKey sets the sequence key column.
func WithKey(key string) Option {
	return func(a *Aligner) {
		a.key = key
	}
}

// Aligner resamples star histories onto the binary history's sequence key.
type Aligner struct {
	key string
}

// New creates an Aligner using DefaultKey unless overridden.
func New(opts ...Option) *Aligner {
	a := &Aligner{key: DefaultKey}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Key returns the sequence key column name.
func (a *Aligner) Key() string {
	return a.key
}

// Track is the result of aligning the star histories of one binary.
// Secondary is nil when the container holds a single star.
type Track struct {
	Binary    *model.Table
	Primary   *model.Table
	Secondary *model.Table
}

// AlignTrack renumbers the primary's key to start at 1, truncates the binary table to the
// primary's last renumbered key, and resamples both stars onto the truncated binary key.
// Aligned star tables do not carry the key column.
func (a *Aligner) AlignTrack(binary, primary, secondary *model.Table) (*Track, error) {
	renumbered, err := a.Renumber(primary)
	if err != nil {
		return nil, errors.Wrap(err, "unable to renumber primary")
	}

	keys, _ := renumbered.Floats(a.key)
	truncated, err := a.Truncate(binary, maxFinite(keys))
	if err != nil {
		return nil, errors.Wrap(err, "unable to truncate binary")
	}

	binKeys, _ := truncated.Floats(a.key)

	res := &Track{Binary: truncated}
	res.Primary, err = a.Align(renumbered, binKeys)
	if err != nil {
		return nil, errors.Wrap(err, "unable to align primary")
	}

	if secondary != nil {
		res.Secondary, err = a.Align(secondary, binKeys)
		if err != nil {
			return nil, errors.Wrap(err, "unable to align secondary")
		}
	}

	return res, nil
}

// Renumber returns a copy of t whose key is shifted so its first value is 1.
func (a *Aligner) Renumber(t *model.Table) (*model.Table, error) {
	keys, err := a.keyColumn(t)
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, errors.Wrap(model.ErrSchema, "empty table")
	}

	offset := keys[0] - 1
	shifted := make([]float64, len(keys))
	for i, k := range keys {
		shifted[i] = k - offset
	}

	out := model.NewTable()
	for _, col := range t.Columns() {
		if col.Name == a.key {
			col = &model.Column{Name: col.Name, Kind: col.Kind, Values: shifted}
		}

		err := out.AddColumn(col)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Truncate keeps the rows of t whose key is at most maxKey.
func (a *Aligner) Truncate(t *model.Table, maxKey float64) (*model.Table, error) {
	keys, err := a.keyColumn(t)
	if err != nil {
		return nil, err
	}

	rows := make([]int, 0, len(keys))
	for i, k := range keys {
		if k <= maxKey {
			rows = append(rows, i)
		}
	}

	return t.Take(rows), nil
}

// Align evaluates every column of star at the given keys. Keys outside the star's own key
// range produce 0.0 in every column. Every column of star must be numeric.
func (a *Aligner) Align(star *model.Table, at []float64) (*model.Table, error) {
	keys, err := a.keyColumn(star)
	if err != nil {
		return nil, err
	}

	m, err := toMatrix(star.Without(a.key))
	if err != nil {
		return nil, err
	}

	ip := newInterpolant(keys, m)

	out := make([][]float64, len(m.cols))
	for c := range out {
		out[c] = make([]float64, len(at))
	}

	row := make([]float64, len(m.cols))
	for r, x := range at {
		ip.row(x, row)
		for c, v := range row {
			out[c][r] = v
		}
	}

	res := model.NewTable()
	for c, name := range m.names {
		err := res.AddFloat(name, out[c])
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (a *Aligner) keyColumn(t *model.Table) ([]float64, error) {
	col, ok := t.Column(a.key)
	if !ok {
		return nil, errors.Wrapf(model.ErrSchema, "missing sequence key %q", a.key)
	}

	if !col.Kind.Numeric() {
		return nil, errors.Wrapf(model.ErrSchema, "sequence key %q is not numeric", a.key)
	}

	return col.Values, nil
}

func toMatrix(t *model.Table) (*matrix, error) {
	m := &matrix{index: make(map[string]int, t.NumColumns())}
	for _, col := range t.Columns() {
		if !col.Kind.Numeric() {
			return nil, errors.Wrapf(model.ErrSchema, "column %q is %s, numeric alignment needs float64 columns", col.Name, col.Kind)
		}

		m.index[col.Name] = len(m.cols)
		m.names = append(m.names, col.Name)
		m.cols = append(m.cols, col.Values)
	}

	return m, nil
}

func maxFinite(values []float64) float64 {
	res := math.Inf(-1)
	for _, v := range values {
		if !math.IsNaN(v) && v > res {
			res = v
		}
	}

	return res
}
