package derive

import (
	"fmt"
	"io"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-binarytrack/internal/store"
)

const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceWeight     int
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeWeight       int
	EdgeAttributes   map[string]string
}

const maxRGB = 240

var statusColors = map[Status]string{
	Exists:       "gray40",
	MissingInput: "gray80",
}

// Draw writes the dependency graph of r in DOT format. When report is not nil, fields are
// coloured by outcome: computed fields on a blue to red gradient of their compute time,
// existing fields dark gray, fields with missing inputs light gray and dashed.
func Draw(w io.Writer, r *Registry, report *Report) error {
	g, st, err := r.Graph()
	if err != nil {
		return errors.Wrap(err, "unable to build graph")
	}

	if report != nil {
		err = decorate(st, report)
		if err != nil {
			return errors.Wrap(err, "unable to decorate graph")
		}
	}

	vertices, err := st.ListVertices()
	if err != nil {
		return errors.Wrap(err, "unable to list vertices")
	}

	desc, err := generateDOT(g, vertices, func(d *description) {
		d.Attributes["rankdir"] = "LR"
	})
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	return renderDOT(w, desc)
}

func decorate(st store.CustomStore[string, string], report *Report) error {
	gradient, err := elapsedGradient(report)
	if err != nil {
		return err
	}

	for _, e := range report.Entries {
		var options []func(*graph.VertexProperties)

		switch e.Status {
		case Computed:
			options = append(options,
				graph.VertexAttribute("xlabel", e.Elapsed.String()),
				graph.VertexAttribute("color", gradient[e.Elapsed]),
			)
		case MissingInput:
			options = append(options,
				graph.VertexAttribute("xlabel", e.Status.String()),
				graph.VertexAttribute("color", statusColors[e.Status]),
				graph.VertexAttribute("style", "dashed"),
			)
		default:
			options = append(options,
				graph.VertexAttribute("xlabel", e.Status.String()),
				graph.VertexAttribute("color", statusColors[e.Status]),
			)
		}

		err := st.UpdateVertex(e.Name, options...)
		if err != nil && !errors.Is(err, graph.ErrVertexNotFound) {
			return errors.Wrapf(err, "unable to update vertex %s", e.Name)
		}
	}

	return nil
}

func elapsedGradient(report *Report) (map[time.Duration]string, error) {
	res := make(map[time.Duration]string)

	var minValue, maxValue time.Duration
	first := true
	for _, e := range report.Entries {
		if e.Status != Computed {
			continue
		}

		res[e.Elapsed] = ""
		if first || e.Elapsed < minValue {
			minValue = e.Elapsed
		}
		if first || e.Elapsed > maxValue {
			maxValue = e.Elapsed
		}
		first = false
	}

	for curr := range res {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(curr-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		c, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return nil, errors.Wrap(err, "unable to get colour")
		}

		res[curr] = c.ToHEX().String()
	}

	return res, nil
}

// generateDOT describes g, listing vertices in the given order.
func generateDOT(g graph.Graph[string, string], vertices []string, options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   make(map[string]string),
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for _, vertex := range vertices {
		_, props, err := g.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrapf(err, "unable to get vertex %s", vertex)
		}

		attributes := make(map[string]string, len(props.Attributes))
		htmlAttributes := make(map[string]string)
		for k, v := range props.Attributes {
			switch k {
			case "xlabel":
				htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, v)
			case kindAttribute:
				if v == kindColumn {
					attributes["shape"] = "box"
				}
			default:
				attributes[k] = v
			}
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     props.Weight,
			SourceAttributes: attributes,
			HTMLAttributes:   htmlAttributes,
		})

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(w io.Writer, d description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(w, d)
	if err != nil {
		return errors.Wrap(err, "unable to render template")
	}

	return nil
}
