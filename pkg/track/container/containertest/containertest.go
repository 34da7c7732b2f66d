// Package containertest provides an in-memory container.Source for tests.
package containertest

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// ErrMissing is returned when a test group has no member of the requested name.
var ErrMissing = errors.New("member missing")

// Dataset is a float64 compound dataset given column by column.
type Dataset struct {
	Names   []string
	Columns [][]float64
}

// Group is an in-memory group. Children are kept in insertion order.
type Group struct {
	order    []string
	groups   map[string]*Group
	datasets map[string]*container.Dataset
	attrs    []container.NamedAttribute

	// Opened counts open handles on this group, Closed counts releases.
	Opened, Closed int
	// FailDataset makes ReadDataset fail for this name.
	FailDataset string
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{
		groups:   make(map[string]*Group),
		datasets: make(map[string]*container.Dataset),
	}
}

// AddGroup adds and returns a nested group.
func (g *Group) AddGroup(name string) *Group {
	sub := NewGroup()
	g.order = append(g.order, name)
	g.groups[name] = sub

	return sub
}

// AddTable adds a compound float64 dataset.
func (g *Group) AddTable(name string, ds Dataset) *Group {
	g.order = append(g.order, name)
	g.datasets[name] = Encode(ds)

	return g
}

// AddRaw adds a raw dataset as is.
func (g *Group) AddRaw(name string, ds *container.Dataset) *Group {
	g.order = append(g.order, name)
	g.datasets[name] = ds

	return g
}

// AddAttr attaches a numeric attribute.
func (g *Group) AddAttr(name string, values ...float64) *Group {
	g.attrs = append(g.attrs, container.NamedAttribute{Name: name, Attribute: &model.Attribute{Values: values}})

	return g
}

// Members implements container.Group.
func (g *Group) Members() ([]container.Member, error) {
	res := make([]container.Member, 0, len(g.order))
	for _, name := range g.order {
		kind := container.DatasetMember
		if _, ok := g.groups[name]; ok {
			kind = container.GroupMember
		}
		res = append(res, container.Member{Name: name, Kind: kind})
	}

	return res, nil
}

// OpenGroup implements container.Group.
func (g *Group) OpenGroup(name string) (container.Group, error) {
	sub, ok := g.groups[name]
	if !ok {
		return nil, errors.Wrap(ErrMissing, name)
	}
	sub.Opened++

	return sub, nil
}

// ReadDataset implements container.Group.
func (g *Group) ReadDataset(name string) (*container.Dataset, error) {
	if name == g.FailDataset {
		return nil, errors.Wrap(ErrMissing, name)
	}

	ds, ok := g.datasets[name]
	if !ok {
		return nil, errors.Wrap(ErrMissing, name)
	}

	return ds, nil
}

// Attributes implements container.Group.
func (g *Group) Attributes() ([]container.NamedAttribute, error) {
	return g.attrs, nil
}

// Close implements container.Group.
func (g *Group) Close() error {
	g.Closed++

	return nil
}

// Source is an in-memory container.Source.
type Source struct {
	Tree   *Group
	Closed bool
}

// Root implements container.Source.
func (s *Source) Root() container.Group {
	return s.Tree
}

// Close implements container.Source.
func (s *Source) Close() error {
	s.Closed = true

	return nil
}

// Opener returns an opener that always hands out src, whatever the path.
func Opener(src *Source) container.Opener {
	return func(string) (container.Source, error) {
		return src, nil
	}
}

// Encode lays out ds as little-endian float64 records.
func Encode(ds Dataset) *container.Dataset {
	count := 0
	if len(ds.Columns) > 0 {
		count = len(ds.Columns[0])
	}

	recordSize := 8 * len(ds.Names)
	fields := make([]container.Field, len(ds.Names))
	for i, name := range ds.Names {
		fields[i] = container.Field{Name: name, Offset: 8 * i, Size: 8, Class: container.ClassFloat}
	}

	raw := make([]byte, count*recordSize)
	for row := range count {
		for i, col := range ds.Columns {
			binary.LittleEndian.PutUint64(raw[row*recordSize+8*i:], math.Float64bits(col[row]))
		}
	}

	return &container.Dataset{
		Compound:   true,
		Fields:     fields,
		RecordSize: recordSize,
		Count:      count,
		Raw:        raw,
	}
}

// BinaryTrack builds the usual history layout: history/{binary,star1[,star2]}.
func BinaryTrack(bin, star1, star2 *Dataset) *Source {
	root := NewGroup()
	history := root.AddGroup("history")
	if bin != nil {
		history.AddTable("binary", *bin)
	}
	if star1 != nil {
		history.AddTable("star1", *star1)
	}
	if star2 != nil {
		history.AddTable("star2", *star2)
	}

	return &Source{Tree: root}
}
