// Package h5 binds HDF5 files to the container.Source interface through gonum/hdf5.
//
// Datasets are read with their own file datatype as memory type, so the raw record
// bytes arrive unconverted and are decoded by container.DecodeRecords. The binding
// cannot enumerate attributes, so group attributes are probed by name.
package h5

import (
	"github.com/pkg/errors"
	"gonum.org/v1/hdf5"

	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// Option configures the opener.
type Option func(o *options)

type options struct {
	attributes []string
}

// WithAttributes sets the attribute names probed on every group.
func WithAttributes(names ...string) Option {
	return func(o *options) {
		o.attributes = append(o.attributes, names...)
	}
}

// Opener returns a container.Opener reading HDF5 files.
func Opener(opts ...Option) container.Opener {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return func(path string) (container.Source, error) {
		return open(path, o)
	}
}

type source struct {
	file *hdf5.File
	root *group
}

func open(path string, o *options) (*source, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open hdf5 file %s", path)
	}

	return &source{
		file: f,
		root: &group{fg: &f.CommonFG, opts: o},
	}, nil
}

func (s *source) Root() container.Group {
	return s.root
}

func (s *source) Close() error {
	return s.file.Close()
}

type group struct {
	fg    *hdf5.CommonFG
	close func() error
	opts  *options
}

func (g *group) Members() ([]container.Member, error) {
	n, err := g.fg.NumObjects()
	if err != nil {
		return nil, errors.Wrap(err, "unable to count objects")
	}

	res := make([]container.Member, 0, n)
	for i := uint(0); i < n; i++ {
		name, err := g.fg.ObjectNameByIndex(i)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to get name of object %d", i)
		}

		typ, err := g.fg.ObjectTypeByIndex(i)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to get type of object %s", name)
		}

		kind := container.OtherMember
		switch typ {
		case hdf5.H5G_GROUP:
			kind = container.GroupMember
		case hdf5.H5G_DATASET:
			kind = container.DatasetMember
		}
		res = append(res, container.Member{Name: name, Kind: kind})
	}

	return res, nil
}

func (g *group) OpenGroup(name string) (container.Group, error) {
	sub, err := g.fg.OpenGroup(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open group %s", name)
	}

	return &group{fg: &sub.CommonFG, close: sub.Close, opts: g.opts}, nil
}

func (g *group) Close() error {
	if g.close == nil {
		return nil
	}

	return g.close()
}

func (g *group) ReadDataset(name string) (*container.Dataset, error) {
	dset, err := g.fg.OpenDataset(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open dataset %s", name)
	}
	defer dset.Close()

	dtype, err := dset.Datatype()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get datatype of %s", name)
	}
	defer dtype.Close()

	space := dset.Space()
	defer space.Close()

	count := space.SimpleExtentNPoints()
	recordSize := int(dtype.Size())

	fields, compound, err := layout(dtype)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", name)
	}

	raw := make([]byte, count*recordSize)
	if count > 0 {
		err = dset.Read(&raw)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read dataset %s", name)
		}
	}

	return &container.Dataset{
		Compound:   compound,
		Fields:     fields,
		RecordSize: recordSize,
		Count:      count,
		Raw:        raw,
	}, nil
}

func layout(dtype *hdf5.Datatype) ([]container.Field, bool, error) {
	if dtype.Class() != hdf5.T_COMPOUND {
		return []container.Field{{
			Offset: 0,
			Size:   int(dtype.Size()),
			Class:  fieldClass(dtype),
		}}, false, nil
	}

	ct := &hdf5.CompoundType{Datatype: *dtype}
	fields := make([]container.Field, ct.NMembers())
	for i := range fields {
		mt, err := ct.MemberType(i)
		if err != nil {
			return nil, true, errors.Wrapf(err, "unable to get type of member %s", ct.MemberName(i))
		}
		fields[i] = container.Field{
			Name:   ct.MemberName(i),
			Offset: ct.MemberOffset(i),
			Size:   int(mt.Size()),
			Class:  fieldClass(mt),
		}
		mt.Close()
	}

	return fields, true, nil
}

var unsignedTypes = []*hdf5.Datatype{
	hdf5.T_NATIVE_UINT8,
	hdf5.T_NATIVE_UINT16,
	hdf5.T_NATIVE_UINT32,
	hdf5.T_NATIVE_UINT64,
}

func fieldClass(dt *hdf5.Datatype) container.FieldClass {
	switch dt.Class() {
	case hdf5.T_FLOAT:
		return container.ClassFloat
	case hdf5.T_INTEGER:
		for _, u := range unsignedTypes {
			if dt.Equal(u) {
				return container.ClassUint
			}
		}

		return container.ClassInt
	case hdf5.T_STRING:
		return container.ClassString
	default:
		return container.ClassOther
	}
}

func (g *group) Attributes() ([]container.NamedAttribute, error) {
	res := make([]container.NamedAttribute, 0, len(g.opts.attributes))
	for _, name := range g.opts.attributes {
		attr, err := g.fg.OpenAttribute(name)
		if err != nil {
			// not attached to this group
			continue
		}

		values, err := readAttribute(attr)
		attr.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read attribute %s", name)
		}

		res = append(res, container.NamedAttribute{Name: name, Attribute: &model.Attribute{Values: values}})
	}

	return res, nil
}

func readAttribute(attr *hdf5.Attribute) ([]float64, error) {
	space := attr.Space()
	defer space.Close()

	n := space.SimpleExtentNPoints()
	if n <= 1 {
		var v float64
		err := attr.Read(&v, hdf5.T_NATIVE_DOUBLE)
		if err != nil {
			return nil, err
		}

		return []float64{v}, nil
	}

	values := make([]float64, n)
	err := attr.Read(&values, hdf5.T_NATIVE_DOUBLE)
	if err != nil {
		return nil, err
	}

	return values, nil
}
