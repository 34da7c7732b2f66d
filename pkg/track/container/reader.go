package container

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// ReadFile opens the file at path with open and reads it fully into a Container.
// The source is closed before ReadFile returns, on every path.
func ReadFile(ctx context.Context, path string, open Opener) (res *model.Container, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(model.ErrNotFound, "%s: %v", path, err)
	}

	if info.IsDir() {
		return nil, errors.Wrapf(model.ErrNotFound, "%s is a directory", path)
	}

	src, err := open(path)
	if err != nil {
		return nil, errors.Wrapf(model.ErrNotFound, "unable to open %s: %v", path, err)
	}

	defer func() {
		closeErr := src.Close()
		if closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "unable to close %s", path)
		}
	}()

	res, err = Read(src)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	ctxlog.FromContext(ctx).Debug("container read", "path", path, "entries", res.Len())

	return res, nil
}

// Read walks the source from its root. Groups become nested containers, datasets become
// tables or scalar attributes, and group attributes are stored last so they win over
// children of the same name.
func Read(src Source) (*model.Container, error) {
	return readGroup(src.Root())
}

func readGroup(grp Group) (*model.Container, error) {
	res := model.NewContainer()

	members, err := grp.Members()
	if err != nil {
		return nil, errors.Wrap(err, "unable to list members")
	}

	for _, m := range members {
		switch m.Kind {
		case GroupMember:
			sub, err := readSubGroup(grp, m.Name)
			if err != nil {
				return nil, err
			}
			res.Set(m.Name, sub)
		case DatasetMember:
			ds, err := grp.ReadDataset(m.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to read dataset %s", m.Name)
			}
			n, err := datasetNode(m.Name, ds)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset %s", m.Name)
			}
			res.Set(m.Name, n)
		case OtherMember:
		}
	}

	attrs, err := grp.Attributes()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read attributes")
	}

	for _, a := range attrs {
		res.Set(a.Name, a.Attribute)
	}

	return res, nil
}

func readSubGroup(parent Group, name string) (res *model.Container, err error) {
	sub, err := parent.OpenGroup(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open group %s", name)
	}

	defer func() {
		closeErr := sub.Close()
		if closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "unable to close group %s", name)
		}
	}()

	res, err = readGroup(sub)
	if err != nil {
		return nil, errors.Wrapf(err, "group %s", name)
	}

	return res, nil
}

func datasetNode(name string, ds *Dataset) (model.Node, error) {
	tbl, err := DecodeRecords(ds.Raw, ds.Count, ds.RecordSize, ds.Fields)
	if err != nil {
		return nil, err
	}

	if ds.Compound {
		return tbl, nil
	}

	if ds.Count == 1 && tbl.NumColumns() == 1 {
		col := tbl.Columns()[0]

		return &model.Attribute{Values: col.Values, Text: col.Text}, nil
	}

	// plain arrays keep the dataset name as their only column
	if tbl.NumColumns() == 1 {
		col := tbl.Columns()[0]
		out := model.NewTable()
		err = out.AddColumn(&model.Column{Name: name, Kind: col.Kind, Values: col.Values, Text: col.Text})
		if err != nil {
			return nil, err
		}

		return out, nil
	}

	return tbl, nil
}
