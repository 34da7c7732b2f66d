// Package merge builds the wide track table out of a binary history and its aligned stars.
package merge

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// Suffixes decide how star columns are named in the merged table.
type Suffixes struct {
	Primary   string
	Secondary string
}

var (
	// Default keeps primary names and marks the secondary with _2.
	Default = Suffixes{Primary: "", Secondary: "_2"}
	// Compare marks both stars, for side by side comparisons.
	Compare = Suffixes{Primary: "_1", Secondary: "_2"}
)

// Merge returns the column union of binary, primary and secondary (which may be nil).
// Binary columns keep their names. A star column whose final name is already taken is
// dropped, the first column of that name wins. All tables must have the same row count.
func Merge(ctx context.Context, binary, primary, secondary *model.Table, sfx Suffixes) (*model.Table, error) {
	if binary == nil || primary == nil {
		return nil, errors.Wrap(model.ErrSchema, "binary and primary tables are required")
	}

	parts := []struct {
		name   string
		table  *model.Table
		suffix string
	}{
		{name: "binary", table: binary},
		{name: "primary", table: primary, suffix: sfx.Primary},
		{name: "secondary", table: secondary, suffix: sfx.Secondary},
	}

	for _, p := range parts {
		if p.table != nil && p.table.Len() != binary.Len() {
			return nil, errors.Wrapf(model.ErrSchema, "%s has %d rows, binary has %d", p.name, p.table.Len(), binary.Len())
		}
	}

	logger := ctxlog.FromContext(ctx)
	res := model.NewTable()
	for _, p := range parts {
		if p.table == nil {
			continue
		}

		for _, col := range p.table.Columns() {
			name := col.Name + p.suffix
			if res.Has(name) {
				logger.Debug("column collision, keeping first", "column", name, "from", p.name)

				continue
			}

			out := col
			if name != col.Name {
				out = &model.Column{Name: name, Kind: col.Kind, Values: col.Values, Text: col.Text}
			}

			err := res.AddColumn(out)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to add %s column %s", p.name, name)
			}
		}
	}

	return res, nil
}
