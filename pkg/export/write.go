package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// Write writes t to w in a stream format. SQLite is not a stream format, use OpenSQLite.
func Write(w io.Writer, f Format, t *model.Table) error {
	switch f {
	case CSV:
		return writeCSV(w, t)
	case JSON:
		return writeJSON(w, t)
	case Table:
		return writeTable(w, t)
	case SQLite:
		return errors.Wrap(ErrFormat, "sqlite needs a database file")
	default:
		return errors.Wrapf(ErrFormat, "%q", f)
	}
}

func cell(c *model.Column, row int) string {
	if c.Kind == model.String {
		return c.Text[row]
	}

	return strconv.FormatFloat(c.Values[row], 'g', -1, 64)
}

func writeCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)

	err := cw.Write(t.Names())
	if err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	cols := t.Columns()
	record := make([]string, len(cols))
	for row := range t.Len() {
		for i, c := range cols {
			record[i] = cell(c, row)
		}

		err = cw.Write(record)
		if err != nil {
			return errors.Wrapf(err, "unable to write row %d", row)
		}
	}

	cw.Flush()

	return errors.Wrap(cw.Error(), "unable to flush csv")
}

type jsonColumn struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Values []any  `json:"values"`
}

type jsonTable struct {
	Rows    int          `json:"rows"`
	Columns []jsonColumn `json:"columns"`
}

// writeJSON writes one object per column. Non-finite values become null.
func writeJSON(w io.Writer, t *model.Table) error {
	out := jsonTable{Rows: t.Len(), Columns: make([]jsonColumn, 0, t.NumColumns())}
	for _, c := range t.Columns() {
		jc := jsonColumn{Name: c.Name, Kind: c.Kind.String(), Values: make([]any, c.Len())}
		for row := range c.Len() {
			switch {
			case c.Kind == model.String:
				jc.Values[row] = c.Text[row]
			case math.IsNaN(c.Values[row]) || math.IsInf(c.Values[row], 0):
				jc.Values[row] = nil
			default:
				jc.Values[row] = c.Values[row]
			}
		}
		out.Columns = append(out.Columns, jc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(out), "unable to encode json")
}

func writeTable(w io.Writer, t *model.Table) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, 0, t.NumColumns())
	for _, name := range t.Names() {
		header = append(header, name)
	}
	tw.AppendHeader(header)

	cols := t.Columns()
	for row := range t.Len() {
		r := make(table.Row, len(cols))
		for i, c := range cols {
			r[i] = cell(c, row)
		}
		tw.AppendRow(r)
	}

	tw.Render()

	return nil
}
