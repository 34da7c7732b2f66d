package model

import (
	"github.com/pkg/errors"
)

// Kind is the storage kind of a column.
type Kind int

const (
	// Float columns hold IEEE-754 doubles.
	Float Kind = iota
	// Int columns hold integers widened to float64.
	Int
	// String columns hold text and are not numeric.
	String
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of this kind are stored as float64.
func (k Kind) Numeric() bool {
	return k == Float || k == Int
}

// Column is a named column of a Table.
// Numeric columns use Values, String columns use Text.
type Column struct {
	Name   string
	Kind   Kind
	Values []float64
	Text   []string
}

// Len returns the number of rows of the column.
func (c *Column) Len() int {
	if c.Kind == String {
		return len(c.Text)
	}

	return len(c.Values)
}

func (c *Column) take(rows []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == String {
		out.Text = make([]string, len(rows))
		for i, r := range rows {
			out.Text[i] = c.Text[r]
		}

		return out
	}

	out.Values = make([]float64, len(rows))
	for i, r := range rows {
		out.Values[i] = c.Values[r]
	}

	return out
}

// Table is an ordered set of equally long named columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// NewFloatTable creates a table from float columns given in order.
func NewFloatTable(names []string, values [][]float64) (*Table, error) {
	if len(names) != len(values) {
		return nil, errors.Wrapf(ErrSchema, "%d names for %d columns", len(names), len(values))
	}

	t := NewTable()
	for i, name := range names {
		err := t.AddFloat(name, values[i])
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

// AddColumn appends a column. The first column fixes the row count of the table.
func (t *Table) AddColumn(col *Column) error {
	if _, ok := t.index[col.Name]; ok {
		return errors.Wrapf(ErrSchema, "duplicate column %q", col.Name)
	}

	if len(t.columns) > 0 && col.Len() != t.rows {
		return errors.Wrapf(ErrSchema, "column %q has %d rows, table has %d", col.Name, col.Len(), t.rows)
	}

	if len(t.columns) == 0 {
		t.rows = col.Len()
	}

	t.index[col.Name] = len(t.columns)
	t.columns = append(t.columns, col)

	return nil
}

// AddFloat appends a float column.
func (t *Table) AddFloat(name string, values []float64) error {
	return t.AddColumn(&Column{Name: name, Kind: Float, Values: values})
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Has reports whether the table has a column with this name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]

	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}

	return t.columns[i], true
}

// Floats returns the values of a numeric column.
func (t *Table) Floats(name string) ([]float64, bool) {
	col, ok := t.Column(name)
	if !ok || !col.Kind.Numeric() {
		return nil, false
	}

	return col.Values, true
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}

	return names
}

// Take returns a new table holding the given rows, in the given order.
func (t *Table) Take(rows []int) *Table {
	out := NewTable()
	for _, col := range t.columns {
		out.index[col.Name] = len(out.columns)
		out.columns = append(out.columns, col.take(rows))
	}
	out.rows = len(rows)

	return out
}

// Without returns a new table sharing the column storage of t, minus the named columns.
func (t *Table) Without(names ...string) *Table {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}

	out := NewTable()
	out.rows = t.rows
	for _, col := range t.columns {
		if _, ok := drop[col.Name]; ok {
			continue
		}
		out.index[col.Name] = len(out.columns)
		out.columns = append(out.columns, col)
	}

	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable()
	out.rows = t.rows
	for _, col := range t.columns {
		cp := &Column{Name: col.Name, Kind: col.Kind}
		if col.Values != nil {
			cp.Values = append([]float64(nil), col.Values...)
		}
		if col.Text != nil {
			cp.Text = append([]string(nil), col.Text...)
		}
		out.index[cp.Name] = len(out.columns)
		out.columns = append(out.columns, cp)
	}

	return out
}
