// Package export writes merged track tables as CSV, JSON, a terminal table or into a
// SQLite database.
package export

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrFormat is returned for an unknown output format.
var ErrFormat = errors.New("unknown output format")

// Format is an output format.
type Format string

const (
	CSV    Format = "csv"
	JSON   Format = "json"
	Table  Format = "table"
	SQLite Format = "sqlite"
)

// ParseFormat returns the format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case CSV, JSON, Table, SQLite:
		return f, nil
	default:
		return "", errors.Wrapf(ErrFormat, "%q", s)
	}
}

// Ext is the file extension of the format, with its dot.
func (f Format) Ext() string {
	switch f {
	case Table:
		return ".txt"
	case SQLite:
		return ".sqlite"
	default:
		return "." + string(f)
	}
}
