package derive

import (
	"github.com/pkg/errors"
)

// Sentinel replaces the logarithm of an exactly zero ratio in the sentinel-guarded fields.
// It is an out-of-physical-range marker that keeps the column finite, not a measured value.
const Sentinel = 99.0

// ErrInvalidRegistry is returned when a registry declares duplicate fields or fields that
// depend on fields declared after them.
var ErrInvalidRegistry = errors.New("invalid derived-field registry")

// Inputs holds the required columns of a field, by name.
type Inputs map[string][]float64

// ComputeFunc computes a column of rows values from its inputs.
type ComputeFunc func(in Inputs, rows int) ([]float64, error)

// Field is a derived column: its name, the columns it needs, and how to compute it.
type Field struct {
	Name     string
	Requires []string
	Compute  ComputeFunc
	// Doc is a one-line description shown by listings.
	Doc string
}
