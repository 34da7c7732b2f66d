// Package align brings star histories onto the index of a binary history.
//
// Each star table is viewed as a float64 matrix keyed by its sequence column and
// interpolated piecewise-linearly at the binary table's keys. Evaluation never
// extrapolates: rows whose key lies outside a star's own key range are filled with 0.0.
package align
