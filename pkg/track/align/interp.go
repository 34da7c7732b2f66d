package align

import (
	"math"
	"sort"
)

// matrix is the homogeneous float64 view of a star table: one slice per column,
// addressed by name through index.
type matrix struct {
	names []string
	index map[string]int
	cols  [][]float64
}

// interpolant evaluates every column of a matrix as a piecewise-linear function of a key.
// Knots are sorted by key. Evaluating outside [first knot, last knot] yields 0.0.
type interpolant struct {
	knots []float64
	cols  [][]float64
}

func newInterpolant(key []float64, m *matrix) *interpolant {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return key[order[a]] < key[order[b]]
	})

	ip := &interpolant{
		knots: make([]float64, len(order)),
		cols:  make([][]float64, len(m.cols)),
	}
	for i, r := range order {
		ip.knots[i] = key[r]
	}

	for c, col := range m.cols {
		sorted := make([]float64, len(order))
		for i, r := range order {
			sorted[i] = col[r]
		}
		ip.cols[c] = sorted
	}

	return ip
}

// locate returns the segment [lo, lo+1] holding x, whether x is a knot (exact), and
// whether x lies in the domain at all.
func (ip *interpolant) locate(x float64) (lo int, exact, inside bool) {
	n := len(ip.knots)
	if n == 0 || math.IsNaN(x) || x < ip.knots[0] || x > ip.knots[n-1] {
		return 0, false, false
	}

	// first knot >= x
	i := sort.SearchFloat64s(ip.knots, x)
	if ip.knots[i] == x {
		return i, true, true
	}

	return i - 1, false, true
}

// row writes the interpolated value of every column at x into out.
func (ip *interpolant) row(x float64, out []float64) {
	lo, exact, inside := ip.locate(x)
	switch {
	case !inside:
		for c := range out {
			out[c] = 0.0
		}
	case exact:
		for c, col := range ip.cols {
			out[c] = col[lo]
		}
	default:
		x0, x1 := ip.knots[lo], ip.knots[lo+1]
		t := (x - x0) / (x1 - x0)
		for c, col := range ip.cols {
			y0, y1 := col[lo], col[lo+1]
			out[c] = y0 + t*(y1-y0)
		}
	}
}
