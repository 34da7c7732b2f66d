package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolantLocate(t *testing.T) {
	t.Parallel()

	ip := newInterpolant([]float64{1, 2, 4}, &matrix{cols: [][]float64{{0, 0, 0}}})

	tcs := map[string]struct {
		x      float64
		lo     int
		exact  bool
		inside bool
	}{
		"first knot":  {x: 1, lo: 0, exact: true, inside: true},
		"last knot":   {x: 4, lo: 2, exact: true, inside: true},
		"between":     {x: 3, lo: 1, inside: true},
		"below":       {x: 0.999, inside: false},
		"above":       {x: 4.001, inside: false},
		"nan":         {x: math.NaN(), inside: false},
		"middle knot": {x: 2, lo: 1, exact: true, inside: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lo, exact, inside := ip.locate(tc.x)
			assert.Equal(t, tc.inside, inside)
			if !tc.inside {
				return
			}
			assert.Equal(t, tc.lo, lo)
			assert.Equal(t, tc.exact, exact)
		})
	}
}

func TestInterpolantEmpty(t *testing.T) {
	t.Parallel()

	ip := newInterpolant(nil, &matrix{cols: [][]float64{{}}})
	out := []float64{7}
	ip.row(1, out)
	assert.Equal(t, []float64{0}, out)
}

func TestInterpolantUnorderedKeys(t *testing.T) {
	t.Parallel()

	ip := newInterpolant([]float64{4, 1, 2, 2}, &matrix{cols: [][]float64{{40, 10, 20, 25}}})

	tcs := map[string]struct {
		x    float64
		want float64
	}{
		"repeated knot": {x: 2, want: 20},
		"after repeat":  {x: 3, want: 32.5},
		"before repeat": {x: 1.5, want: 15},
		"last knot":     {x: 4, want: 40},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out := make([]float64, 1)
			ip.row(tc.x, out)
			assert.InDelta(t, tc.want, out[0], 1e-12)
		})
	}
}
