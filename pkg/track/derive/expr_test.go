package derive_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-binarytrack/pkg/track/derive"
)

func TestExpression(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		requires []string
		expr     string
		want     []float64
	}{
		"arithmetic": {
			requires: []string{"star_1_mass", "star_2_mass"},
			expr:     "star_1_mass + star_2_mass",
			want:     []float64{13, 0, 2},
		},
		"math module": {
			requires: []string{"star_1_mass"},
			expr:     "math.pow(star_1_mass, 2)",
			want:     []float64{100, 0, 1},
		},
		"division by zero is nan": {
			requires: []string{"star_1_mass", "star_2_mass"},
			expr:     "star_1_mass / star_2_mass",
			want:     []float64{10.0 / 3, math.NaN(), 1},
		},
		"boolean": {
			requires: []string{"star_1_mass"},
			expr:     "star_1_mass > 5",
			want:     []float64{1, 0, 0},
		},
		"non number is nan": {
			requires: []string{"star_1_mass"},
			expr:     `"x"`,
			want:     []float64{math.NaN(), math.NaN(), math.NaN()},
		},
		"constant": {
			expr: "1.5",
			want: []float64{1.5, 1.5, 1.5},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			field, err := derive.Expression("custom", tc.requires, tc.expr)
			require.NoError(t, err)

			tbl := table(t, []string{"star_1_mass", "star_2_mass"}, []float64{10, 0, 1}, []float64{3, 0, 1})
			_, err = derive.New(field).Apply(context.Background(), tbl)
			require.NoError(t, err)

			got := column(t, tbl, "custom")
			opt := cmpopts.EquateNaNs()
			assert.True(t, cmp.Equal(tc.want, got, opt), cmp.Diff(tc.want, got, opt))
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name     string
		requires []string
		expr     string
	}{
		"no name":      {expr: "1"},
		"empty":        {name: "x", expr: "  "},
		"syntax error": {name: "x", requires: []string{"a"}, expr: "a +"},
		"undefined":    {name: "x", requires: []string{"a"}, expr: "b + 1"},
		"bad column":   {name: "x", requires: []string{"log-L"}, expr: "1"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := derive.Expression(tc.name, tc.requires, tc.expr)
			assert.ErrorIs(t, err, derive.ErrExpression)
		})
	}
}
