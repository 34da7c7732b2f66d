package merge_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-binarytrack/pkg/track/merge"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

func table(t *testing.T, names []string, cols ...[]float64) *model.Table {
	t.Helper()

	tbl, err := model.NewFloatTable(names, cols)
	require.NoError(t, err)

	return tbl
}

func TestMerge(t *testing.T) {
	t.Parallel()

	bin := table(t, []string{"model_number", "age", "star_1_mass"}, []float64{1, 2}, []float64{0, 1}, []float64{9, 8})
	primary := table(t, []string{"mass", "age", "log_Teff"}, []float64{10, 9}, []float64{5, 6}, []float64{4, 4})
	secondary := table(t, []string{"mass", "log_Teff"}, []float64{3, 3}, []float64{3.5, 3.6})

	tcs := map[string]struct {
		secondary *model.Table
		suffixes  merge.Suffixes
		want      []string
	}{
		"two stars": {
			secondary: secondary,
			suffixes:  merge.Default,
			want:      []string{"model_number", "age", "star_1_mass", "mass", "log_Teff", "mass_2", "log_Teff_2"},
		},
		"single star": {
			suffixes: merge.Default,
			want:     []string{"model_number", "age", "star_1_mass", "mass", "log_Teff"},
		},
		"compare": {
			secondary: secondary,
			suffixes:  merge.Compare,
			want:      []string{"model_number", "age", "star_1_mass", "mass_1", "age_1", "log_Teff_1", "mass_2", "log_Teff_2"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := merge.Merge(context.Background(), bin, primary, tc.secondary, tc.suffixes)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Names())
			assert.Equal(t, 2, got.Len())

			// binary age wins over the primary's
			age, _ := got.Floats("age")
			assert.Equal(t, []float64{0, 1}, age)
		})
	}
}

func TestMergeSecondaryNamesAreSuffixedAndUnique(t *testing.T) {
	t.Parallel()

	bin := table(t, []string{"model_number", "mass_2"}, []float64{1}, []float64{-1})
	primary := table(t, []string{"mass", "radius"}, []float64{1}, []float64{2})
	secondary := table(t, []string{"mass", "radius"}, []float64{3}, []float64{4})

	got, err := merge.Merge(context.Background(), bin, primary, secondary, merge.Default)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, name := range got.Names() {
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true
	}
	for _, name := range []string{"mass_2", "radius_2"} {
		assert.True(t, strings.HasSuffix(name, "_2"))
		assert.True(t, got.Has(name))
	}

	// the binary column keeps its value
	m2, _ := got.Floats("mass_2")
	assert.Equal(t, []float64{-1}, m2)
}

func TestMergeRowMismatch(t *testing.T) {
	t.Parallel()

	bin := table(t, []string{"model_number"}, []float64{1, 2})
	primary := table(t, []string{"mass"}, []float64{1, 2})
	secondary := table(t, []string{"mass"}, []float64{1})

	_, err := merge.Merge(context.Background(), bin, primary, secondary, merge.Default)
	assert.ErrorIs(t, err, model.ErrSchema)

	_, err = merge.Merge(context.Background(), bin, nil, nil, merge.Default)
	assert.ErrorIs(t, err, model.ErrSchema)
}
