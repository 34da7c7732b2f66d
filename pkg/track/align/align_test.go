package align_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-binarytrack/pkg/track/align"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

func table(t *testing.T, names []string, cols ...[]float64) *model.Table {
	t.Helper()

	tbl, err := model.NewFloatTable(names, cols)
	require.NoError(t, err)

	return tbl
}

func floats(t *testing.T, tbl *model.Table, name string) []float64 {
	t.Helper()

	v, ok := tbl.Floats(name)
	require.True(t, ok, "missing column %s", name)

	return v
}

func TestRenumberStartsAtOne(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		keys []float64
		want []float64
	}{
		"offset":        {keys: []float64{5, 6, 7}, want: []float64{1, 2, 3}},
		"already one":   {keys: []float64{1, 2}, want: []float64{1, 2}},
		"fractional":    {keys: []float64{10.5, 11.5}, want: []float64{1, 2}},
		"single row":    {keys: []float64{42}, want: []float64{1}},
		"gaps are kept": {keys: []float64{3, 5, 9}, want: []float64{1, 3, 7}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			star := table(t, []string{"model_number"}, tc.keys)
			got, err := align.New().Renumber(star)
			require.NoError(t, err)
			assert.Equal(t, tc.want, floats(t, got, "model_number"))
			// input is not mutated
			assert.Equal(t, tc.keys, floats(t, star, "model_number"))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	bin := table(t, []string{"model_number", "period_days"}, []float64{1, 2, 3, 4, 5, 6}, []float64{10, 20, 30, 40, 50, 60})

	got, err := align.New().Truncate(bin, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Len())
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, floats(t, got, "period_days"))
}

func TestAlignIdentityIsExact(t *testing.T) {
	t.Parallel()

	keys := []float64{1, 2, 3, 4, 5}
	star := table(t, []string{"model_number", "mass", "log_Teff"}, keys,
		[]float64{10, 9.1, 8.3, 7.00000001, 6}, []float64{4.1, 4.2, 4.3, 4.4, 4.5})

	got, err := align.New().Align(star, keys)
	require.NoError(t, err)

	assert.Equal(t, []string{"mass", "log_Teff"}, got.Names())
	assert.Equal(t, []float64{10, 9.1, 8.3, 7.00000001, 6}, floats(t, got, "mass"))
	assert.Equal(t, []float64{4.1, 4.2, 4.3, 4.4, 4.5}, floats(t, got, "log_Teff"))
}

func TestAlignInterpolatesAndClampsToZero(t *testing.T) {
	t.Parallel()

	star := table(t, []string{"model_number", "mass"}, []float64{2, 4, 6}, []float64{10, 8, 2})

	got, err := align.New().Align(star, []float64{1, 2, 3, 5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, 9, 5, 2, 0}, floats(t, got, "mass"))
}

func TestAlignUnsortedKeys(t *testing.T) {
	t.Parallel()

	star := table(t, []string{"model_number", "mass"}, []float64{3, 1, 2}, []float64{30, 10, 20})

	got, err := align.New().Align(star, []float64{1.5, 2.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{15, 25}, floats(t, got, "mass"))
}

func TestAlignRejectsNonNumeric(t *testing.T) {
	t.Parallel()

	star := model.NewTable()
	require.NoError(t, star.AddFloat("model_number", []float64{1, 2}))
	require.NoError(t, star.AddColumn(&model.Column{Name: "phase", Kind: model.String, Text: []string{"MS", "RG"}}))

	_, err := align.New().Align(star, []float64{1})
	assert.ErrorIs(t, err, model.ErrSchema)
}

func TestAlignMissingKey(t *testing.T) {
	t.Parallel()

	star := table(t, []string{"step", "mass"}, []float64{1}, []float64{1})

	_, err := align.New().Align(star, []float64{1})
	assert.ErrorIs(t, err, model.ErrSchema)

	got, err := align.New(align.WithKey("step")).Align(star, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, floats(t, got, "mass"))
}

func TestAlignTrack(t *testing.T) {
	t.Parallel()

	bin := table(t, []string{"model_number", "period_days"},
		[]float64{1, 2, 3, 4, 5, 6}, []float64{1, 1, 1, 1, 1, 1})
	primary := table(t, []string{"model_number", "mass"},
		[]float64{5, 6, 7, 8, 9}, []float64{10, 9, 8, 7, 6})
	secondary := table(t, []string{"model_number", "mass"},
		[]float64{2, 3, 4}, []float64{3, 2.5, 2})

	got, err := align.New().AlignTrack(bin, primary, secondary)
	require.NoError(t, err)

	assert.Equal(t, 5, got.Binary.Len())
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, floats(t, got.Binary, "model_number"))
	assert.Equal(t, []float64{10, 9, 8, 7, 6}, floats(t, got.Primary, "mass"))
	assert.False(t, got.Primary.Has("model_number"))
	// secondary is not renumbered: keys 1 and 5 fall outside [2, 4]
	assert.Equal(t, []float64{0, 3, 2.5, 2, 0}, floats(t, got.Secondary, "mass"))
}

func TestAlignTrackSingleStar(t *testing.T) {
	t.Parallel()

	bin := table(t, []string{"model_number"}, []float64{1, 2})
	primary := table(t, []string{"model_number", "mass"}, []float64{1, 2}, []float64{3, 4})

	got, err := align.New().AlignTrack(bin, primary, nil)
	require.NoError(t, err)
	assert.Nil(t, got.Secondary)
	assert.Equal(t, 2, got.Primary.Len())
}
