package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-binarytrack/pkg/track/model"
)

func TestTableAddColumn(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		columns []*model.Column
		wantErr bool
	}{
		"same length": {
			columns: []*model.Column{
				{Name: "a", Kind: model.Float, Values: []float64{1, 2}},
				{Name: "b", Kind: model.String, Text: []string{"x", "y"}},
			},
		},
		"length mismatch": {
			columns: []*model.Column{
				{Name: "a", Kind: model.Float, Values: []float64{1, 2}},
				{Name: "b", Kind: model.Float, Values: []float64{1}},
			},
			wantErr: true,
		},
		"duplicate": {
			columns: []*model.Column{
				{Name: "a", Kind: model.Float, Values: []float64{1}},
				{Name: "a", Kind: model.Int, Values: []float64{1}},
			},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tbl := model.NewTable()
			var err error
			for _, col := range tc.columns {
				err = tbl.AddColumn(col)
				if err != nil {
					break
				}
			}
			if tc.wantErr {
				assert.ErrorIs(t, err, model.ErrSchema)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, tbl.Len())
		})
	}
}

func TestTableTakeAndWithout(t *testing.T) {
	t.Parallel()

	tbl, err := model.NewFloatTable([]string{"k", "v"}, [][]float64{{1, 2, 3}, {10, 20, 30}})
	require.NoError(t, err)

	taken := tbl.Take([]int{2, 0})
	got, ok := taken.Floats("v")
	require.True(t, ok)
	assert.Equal(t, []float64{30, 10}, got)
	assert.Equal(t, 2, taken.Len())

	rest := tbl.Without("k")
	assert.Equal(t, []string{"v"}, rest.Names())
	assert.False(t, rest.Has("k"))
	assert.Equal(t, 3, rest.Len())
}

func TestTableCloneIsDeep(t *testing.T) {
	t.Parallel()

	tbl, err := model.NewFloatTable([]string{"v"}, [][]float64{{1, 2}})
	require.NoError(t, err)

	cp := tbl.Clone()
	vals, _ := cp.Floats("v")
	vals[0] = 42

	orig, _ := tbl.Floats("v")
	assert.Equal(t, 1.0, orig[0])
}

func TestContainerAttributesReplaceChildren(t *testing.T) {
	t.Parallel()

	c := model.NewContainer()
	c.Set("x", model.NewTable())
	c.Set("y", &model.Attribute{Values: []float64{1}})
	c.Set("x", &model.Attribute{Values: []float64{2}})

	assert.Equal(t, []string{"x", "y"}, c.Names())
	attr, ok := c.Attr("x")
	require.True(t, ok)
	v, ok := attr.Scalar()
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = c.Table("x")
	assert.False(t, ok)
}
