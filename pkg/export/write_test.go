package export_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-binarytrack/pkg/export"
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

func sample(t *testing.T) *model.Table {
	t.Helper()

	tbl, err := model.NewFloatTable(
		[]string{"model_number", "rl_overflow_1"},
		[][]float64{{1, 2}, {0.5, math.Inf(1)}},
	)
	require.NoError(t, err)

	require.NoError(t, tbl.AddColumn(&model.Column{Name: "phase", Kind: model.String, Text: []string{"ms", "rlof"}}))

	return tbl
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in      string
		want    export.Format
		wantExt string
		wantErr bool
	}{
		"csv":     {in: "csv", want: export.CSV, wantExt: ".csv"},
		"upper":   {in: " JSON ", want: export.JSON, wantExt: ".json"},
		"sqlite":  {in: "sqlite", want: export.SQLite, wantExt: ".sqlite"},
		"table":   {in: "table", want: export.Table, wantExt: ".txt"},
		"unknown": {in: "parquet", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := export.ParseFormat(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, export.ErrFormat)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantExt, got.Ext())
		})
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.CSV, sample(t)))
	assert.Equal(t, "model_number,rl_overflow_1,phase\n1,0.5,ms\n2,+Inf,rlof\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.JSON, sample(t)))

	var got struct {
		Rows    int `json:"rows"`
		Columns []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Values []any  `json:"values"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 2, got.Rows)
	require.Len(t, got.Columns, 3)
	assert.Equal(t, "rl_overflow_1", got.Columns[1].Name)
	assert.Equal(t, []any{0.5, nil}, got.Columns[1].Values)
	assert.Equal(t, []any{"ms", "rlof"}, got.Columns[2].Values)
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.Table, sample(t)))

	out := buf.String()
	assert.Contains(t, out, "MODEL_NUMBER")
	assert.Contains(t, out, "+Inf")
	assert.Contains(t, out, "rlof")
}

func TestWriteSQLiteIsNotAStream(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, export.Write(&bytes.Buffer{}, export.SQLite, sample(t)), export.ErrFormat)
	assert.ErrorIs(t, export.Write(&bytes.Buffer{}, export.Format("xml"), sample(t)), export.ErrFormat)
}
