package search_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/rank"
	"github.com/katalvlaran/dendrofit/search"
)

// fieldSample is a small height/diameter plot with a strong linear
// signal (the best candidates reach adjusted R² ≈ 0.94 on it).
func fieldSample(t *testing.T) *dataset.Table {
	t.Helper()
	h := []float64{10.2, 15.3, 14.8, 9.7, 16.5, 13.1, 11.6, 12.4, 14.2, 15.0}
	d := []float64{20.5, 25.3, 24.1, 18.7, 26.2, 22.5, 19.8, 21.0, 23.4, 24.5}
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", h))
	require.NoError(t, tbl.AddNumeric("d", d))
	return tbl
}

// TestRun_SurvivorsOnGoodData: a default search over clean data keeps
// plenty of well-defined candidates.
func TestRun_SurvivorsOnGoodData(t *testing.T) {
	models, err := search.Run(fieldSample(t), "h", []string{"d"})
	require.NoError(t, err)
	assert.Greater(t, len(models), 1)
}

// TestRankedRun_TopModelQuality: the top-ranked candidate on the clean
// sample exceeds adjusted R² of 0.93.
func TestRankedRun_TopModelQuality(t *testing.T) {
	table, err := search.RankedRun(fieldSample(t), "h", []string{"d"})
	require.NoError(t, err)
	require.NotEmpty(t, table.Rows)
	assert.Greater(t, table.Rows[0].Stats.AdjR2, 0.93)
}

// TestRun_InsufficientData aborts before any fitting: one row cannot
// support a regression.
func TestRun_InsufficientData(t *testing.T) {
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", []float64{12.4}))
	require.NoError(t, tbl.AddNumeric("d", []float64{21.0}))

	_, err := search.Run(tbl, "h", []string{"d"})
	require.ErrorIs(t, err, dataset.ErrInsufficientData)
	assert.Contains(t, err.Error(), "insufficient data points")
}

// TestRun_BadPredictors rejects predictor lists outside 1..2 columns.
func TestRun_BadPredictors(t *testing.T) {
	tbl := fieldSample(t)
	_, err := search.Run(tbl, "h", nil)
	require.ErrorIs(t, err, search.ErrBadPredictors)

	_, err = search.Run(tbl, "h", []string{"d", "d", "d"})
	require.ErrorIs(t, err, search.ErrBadPredictors)
}

// TestRankedRun_Idempotent: the parallel search is deterministic — two
// runs over the same table agree formula by formula.
func TestRankedRun_Idempotent(t *testing.T) {
	tbl := fieldSample(t)
	first, err := search.RankedRun(tbl, "h", []string{"d"})
	require.NoError(t, err)
	second, err := search.RankedRun(tbl, "h", []string{"d"}, search.WithWorkers(1))
	require.NoError(t, err)

	require.Equal(t, len(first.Rows), len(second.Rows))
	for i := range first.Rows {
		assert.Equal(t, first.Rows[i].Model.Formula().String(), second.Rows[i].Model.Formula().String())
		assert.Equal(t, first.Rows[i].Combined, second.Rows[i].Combined)
	}
}

// TestRun_TwoPredictors drives the two-predictor catalog end to end.
func TestRun_TwoPredictors(t *testing.T) {
	d := []float64{10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32}
	age := []float64{15, 18, 20, 25, 28, 30, 35, 38, 40, 45, 48, 50}
	h := make([]float64, len(d))
	for i := range d {
		h[i] = 4 + 0.5*d[i] + 0.2*age[i]
	}
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", h))
	require.NoError(t, tbl.AddNumeric("d", d))
	require.NoError(t, tbl.AddNumeric("age", age))

	models, err := search.Run(tbl, "h", []string{"d", "age"})
	require.NoError(t, err)
	assert.NotEmpty(t, models)
}

// TestRankedRun_BestBound trims and re-ranks the survivors.
func TestRankedRun_BestBound(t *testing.T) {
	table, err := search.RankedRun(fieldSample(t), "h", []string{"d"},
		search.WithBest(5), search.WithCriteria(rank.AdjR2, rank.RMSE))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 5)
}

// TestBestModel_Equation smoke-checks the readable rendering of the winner.
func TestBestModel_Equation(t *testing.T) {
	m, err := search.BestModel(fieldSample(t), "h", []string{"d"})
	require.NoError(t, err)
	eq := m.Equation()
	assert.True(t, strings.Contains(eq, " = "), "equation %q", eq)
	assert.Contains(t, eq, "h")
}
