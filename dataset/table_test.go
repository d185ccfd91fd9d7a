package dataset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dendrofit/dataset"
)

// buildTable assembles a small mixed table used across the tests.
func buildTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", []float64{10, 12, math.NaN(), 15, 9}))
	require.NoError(t, tbl.AddNumeric("d", []float64{20, 22, 24, math.NaN(), 18}))
	require.NoError(t, tbl.AddCategorical("plot", []string{"A", "B", "A", "B", ""}))
	return tbl
}

// TestTable_AddRules verifies duplicate names and length mismatches are refused.
func TestTable_AddRules(t *testing.T) {
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", []float64{1, 2, 3}))

	err := tbl.AddNumeric("h", []float64{4, 5, 6})
	assert.ErrorIs(t, err, dataset.ErrDuplicateColumn, "re-adding a name must error")

	err = tbl.AddCategorical("plot", []string{"A", "B"})
	assert.ErrorIs(t, err, dataset.ErrLengthMismatch, "short column must error")

	assert.Equal(t, 3, tbl.Len())
}

// TestTable_ReduceDropsMissing checks that reduction keeps only complete
// rows over exactly the referenced columns.
func TestTable_ReduceDropsMissing(t *testing.T) {
	tbl := buildTable(t)

	red, err := tbl.Reduce([]string{"h", "d"}, nil)
	require.NoError(t, err)
	// rows 2 (NaN h) and 3 (NaN d) are dropped; row 4's empty plot is
	// irrelevant because plot was not referenced.
	assert.Equal(t, 3, red.Len())
	h, err := red.Numeric("h")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 12, 9}, h)

	// Referencing plot as well drops row 4 too.
	red2, err := tbl.Reduce([]string{"h", "d"}, []string{"plot"})
	require.NoError(t, err)
	assert.Equal(t, 2, red2.Len())
}

// TestTable_ReduceUnknownColumn ensures an absent column fails fast.
func TestTable_ReduceUnknownColumn(t *testing.T) {
	tbl := buildTable(t)
	_, err := tbl.Reduce([]string{"volume"}, nil)
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

// TestTable_ValidateFit_InsufficientData covers the refusal contract: a
// one-row table with one design column must raise "insufficient data
// points" before any fitting could be attempted.
func TestTable_ValidateFit_InsufficientData(t *testing.T) {
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", []float64{10}))
	require.NoError(t, tbl.AddNumeric("d", []float64{20}))

	err := tbl.ValidateFit(1)
	require.ErrorIs(t, err, dataset.ErrInsufficientData)
	assert.Contains(t, err.Error(), "insufficient data points")

	// Three rows support a single design column.
	tbl2 := dataset.New()
	require.NoError(t, tbl2.AddNumeric("h", []float64{10, 11, 12}))
	assert.NoError(t, tbl2.ValidateFit(1))
}

// TestTable_Levels verifies sorted distinct levels with missing skipped.
func TestTable_Levels(t *testing.T) {
	tbl := buildTable(t)
	levels, err := tbl.Levels("plot")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, levels)
}

// TestTable_Partition verifies stable sorted groups and row preservation.
func TestTable_Partition(t *testing.T) {
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", []float64{1, 2, 3, 4, 5}))
	require.NoError(t, tbl.AddCategorical("sp", []string{"pine", "oak", "pine", "", "oak"}))

	groups, err := tbl.Partition([]string{"sp"})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "oak", groups[0].Label)
	assert.Equal(t, "pine", groups[1].Label)

	oakH, err := groups[0].Table.Numeric("h")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, oakH, "rows keep their relative order")
}

// TestTable_GroupLabels verifies multi-column label joining and missing rows.
func TestTable_GroupLabels(t *testing.T) {
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", []float64{1, 2}))
	require.NoError(t, tbl.AddCategorical("sp", []string{"pine", "oak"}))
	require.NoError(t, tbl.AddCategorical("site", []string{"I", ""}))

	labels, err := tbl.GroupLabels([]string{"sp", "site"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pine/I", ""}, labels)
}
