package search_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/search"
	"github.com/katalvlaran/dendrofit/term"
)

// groupedSample builds a two-species plot: both species grow linearly
// in diameter with the same slope but different intercepts, plus small
// fixed disturbances so no candidate fits exactly.
func groupedSample(t *testing.T) *dataset.Table {
	t.Helper()
	noise := []float64{0.2, -0.1, 0.15, -0.2, 0.1, -0.15, 0.05, -0.05}
	d := make([]float64, 0, 16)
	sp := make([]string, 0, 16)
	h := make([]float64, 0, 16)
	for i := 0; i < 8; i++ {
		dv := float64(10 + i)
		d = append(d, dv)
		sp = append(sp, "A")
		h = append(h, 2+3*dv+noise[i])
	}
	for i := 0; i < 8; i++ {
		dv := float64(10 + i)
		d = append(d, dv)
		sp = append(sp, "B")
		h = append(h, 5+3*dv+noise[7-i])
	}
	tbl := dataset.New()
	require.NoError(t, tbl.AddNumeric("h", h))
	require.NoError(t, tbl.AddNumeric("d", d))
	require.NoError(t, tbl.AddCategorical("sp", sp))
	return tbl
}

// TestGrouped_BuildsAllTiers fits the stratified model: a general tier,
// a qualitative tier, and one model per species.
func TestGrouped_BuildsAllTiers(t *testing.T) {
	g, err := search.Grouped(groupedSample(t), "h", []string{"d"}, []string{"sp"})
	require.NoError(t, err)

	assert.NotNil(t, g.General)
	assert.NotNil(t, g.Qualitative)
	require.Contains(t, g.ByGroup, "A")
	require.Contains(t, g.ByGroup, "B")
	assert.NotEmpty(t, g.Qualitative.Formula().Groups)
	assert.Empty(t, g.General.Formula().Groups)
}

// TestGrouped_PredictFallbackChain exercises row-by-row tier selection:
// an in-range row uses its group model, an out-of-range diameter falls
// back to the qualitative model, an unseen species falls back to the
// general model, and a row with no usable input stays NaN.
func TestGrouped_PredictFallbackChain(t *testing.T) {
	g, err := search.Grouped(groupedSample(t), "h", []string{"d"}, []string{"sp"})
	require.NoError(t, err)

	newTbl := dataset.New()
	require.NoError(t, newTbl.AddNumeric("d", []float64{12.5, 100, 12, math.NaN()}))
	require.NoError(t, newTbl.AddCategorical("sp", []string{"A", "A", "C", "A"}))

	out, err := g.Predict(newTbl)
	require.NoError(t, err)
	require.Len(t, out, 4)

	groupA, err := g.ByGroup["A"].Predict(newTbl)
	require.NoError(t, err)
	qual, err := g.Qualitative.Predict(newTbl)
	require.NoError(t, err)
	gen, err := g.General.Predict(newTbl)
	require.NoError(t, err)

	assert.Equal(t, groupA[0], out[0], "in-range row resolves through the species model")
	assert.InDelta(t, 2+3*12.5, out[0], 1.0, "species A prediction tracks its growth line")

	assert.Equal(t, qual[1], out[1], "d=100 is outside species A's training range")
	assert.False(t, math.IsNaN(out[1]))

	assert.Equal(t, gen[2], out[2], "species C was never seen, only the general tier applies")
	assert.False(t, math.IsNaN(out[2]))

	assert.True(t, math.IsNaN(out[3]), "no tier can predict a missing diameter")
}

// TestGrouped_NoGroupColumns rejects a stratified request without strata.
func TestGrouped_NoGroupColumns(t *testing.T) {
	_, err := search.Grouped(groupedSample(t), "h", []string{"d"}, nil)
	require.ErrorIs(t, err, search.ErrNoGroupColumns)
}

// TestGrouped_SmallGroupSkipped: a species with a single observation
// gets no model of its own but its rows still predict via fallback.
func TestGrouped_SmallGroupSkipped(t *testing.T) {
	base := groupedSample(t)
	h, err := base.Numeric("h")
	require.NoError(t, err)
	d, err := base.Numeric("d")
	require.NoError(t, err)
	sp, err := base.Categorical("sp")
	require.NoError(t, err)

	// One lone observation of a third species, in a fresh table.
	full := dataset.New()
	require.NoError(t, full.AddNumeric("h", append(append([]float64(nil), h...), 50)))
	require.NoError(t, full.AddNumeric("d", append(append([]float64(nil), d...), 15)))
	require.NoError(t, full.AddCategorical("sp", append(append([]string(nil), sp...), "C")))

	g, err := search.Grouped(full, "h", []string{"d"}, []string{"sp"})
	require.NoError(t, err)
	assert.NotContains(t, g.ByGroup, "C")

	out, err := g.Predict(full)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(out[len(out)-1]), "the lone C row predicts through a fallback tier")
}

// TestGrouped_InteractiveEffect lets species modulate the slope, not
// just the intercept, in the qualitative tier.
func TestGrouped_InteractiveEffect(t *testing.T) {
	g, err := search.Grouped(groupedSample(t), "h", []string{"d"}, []string{"sp"},
		search.WithEffect(term.Interactive))
	require.NoError(t, err)

	require.Equal(t, term.Interactive, g.Qualitative.Formula().Effect)
	names := strings.Join(g.Qualitative.CoefficientNames(), ";")
	assert.Contains(t, names, "sp=B", "dummy and interaction columns present: %s", names)
	assert.Contains(t, names, " * sp=B")
}
