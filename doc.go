// Package dendrofit fits and ranks empirical relationships between
// dendrometric measurements — height vs. diameter, volume vs. diameter,
// height and age — by exhaustively searching a large space of algebraic
// transformations of the response and predictor variables.
//
// 🌲 What is dendrofit?
//
//	A pure, in-memory Go library that brings together:
//		• Term catalogs: every classic forestry transform of the response
//		  (log, log(y−1.3), 1/√y, x/√y, …) and all additive combinations
//		  of the predictor transforms, generated deterministically
//		• An OLS fitter built on a shared Cholesky factorization, with
//		  back-transformation and Meyer bias correction so every candidate
//		  is judged on the original measurement scale
//		• A full diagnostic battery: R², adjusted R², Syx%, RMSE, MAE,
//		  AIC, BIC, coefficient significance, normality, homoscedasticity
//		• Tie-aware competition ranking across any subset of criteria,
//		  with assumption failures pushed to the bottom of the table
//		• Stratified (grouped) fits with range-aware prediction fallback
//
// ✨ Why choose dendrofit?
//
//   - Deterministic – identical inputs yield identical rankings, even
//     under the parallel search
//   - Honest comparisons – statistics are always recomputed on the
//     original response scale, never on the transformed scale
//   - Silent pruning – candidates that are undefined for your data are
//     dropped, not raised; only an empty search is an error
//
// Everything is organized under six subpackages:
//
//	dataset/     — column-labeled observation tables, reduction, grouping
//	term/        — transform terms, catalogs, and formulas
//	fit/         — the OLS fitter, back-transformation and prediction
//	diagnostics/ — the goodness-of-fit battery
//	rank/        — competition ranking and top-K selection
//	search/      — the parallel model-space driver and grouped models
//
// Quick sketch:
//
//	models, err := search.Run(tbl, "h", []string{"d"})
//	table, err := search.RankedRun(tbl, "h", []string{"d"}, search.WithBest(10))
//	best, err := search.BestModel(tbl, "h", []string{"d"})
//	preds := best.Predict(newTbl)
//
// Dive into README.md and the package docs for the full catalog of
// transforms and ranking criteria.
//
//	go get github.com/katalvlaran/dendrofit
package dendrofit
