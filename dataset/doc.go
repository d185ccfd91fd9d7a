// Package dataset provides the column-labeled, in-memory observation
// table consumed by the fitting engine.
//
// A Table holds numeric columns ([]float64, with NaN marking a missing
// value) and categorical columns ([]string, with "" marking a missing
// level), all of equal length. Tables are built once and then treated
// as read-only by every downstream component; the search engine shares
// a single reduced Table across all of its parallel candidate fits.
//
// Core operations:
//
//   - Reduce — project the table onto exactly the columns a regression
//     references, dropping every row with a missing value in any of
//     them. Fitting always runs on a reduced table.
//   - ValidateFit — refuse a table whose row count cannot support the
//     requested number of design columns (rows ≥ columns + 2).
//   - Partition — split into per-group tables by one or more
//     categorical columns, with a stable, sorted group order.
//   - Levels — the sorted distinct levels of a categorical column,
//     used to build dummy regressors.
//
// All errors are package sentinels matched with errors.Is.
package dataset
