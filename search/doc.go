// Package search drives the exhaustive model-space exploration: it
// generates the response and design-term catalogs, evaluates every
// distinct transform once into a read-only cache, fits the full
// Cartesian product of candidates across a bounded worker pool, and
// hands the survivors to the ranking engine.
//
// 🌲 Entry points
//
//	Run        — the raw search: every candidate that fit, in
//	             catalog order
//	RankedRun  — Run + competition ranking into a CriteriaTable
//	BestModel  — the single top-ranked model
//	Grouped    — the stratified variant: a general model, a model
//	             with categorical effects, and one model per group,
//	             with range-aware prediction fallback
//
// The search is embarrassingly parallel: every candidate fits against
// the same read-only reduced table and cache. Workers write into
// pre-sized result slots indexed by candidate, so aggregation needs no
// lock and the output order — hence the ranking — is deterministic
// regardless of scheduling.
//
// Failure model: too few usable rows refuses the whole search before
// any fitting (dataset.ErrInsufficientData); individual candidate
// failures are silently pruned; an empty survivor set raises
// ErrAllCandidatesFailed rather than returning a misleading empty
// table.
package search
