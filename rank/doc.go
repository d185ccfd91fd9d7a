// Package rank orders fitted models by a chosen subset of diagnostic
// criteria using competition ranking: equal values share a rank and
// the next distinct value skips accordingly.
//
// Numeric criteria rank ascending when smaller is better (Syx%, RMSE,
// MAE, AIC, BIC) and descending when bigger is better (R², adjusted
// R²). Boolean criteria (significance, normality, homoscedasticity)
// rank true as 1 and false as a strong penalty — by default the table
// size — so a model failing a required assumption sinks to the bottom
// regardless of its numeric fit. The penalty magnitude is an inherited
// heuristic, kept configurable through WithPenalty.
//
// The combined rank is the sum of the selected per-criterion ranks;
// the table is sorted ascending by combined rank with ties keeping
// their input order (stable). A best-K bound re-ranks only the top-K
// survivors with the identical procedure, so the reported ranks are
// self-consistent for the returned subset.
//
// Requesting an unknown criterion errors with the allowed names;
// ranking an empty model list errors rather than returning a
// misleading empty table.
package rank
