// Package diagnostics computes the goodness-of-fit battery for a
// fitted model: R², adjusted R², Syx% (standard error as a percentage
// of the response mean), RMSE, MAE, Gaussian log-likelihood, AIC, BIC,
// an all-coefficients-significant flag, a residual-normality flag
// (Shapiro–Wilk below 100 observations, Jarque–Bera above), and an
// optional homoscedasticity flag (Breusch–Pagan).
//
// Every statistic is a pure function of the model's stored
// original-scale residual state; nothing here mutates the model. The
// boolean assumption tests are advisory: any internal failure — a
// degenerate residual variance, too few observations for the test —
// degrades to a conservative false instead of propagating an error.
//
// Distribution tail probabilities come from gonum/stat/distuv.
package diagnostics
