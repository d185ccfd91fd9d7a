// Package term: the Formula pairing one response term with one design
// term and an optional categorical group specification.

package term

import "strings"

// Effect selects how categorical group columns enter a formula.
type Effect int

const (
	// Additive adds one dummy regressor per non-reference group level
	// (parallel fits: shared slopes, shifted intercepts).
	Additive Effect = iota

	// Interactive multiplies each dummy into every numeric regressor
	// as well (per-group slopes).
	Interactive
)

// String returns "additive" or "interactive".
func (e Effect) String() string {
	if e == Interactive {
		return "interactive"
	}
	return "additive"
}

// Formula fully determines one regression to attempt: a response term,
// a design term, and optionally categorical group columns entering
// additively or interactively.
type Formula struct {
	Response ResponseTerm
	Design   DesignTerm
	Groups   []string
	Effect   Effect
}

// NewFormula pairs a response term with a design term (no grouping).
func NewFormula(resp ResponseTerm, design DesignTerm) Formula {
	return Formula{Response: resp, Design: design}
}

// WithGroups returns a copy of the formula carrying the group columns
// and effect mode.
func (f Formula) WithGroups(effect Effect, cols ...string) Formula {
	f.Groups = append([]string(nil), cols...)
	f.Effect = effect
	return f
}

// String renders the formula as "response ~ regressor + regressor ...",
// appending group columns as "+ col" (additive) or "* col" (interactive).
func (f Formula) String() string {
	var b strings.Builder
	b.WriteString(f.Response.Name())
	b.WriteString(" ~ ")
	b.WriteString(f.Design.Name())
	op := " + "
	if f.Effect == Interactive {
		op = " * "
	}
	for _, g := range f.Groups {
		b.WriteString(op)
		b.WriteString(g)
	}
	return b.String()
}
