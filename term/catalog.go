// Package term: the predictor design-term catalogs.
//
// The catalogs are pure functions of the column names: the same inputs
// always produce the same terms in the same order, so a search can
// generate them once per call and cache the evaluated columns by name.

package term

// Indexes into BaseTerms output, used by the cross-product catalog.
const (
	baseIdentity = 0
	baseSquare   = 1
	baseLog      = 2
)

// BaseTerms returns the six base transforms of a single predictor:
// {x, x², ln(x), ln²(x), 1/x, 1/x²}, in that fixed order.
func BaseTerms(x string) []Term {
	return []Term{
		unary(x, x, func(v float64) float64 { return v }),
		unary(x+"^2", x, sq),
		unary("log("+x+")", x, safeLog),
		unary("log("+x+")^2", x, func(v float64) float64 { return sq(safeLog(v)) }),
		unary("1/"+x, x, func(v float64) float64 { return 1 / v }),
		unary("1/"+x+"^2", x, func(v float64) float64 { return 1 / sq(v) }),
	}
}

// DesignCatalog enumerates every candidate right-hand side for one
// predictor: the 6 base transforms, the 15 two-term sums, and the 20
// three-term sums — 41 design terms in a fixed deterministic order
// (singles, then pairs i<j, then triples i<j<k).
func DesignCatalog(x string) []DesignTerm {
	base := BaseTerms(x)
	n := len(base)
	out := make([]DesignTerm, 0, 41)
	for i := 0; i < n; i++ {
		out = append(out, NewDesignTerm(base[i]))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, NewDesignTerm(base[i], base[j]))
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				out = append(out, NewDesignTerm(base[i], base[j], base[k]))
			}
		}
	}
	return out
}

// DesignCatalog2 enumerates the two-predictor candidates:
//
//   - the 6 singles of each predictor (12),
//   - the 15 within-predictor pairs of each (30),
//   - the 36 cross sums f(x1) + g(x2) over the six base forms,
//   - the 9 cross products f(x1)·g(x2) over {identity, square, log}.
//
// 87 design terms, fixed order: x1 block, x2 block, cross sums, products.
func DesignCatalog2(x1, x2 string) []DesignTerm {
	b1, b2 := BaseTerms(x1), BaseTerms(x2)
	n := len(b1)
	out := make([]DesignTerm, 0, 87)

	// per-predictor singles and pairs
	for _, base := range [][]Term{b1, b2} {
		for i := 0; i < n; i++ {
			out = append(out, NewDesignTerm(base[i]))
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				out = append(out, NewDesignTerm(base[i], base[j]))
			}
		}
	}

	// cross sums f(x1) + g(x2)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, NewDesignTerm(b1[i], b2[j]))
		}
	}

	// cross products over the base and squared/log forms
	crossKinds := []int{baseIdentity, baseSquare, baseLog}
	for _, i := range crossKinds {
		for _, j := range crossKinds {
			out = append(out, NewDesignTerm(Product(b1[i], b2[j])))
		}
	}
	return out
}
