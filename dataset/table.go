// Package dataset: the Table container and its reduction/partition
// operations. All mutation happens through AddNumeric/AddCategorical
// during construction; every other method is read-only.

package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrUnknownColumn indicates a referenced column is not present in the table.
	ErrUnknownColumn = errors.New("dataset: unknown column")

	// ErrDuplicateColumn indicates a column name was added twice.
	ErrDuplicateColumn = errors.New("dataset: duplicate column")

	// ErrLengthMismatch indicates a column whose length differs from the table's.
	ErrLengthMismatch = errors.New("dataset: column length mismatch")

	// ErrInsufficientData indicates too few usable rows for the requested fit.
	// The fitting engine refuses the whole search on this error, before any
	// candidate is attempted.
	ErrInsufficientData = errors.New("dataset: insufficient data points")

	// ErrNoColumns indicates a reduction or partition over an empty column set.
	ErrNoColumns = errors.New("dataset: no columns referenced")
)

// labelSep joins the level values of a multi-column group label.
const labelSep = "/"

// Table is a column-labeled observation table. Numeric columns use NaN
// for missing values; categorical columns use the empty string.
// The zero value is not usable; construct with New.
type Table struct {
	rows     int
	numOrder []string
	numeric  map[string][]float64
	catOrder []string
	cat      map[string][]string
}

// New returns an empty Table ready for AddNumeric/AddCategorical.
func New() *Table {
	return &Table{
		rows:    -1, // unset until the first column fixes the length
		numeric: make(map[string][]float64),
		cat:     make(map[string][]string),
	}
}

// Len reports the number of rows. An empty table reports 0.
func (t *Table) Len() int {
	if t.rows < 0 {
		return 0
	}
	return t.rows
}

// AddNumeric appends a numeric column. The first column added fixes the
// table length; later columns must match it. The slice is stored as-is
// and must not be mutated afterwards.
func (t *Table) AddNumeric(name string, vals []float64) error {
	if err := t.checkAdd(name, len(vals)); err != nil {
		return err
	}
	t.numOrder = append(t.numOrder, name)
	t.numeric[name] = vals
	return nil
}

// AddCategorical appends a categorical column under the same length
// rules as AddNumeric.
func (t *Table) AddCategorical(name string, vals []string) error {
	if err := t.checkAdd(name, len(vals)); err != nil {
		return err
	}
	t.catOrder = append(t.catOrder, name)
	t.cat[name] = vals
	return nil
}

// checkAdd enforces unique names and a consistent row count.
func (t *Table) checkAdd(name string, n int) error {
	if _, ok := t.numeric[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if _, ok := t.cat[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if t.rows < 0 {
		t.rows = n
		return nil
	}
	if n != t.rows {
		return fmt.Errorf("%w: column %q has %d rows, table has %d", ErrLengthMismatch, name, n, t.rows)
	}
	return nil
}

// Numeric returns the named numeric column. The returned slice is the
// table's backing storage; callers must treat it as read-only.
func (t *Table) Numeric(name string) ([]float64, error) {
	col, ok := t.numeric[name]
	if !ok {
		return nil, fmt.Errorf("%w: numeric %q", ErrUnknownColumn, name)
	}
	return col, nil
}

// Categorical returns the named categorical column (read-only).
func (t *Table) Categorical(name string) ([]string, error) {
	col, ok := t.cat[name]
	if !ok {
		return nil, fmt.Errorf("%w: categorical %q", ErrUnknownColumn, name)
	}
	return col, nil
}

// NumericNames returns the numeric column names in insertion order.
func (t *Table) NumericNames() []string { return append([]string(nil), t.numOrder...) }

// CategoricalNames returns the categorical column names in insertion order.
func (t *Table) CategoricalNames() []string { return append([]string(nil), t.catOrder...) }

// Reduce projects the table onto exactly the referenced columns and
// drops every row that has a missing value (NaN or "") in any of them.
// The result is a fresh Table; the receiver is untouched.
//
// Fitting must always run against a reduced table so that every design
// column sees the same row set.
func (t *Table) Reduce(numCols, catCols []string) (*Table, error) {
	if len(numCols)+len(catCols) == 0 {
		return nil, fmt.Errorf("Reduce: %w", ErrNoColumns)
	}
	// Resolve all referenced columns up front so an unknown name fails
	// before any row work.
	nums := make([][]float64, len(numCols))
	for i, name := range numCols {
		col, err := t.Numeric(name)
		if err != nil {
			return nil, fmt.Errorf("Reduce: %w", err)
		}
		nums[i] = col
	}
	cats := make([][]string, len(catCols))
	for i, name := range catCols {
		col, err := t.Categorical(name)
		if err != nil {
			return nil, fmt.Errorf("Reduce: %w", err)
		}
		cats[i] = col
	}

	// Keep the indexes of complete rows, in order.
	keep := make([]int, 0, t.Len())
rowLoop:
	for r := 0; r < t.Len(); r++ {
		for _, col := range nums {
			if math.IsNaN(col[r]) {
				continue rowLoop
			}
		}
		for _, col := range cats {
			if col[r] == "" {
				continue rowLoop
			}
		}
		keep = append(keep, r)
	}

	out := New()
	for i, name := range numCols {
		vals := make([]float64, len(keep))
		for j, r := range keep {
			vals[j] = nums[i][r]
		}
		if err := out.AddNumeric(name, vals); err != nil {
			return nil, fmt.Errorf("Reduce: %w", err)
		}
	}
	for i, name := range catCols {
		vals := make([]string, len(keep))
		for j, r := range keep {
			vals[j] = cats[i][r]
		}
		if err := out.AddCategorical(name, vals); err != nil {
			return nil, fmt.Errorf("Reduce: %w", err)
		}
	}
	return out, nil
}

// ValidateFit refuses a table that cannot support designCols regression
// columns: the row count must be at least designCols + 2, leaving at
// least one residual degree of freedom beyond the intercept.
func (t *Table) ValidateFit(designCols int) error {
	if t.Len() < designCols+2 {
		return fmt.Errorf("%w: %d rows cannot support %d design columns (need ≥ %d)",
			ErrInsufficientData, t.Len(), designCols, designCols+2)
	}
	return nil
}

// Levels returns the sorted distinct non-missing levels of a
// categorical column. Dummy-column construction depends on this order
// being stable: the first level is always the reference level.
func (t *Table) Levels(name string) ([]string, error) {
	col, err := t.Categorical(name)
	if err != nil {
		return nil, fmt.Errorf("Levels: %w", err)
	}
	seen := make(map[string]struct{}, len(col))
	levels := make([]string, 0, 8)
	for _, v := range col {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			levels = append(levels, v)
		}
	}
	sort.Strings(levels)
	return levels, nil
}

// Group is one slice of a Partition: the joined label and the rows
// that carry it.
type Group struct {
	Label string
	Table *Table
}

// GroupLabels joins per-row level values of the given categorical
// columns into one label per row ("" if any level is missing).
func (t *Table) GroupLabels(catCols []string) ([]string, error) {
	if len(catCols) == 0 {
		return nil, fmt.Errorf("GroupLabels: %w", ErrNoColumns)
	}
	cols := make([][]string, len(catCols))
	for i, name := range catCols {
		col, err := t.Categorical(name)
		if err != nil {
			return nil, fmt.Errorf("GroupLabels: %w", err)
		}
		cols[i] = col
	}
	labels := make([]string, t.Len())
	parts := make([]string, len(cols))
	for r := 0; r < t.Len(); r++ {
		missing := false
		for i, col := range cols {
			if col[r] == "" {
				missing = true
				break
			}
			parts[i] = col[r]
		}
		if missing {
			labels[r] = ""
			continue
		}
		labels[r] = strings.Join(parts, labelSep)
	}
	return labels, nil
}

// Partition splits the table into per-group tables keyed by the joined
// levels of the given categorical columns. Rows with a missing level
// are dropped. Groups are returned sorted by label; rows within a
// group keep their original relative order.
func (t *Table) Partition(catCols []string) ([]Group, error) {
	labels, err := t.GroupLabels(catCols)
	if err != nil {
		return nil, fmt.Errorf("Partition: %w", err)
	}
	byLabel := make(map[string][]int)
	for r, lbl := range labels {
		if lbl == "" {
			continue
		}
		byLabel[lbl] = append(byLabel[lbl], r)
	}
	order := make([]string, 0, len(byLabel))
	for lbl := range byLabel {
		order = append(order, lbl)
	}
	sort.Strings(order)

	groups := make([]Group, 0, len(order))
	for _, lbl := range order {
		sub, err := t.selectRows(byLabel[lbl])
		if err != nil {
			return nil, fmt.Errorf("Partition: %w", err)
		}
		groups = append(groups, Group{Label: lbl, Table: sub})
	}
	return groups, nil
}

// selectRows copies the given row indexes of every column into a fresh Table.
func (t *Table) selectRows(rows []int) (*Table, error) {
	out := New()
	for _, name := range t.numOrder {
		src := t.numeric[name]
		vals := make([]float64, len(rows))
		for j, r := range rows {
			vals[j] = src[r]
		}
		if err := out.AddNumeric(name, vals); err != nil {
			return nil, err
		}
	}
	for _, name := range t.catOrder {
		src := t.cat[name]
		vals := make([]string, len(rows))
		for j, r := range rows {
			vals[j] = src[r]
		}
		if err := out.AddCategorical(name, vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}
