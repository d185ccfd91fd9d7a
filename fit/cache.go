// Package fit: the read-only transform cache shared by a search.

package fit

import (
	"github.com/katalvlaran/dendrofit/dataset"
	"github.com/katalvlaran/dendrofit/term"
)

// Cache holds transformed columns keyed by Term name, evaluated once
// against a single table. Build it fully with Add before fanning out
// parallel fits: Column never mutates the cache, so a populated Cache
// is safe for concurrent readers.
type Cache struct {
	tbl  *dataset.Table
	cols map[string][]float64
}

// NewCache binds an empty cache to the (reduced) table.
func NewCache(tbl *dataset.Table) *Cache {
	return &Cache{tbl: tbl, cols: make(map[string][]float64)}
}

// Add evaluates each term not yet present and stores its column.
// Non-finite values are kept as-is; the fitter decides per candidate.
func (c *Cache) Add(terms ...term.Term) error {
	for _, t := range terms {
		if _, ok := c.cols[t.Name()]; ok {
			continue
		}
		col, err := t.EvalColumn(c.tbl)
		if err != nil {
			return err
		}
		c.cols[t.Name()] = col
	}
	return nil
}

// Column returns the cached column for t, or evaluates it fresh
// (without storing) when absent. The returned slice is shared and
// must be treated as read-only.
func (c *Cache) Column(t term.Term) ([]float64, error) {
	if col, ok := c.cols[t.Name()]; ok {
		return col, nil
	}
	return t.EvalColumn(c.tbl)
}
