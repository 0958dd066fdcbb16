// Package cuts provides the per-category threshold table used by a working
// point. A table is a value object: it is validated once at construction and
// never changes afterwards.
package cuts

import (
	"fmt"
	"math"
	"sort"

	"github.com/vk/wpreg/internal/wperr"
)

// Table maps category indices 0..N-1 to a threshold.
type Table struct {
	thresholds []float64
}

// New builds a table from an index-keyed map. Indices must cover 0..N-1 with
// no gaps, and every threshold must be finite.
func New(byCategory map[int]float64) (*Table, error) {
	indices := make([]int, 0, len(byCategory))
	for i := range byCategory {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	thresholds := make([]float64, len(indices))
	for pos, idx := range indices {
		if idx != pos {
			return nil, fmt.Errorf("%w: category indices must be contiguous from 0, got %v", wperr.ErrMalformedCutTable, indices)
		}
		thresholds[pos] = byCategory[idx]
	}
	return FromSlice(thresholds)
}

// FromSlice builds a table where the slice position is the category index.
// The slice is copied.
func FromSlice(thresholds []float64) (*Table, error) {
	t := &Table{thresholds: append([]float64(nil), thresholds...)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate re-checks the construction invariants.
func (t *Table) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil table", wperr.ErrMalformedCutTable)
	}
	for i, v := range t.thresholds {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: category %d has non-finite threshold %v", wperr.ErrMalformedCutTable, i, v)
		}
	}
	return nil
}

// Get returns the threshold for a category.
func (t *Table) Get(category int) (float64, error) {
	if category < 0 || category >= t.Len() {
		return 0, fmt.Errorf("%w: category %d, table has %d", wperr.ErrCategoryOutOfRange, category, t.Len())
	}
	return t.thresholds[category], nil
}

// Len is the number of categories.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.thresholds)
}

// Thresholds returns a copy of the thresholds in category order.
func (t *Table) Thresholds() []float64 {
	if t == nil {
		return nil
	}
	return append([]float64(nil), t.thresholds...)
}
