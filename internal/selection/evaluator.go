package selection

import (
	"fmt"
	"math"

	"github.com/vk/wpreg/internal/wperr"
)

// Evaluator applies a working point's per-category cuts to one object at a
// time.
type Evaluator struct {
	thresholds []float64
}

// NewEvaluator indexes records by category. Records must cover categories
// 0..N-1 exactly once.
func NewEvaluator(records []CutRecord) (*Evaluator, error) {
	thresholds := make([]float64, len(records))
	seen := make([]bool, len(records))
	for _, r := range records {
		if r.Category < 0 || r.Category >= len(records) || seen[r.Category] {
			return nil, fmt.Errorf("%w: cut record for category %d does not fit %d records", wperr.ErrMalformedCutTable, r.Category, len(records))
		}
		seen[r.Category] = true
		thresholds[r.Category] = r.Threshold
	}
	return &Evaluator{thresholds: thresholds}, nil
}

// Pass reports whether score is strictly above the cut of the object's
// category. A NaN score never passes.
func (e *Evaluator) Pass(score float64, category int) (bool, error) {
	if category < 0 || category >= len(e.thresholds) {
		return false, fmt.Errorf("%w: category %d, working point has %d", wperr.ErrCategoryOutOfRange, category, len(e.thresholds))
	}
	if math.IsNaN(score) {
		return false, nil
	}
	return score > e.thresholds[category], nil
}
