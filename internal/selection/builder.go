// Package selection turns a working point definition into the ordered cut
// records consumed by the selection stage, and evaluates objects against
// them.
package selection

import (
	"fmt"

	"github.com/vk/wpreg/internal/workpoint"
)

// CutRecord is one category's cut.
type CutRecord struct {
	Category       int     `json:"category" yaml:"category"`
	Threshold      float64 `json:"threshold" yaml:"threshold"`
	ScoreSource    string  `json:"score_source" yaml:"score_source"`
	CategorySource string  `json:"category_source" yaml:"category_source"`
}

// Config is everything the selection stage needs for one working point.
type Config struct {
	Name           string      `json:"name" yaml:"name"`
	Fingerprint    string      `json:"fingerprint" yaml:"fingerprint"`
	ScoreSource    string      `json:"score_source" yaml:"score_source"`
	CategorySource string      `json:"category_source" yaml:"category_source"`
	Approved       bool        `json:"approved" yaml:"approved"`
	Cuts           []CutRecord `json:"cuts" yaml:"cuts"`
}

// Build emits one record per category in ascending category order. It has
// no side effects and returns equal output for equal input.
func Build(def *workpoint.Definition) ([]CutRecord, error) {
	table := def.Cuts()
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("building cuts for '%s': %w", def.Name(), err)
	}

	records := make([]CutRecord, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		threshold, err := table.Get(i)
		if err != nil {
			return nil, fmt.Errorf("building cuts for '%s': %w", def.Name(), err)
		}
		records = append(records, CutRecord{
			Category:       i,
			Threshold:      threshold,
			ScoreSource:    def.ScoreSource(),
			CategorySource: def.CategorySource(),
		})
	}
	return records, nil
}

// BuildConfig wraps Build with the working point's identity.
func BuildConfig(def *workpoint.Definition) (*Config, error) {
	records, err := Build(def)
	if err != nil {
		return nil, err
	}
	return &Config{
		Name:           def.Name(),
		Fingerprint:    def.Fingerprint(),
		ScoreSource:    def.ScoreSource(),
		CategorySource: def.CategorySource(),
		Approved:       def.Approved(),
		Cuts:           records,
	}, nil
}
