// Package producer assembles the configuration record handed to the
// upstream score producer. It only aggregates and checks data: weight files
// are opaque paths and are never opened here.
package producer

import (
	"fmt"
	"sort"

	"github.com/vk/wpreg/internal/wperr"
)

// Model describes a discriminant model known to the catalog.
type Model struct {
	ID string
	// Categories names each category in index order, e.g. EB then EE.
	// Weight files and cuts must follow the same order.
	Categories []string
	// RequiredInputs is the fixed set of named inputs the model reads.
	RequiredInputs []string
}

// Config is the record consumed by the score producer.
type Config struct {
	ModelID     string            `json:"model_id" yaml:"model_id"`
	WeightFiles []string          `json:"weight_files" yaml:"weight_files"`
	NamedInputs map[string]string `json:"named_inputs" yaml:"named_inputs"`
}

// Catalog holds the models that configs can be assembled for.
type Catalog struct {
	models map[string]*Model
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{models: make(map[string]*Model)}
}

// Register adds a model. Registering the same ID twice is an error.
func (c *Catalog) Register(m Model) error {
	if m.ID == "" {
		return fmt.Errorf("%w: model id is empty", wperr.ErrInvalidDefinition)
	}
	if len(m.Categories) == 0 {
		return fmt.Errorf("%w: model '%s' declares no categories", wperr.ErrInvalidDefinition, m.ID)
	}
	if _, exists := c.models[m.ID]; exists {
		return fmt.Errorf("%w: model '%s' already registered", wperr.ErrInvalidDefinition, m.ID)
	}
	c.models[m.ID] = &Model{
		ID:             m.ID,
		Categories:     append([]string(nil), m.Categories...),
		RequiredInputs: append([]string(nil), m.RequiredInputs...),
	}
	return nil
}

// Model returns a registered model.
func (c *Catalog) Model(id string) (*Model, bool) {
	m, ok := c.models[id]
	return m, ok
}

// Assemble checks weight files and named inputs against the model and
// returns the producer record. The record holds copies of its inputs.
func (c *Catalog) Assemble(modelID string, weightFiles []string, namedInputs map[string]string) (*Config, error) {
	m, ok := c.models[modelID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown model '%s'", wperr.ErrInvalidDefinition, modelID)
	}

	if len(weightFiles) != len(m.Categories) {
		return nil, fmt.Errorf("%w: model '%s' has %d categories but %d weight files were given",
			wperr.ErrCategoryCountMismatch, modelID, len(m.Categories), len(weightFiles))
	}

	var missing []string
	for _, key := range m.RequiredInputs {
		if ref, ok := namedInputs[key]; !ok || ref == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: model '%s' requires %v", wperr.ErrMissingNamedInput, modelID, missing)
	}

	inputs := make(map[string]string, len(namedInputs))
	for k, v := range namedInputs {
		inputs[k] = v
	}
	return &Config{
		ModelID:     modelID,
		WeightFiles: append([]string(nil), weightFiles...),
		NamedInputs: inputs,
	}, nil
}

// ValueMapRef is the reference to the per-object score map a producer
// publishes for a model.
func ValueMapRef(producerLabel, modelID string) string {
	return producerLabel + ":" + modelID + "Values"
}

// CategoryMapRef is the reference to the per-object category map.
func CategoryMapRef(producerLabel, modelID string) string {
	return producerLabel + ":" + modelID + "Categories"
}
