package config

import (
	"fmt"
	"reflect"

	"github.com/vk/wpreg/internal/wperr"
)

// Model is the unified representation of every loaded file and fragment.
type Model struct {
	Models map[string]*ModelDefinition
	// WorkingPoints keeps load order. The same name may appear more than
	// once; the identity registry decides whether the repeats agree.
	WorkingPoints []*WorkingPoint
}

// ModelDefinition is the format-agnostic form of an `mva_model` block.
type ModelDefinition struct {
	ID            string
	ProducerLabel string
	// Categories, WeightFiles and the cuts of every working point on this
	// model share one index order.
	Categories     []string
	WeightFiles    []string
	RequiredInputs []string
	Inputs         map[string]string
	Source         string
}

// WorkingPoint is the format-agnostic form of a `working_point` block.
type WorkingPoint struct {
	Name  string
	Model string
	// ScoreSource and CategorySource are empty when the working point reads
	// the model producer's default value and category maps.
	ScoreSource    string
	CategorySource string
	Cuts           map[int]float64
	Approved       bool
	Description    string
	// Fingerprint, when set, pins the expected digest of the definition.
	Fingerprint string
	Source      string
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{Models: make(map[string]*ModelDefinition)}
}

// AddModel adds a model definition. Loading the same definition twice is
// allowed; two different definitions under one ID are not.
func (m *Model) AddModel(def *ModelDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("%w: model in %s has no id", wperr.ErrInvalidDefinition, def.Source)
	}
	if existing, ok := m.Models[def.ID]; ok {
		if sameModel(existing, def) {
			return nil
		}
		return fmt.Errorf("%w: model '%s' defined in both %s and %s", wperr.ErrInvalidDefinition, def.ID, existing.Source, def.Source)
	}
	m.Models[def.ID] = def
	return nil
}

// AddWorkingPoint appends a working point.
func (m *Model) AddWorkingPoint(wp *WorkingPoint) {
	m.WorkingPoints = append(m.WorkingPoints, wp)
}

// Merge folds other into m.
func (m *Model) Merge(other *Model) error {
	for _, def := range other.Models {
		if err := m.AddModel(def); err != nil {
			return err
		}
	}
	m.WorkingPoints = append(m.WorkingPoints, other.WorkingPoints...)
	return nil
}

func sameModel(a, b *ModelDefinition) bool {
	x, y := *a, *b
	x.Source, y.Source = "", ""
	return reflect.DeepEqual(x, y)
}
