// This file translates the HCL block structs into the format-agnostic
// configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/vk/wpreg/internal/config"
	"github.com/vk/wpreg/internal/ctxlog"
)

// translateModel converts an `mva_model` block into the agnostic model.
func translateModel(ctx context.Context, b *ModelBlock, source string) (*config.ModelDefinition, error) {
	ctx, logger := ctxlog.With(ctx, "model", b.ID, "file", source)
	logger.Debug("Translating HCL model block.")

	def := &config.ModelDefinition{
		ID:             b.ID,
		ProducerLabel:  b.ProducerLabel,
		Categories:     b.Categories,
		WeightFiles:    b.WeightFiles,
		RequiredInputs: b.RequiredInputs,
		Inputs:         map[string]string{},
		Source:         source,
	}

	if isExprDefined(ctx, b.Inputs, "inputs") {
		inputs, err := decodeStringMap(b.Inputs)
		if err != nil {
			return nil, fmt.Errorf("in mva_model '%s' (%s), inputs: %w", b.ID, source, err)
		}
		def.Inputs = inputs
	}
	return def, nil
}

// translateWorkingPoint converts a `working_point` block into the agnostic model.
func translateWorkingPoint(ctx context.Context, b *WorkingPointBlock, source string) (*config.WorkingPoint, error) {
	_, logger := ctxlog.With(ctx, "working_point", b.Name, "file", source)
	logger.Debug("Translating HCL working point block.")

	cutsByCategory, err := decodeCuts(b.Cuts)
	if err != nil {
		return nil, fmt.Errorf("in working_point '%s' (%s), cuts: %w", b.Name, source, err)
	}

	return &config.WorkingPoint{
		Name:           b.Name,
		Model:          b.Model,
		ScoreSource:    b.ScoreSource,
		CategorySource: b.CategorySource,
		Cuts:           cutsByCategory,
		Approved:       b.Approved,
		Description:    b.Description,
		Fingerprint:    b.Fingerprint,
		Source:         source,
	}, nil
}
