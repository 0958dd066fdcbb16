package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/wpreg/internal/config"
	"github.com/vk/wpreg/internal/ctxlog"
	"github.com/vk/wpreg/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges their
// `mva_model` and `working_point` blocks into one model. Files are read in
// lexical order so repeated runs see working points in the same order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()

	hclFiles, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Models {
			def, err := translateModel(ctx, block, file)
			if err != nil {
				return nil, err
			}
			if err := model.AddModel(def); err != nil {
				return nil, err
			}
		}
		for _, block := range root.WorkingPoints {
			wp, err := translateWorkingPoint(ctx, block, file)
			if err != nil {
				return nil, err
			}
			model.AddWorkingPoint(wp)
		}
		logger.Debug("Loaded definitions from HCL file.", "file", file, "models", len(root.Models), "working_points", len(root.WorkingPoints))
	}

	logger.Debug("HCL loading complete.", "models", len(model.Models), "working_points", len(model.WorkingPoints))
	return model, nil
}
