package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// ModelBlock is an `mva_model` block: one discriminant model and the
// configuration its score producer needs.
type ModelBlock struct {
	ID             string         `hcl:"id,label"`
	ProducerLabel  string         `hcl:"producer_label"`
	Categories     []string       `hcl:"categories"`
	WeightFiles    []string       `hcl:"weight_files"`
	RequiredInputs []string       `hcl:"required_inputs,optional"`
	Inputs         hcl.Expression `hcl:"inputs,optional"`
}

// WorkingPointBlock is a `working_point` block.
type WorkingPointBlock struct {
	Name           string         `hcl:"name,label"`
	Model          string         `hcl:"model"`
	ScoreSource    string         `hcl:"score_source,optional"`
	CategorySource string         `hcl:"category_source,optional"`
	Cuts           hcl.Expression `hcl:"cuts"`
	Approved       bool           `hcl:"approved,optional"`
	Description    string         `hcl:"description,optional"`
	Fingerprint    string         `hcl:"fingerprint,optional"`
}

// fileRoot decodes every top-level block a file may contain. Anything else
// is a decode error.
type fileRoot struct {
	Models        []*ModelBlock        `hcl:"mva_model,block"`
	WorkingPoints []*WorkingPointBlock `hcl:"working_point,block"`
}
