package render

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/wpreg/internal/app"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// writeHCL emits one `producer` block per model, one `selection` block per
// working point with a nested `cut` block per category, and one
// `registry_entry` block per registered name.
func writeHCL(w io.Writer, res *app.Result) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for _, p := range res.Producers {
		body := root.AppendNewBlock("producer", []string{p.ModelID}).Body()
		weights, err := toCtyValue(p.WeightFiles)
		if err != nil {
			return fmt.Errorf("producer '%s' weight_files: %w", p.ModelID, err)
		}
		inputs, err := toCtyValue(p.NamedInputs)
		if err != nil {
			return fmt.Errorf("producer '%s' named_inputs: %w", p.ModelID, err)
		}
		body.SetAttributeValue("weight_files", weights)
		body.SetAttributeValue("named_inputs", inputs)
		root.AppendNewline()
	}

	for _, s := range res.Selections {
		body := root.AppendNewBlock("selection", []string{s.Name}).Body()
		body.SetAttributeValue("fingerprint", cty.StringVal(s.Fingerprint))
		body.SetAttributeValue("score_source", cty.StringVal(s.ScoreSource))
		body.SetAttributeValue("category_source", cty.StringVal(s.CategorySource))
		body.SetAttributeValue("approved", cty.BoolVal(s.Approved))
		for _, c := range s.Cuts {
			cut := body.AppendNewBlock("cut", nil).Body()
			cut.SetAttributeValue("category", cty.NumberIntVal(int64(c.Category)))
			cut.SetAttributeValue("threshold", cty.NumberFloatVal(c.Threshold))
		}
		root.AppendNewline()
	}

	for _, e := range res.Registry {
		body := root.AppendNewBlock("registry_entry", []string{e.Name}).Body()
		body.SetAttributeValue("fingerprint", cty.StringVal(e.Fingerprint))
	}

	_, err := f.WriteTo(w)
	return err
}

// toCtyValue converts a native Go value into its corresponding cty.Value.
func toCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}
