package hcl_adapter

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/wpreg/internal/wperr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeCuts evaluates a `cuts` expression. A list is indexed by position;
// an object is keyed by the category index in its plain decimal form, so
// "00" or "+0" never alias category 0. Gaps and
// non-finite values are caught later by the cut table itself.
func decodeCuts(expr hcl.Expression) (map[int]float64, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%w: cuts must be a known, non-null value", wperr.ErrInvalidDefinition)
	}

	ty := val.Type()
	switch {
	case ty.IsTupleType() || ty.IsListType():
		list, err := convert.Convert(val, cty.List(cty.Number))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", wperr.ErrMalformedCutTable, err)
		}
		out := make(map[int]float64, list.LengthInt())
		for it := list.ElementIterator(); it.Next(); {
			k, v := it.Element()
			idx, _ := k.AsBigFloat().Int64()
			f, err := ctyToFloat(v)
			if err != nil {
				return nil, fmt.Errorf("category %d: %w", idx, err)
			}
			out[int(idx)] = f
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		m, err := convert.Convert(val, cty.Map(cty.Number))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", wperr.ErrMalformedCutTable, err)
		}
		out := make(map[int]float64, m.LengthInt())
		for it := m.ElementIterator(); it.Next(); {
			k, v := it.Element()
			key := k.AsString()
			idx, err := strconv.Atoi(key)
			if err != nil || strconv.Itoa(idx) != key {
				return nil, fmt.Errorf("%w: category key %q is not a plain integer", wperr.ErrMalformedCutTable, key)
			}
			f, err := ctyToFloat(v)
			if err != nil {
				return nil, fmt.Errorf("category %d: %w", idx, err)
			}
			out[idx] = f
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: cuts must be a list or an object keyed by category, got %s", wperr.ErrMalformedCutTable, ty.FriendlyName())
	}
}

func ctyToFloat(v cty.Value) (float64, error) {
	if v.IsNull() {
		return 0, fmt.Errorf("%w: null threshold", wperr.ErrMalformedCutTable)
	}
	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return 0, fmt.Errorf("%w: %s", wperr.ErrMalformedCutTable, err)
	}
	return f, nil
}

// decodeStringMap evaluates an object or map expression of strings.
func decodeStringMap(expr hcl.Expression) (map[string]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return map[string]string{}, nil
	}
	m, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("%w: expected a map of strings: %s", wperr.ErrInvalidDefinition, err)
	}
	out := map[string]string{}
	if err := gocty.FromCtyValue(m, &out); err != nil {
		return nil, fmt.Errorf("%w: %s", wperr.ErrInvalidDefinition, err)
	}
	return out, nil
}
