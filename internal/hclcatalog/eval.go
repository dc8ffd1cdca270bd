package hclcatalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/skilltree/internal/skillid"
)

// evalContext exposes every skill block as `skill.<label>` with its `id` and
// `title` attributes.
func evalContext(skills []*decodedSkill) *hcl.EvalContext {
	byLabel := make(map[string]cty.Value, len(skills))
	for _, s := range skills {
		byLabel[s.block.Label] = cty.ObjectVal(map[string]cty.Value{
			"id":    cty.NumberIntVal(s.block.ID),
			"title": cty.StringVal(s.block.Title),
		})
	}

	skillVal := cty.EmptyObjectVal
	if len(byLabel) > 0 {
		skillVal = cty.ObjectVal(byLabel)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"skill": skillVal},
	}
}

// isExprDefined reports whether an optional attribute was present in the
// source. gohcl fills omitted expression fields with a zero-width placeholder.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

// prerequisiteIDs evaluates a `prerequisites` expression into skill IDs.
func prerequisiteIDs(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]skillid.ID, error) {
	if !isExprDefined(expr) {
		return nil, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("prerequisites must be known at load time")
	}

	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, fmt.Errorf("prerequisites must be a list of skill ids, got %s", ty.FriendlyName())
	}

	ids := make([]skillid.ID, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		var n int64
		if err := gocty.FromCtyValue(elem, &n); err != nil {
			return nil, fmt.Errorf("prerequisites element %d: %w", len(ids), err)
		}
		ids = append(ids, skillid.ID(n))
	}
	return ids, nil
}
