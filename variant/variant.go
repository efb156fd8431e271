// Package variant turns a variant stack into selector transformations and
// at-rule wrappers.
package variant

import (
	"fmt"
	"slices"

	"jitcss/registry"
	"jitcss/selector"
)

// Lookup resolves variant names, *registry.Registry implements it.
type Lookup interface {
	Variant(name string) (*registry.Variant, bool)
}

// AtRule is a conditional wrapper produced by at-rule variants.
type AtRule struct {
	Name   string
	Params string
}

// Applied is the outcome of applying transforms to selector parts.
type Applied struct {
	Parts   selector.Parts
	AtRules []AtRule // outermost first
	Content bool     // pseudo-element variant which needs content seed was applied
}

// Engine resolves variant stacks against registry.
type Engine struct {
	variants Lookup
}

// New creates variant engine.
func New(variants Lookup) *Engine {
	return &Engine{variants: variants}
}

// Resolve maps stack (authored order) to transforms in the same order.
// At most one pseudo-element variant is allowed in a stack.
func (e *Engine) Resolve(stack []string) ([]*registry.Variant, error) {
	out := make([]*registry.Variant, 0, len(stack))
	elements := 0
	for _, name := range stack {
		v, ok := e.variants.Variant(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
		}
		if v.Kind == registry.VariantKindPseudoElement {
			if elements++; elements > 1 {
				return nil, fmt.Errorf("%w: %q", ErrPseudoElementConflict, name)
			}
		}
		out = append(out, v)
	}
	return out, nil
}

// Apply applies transforms to parts. Innermost (last authored) variant is
// applied first so ancestor markers of outer variants lead the selector and
// pseudo-classes end up in authored order. Pseudo-element always renders
// last regardless of its authored position.
func Apply(parts selector.Parts, transforms []*registry.Variant) (Applied, error) {
	res := Applied{Parts: parts}
	for i := len(transforms) - 1; i >= 0; i-- {
		v := transforms[i]
		switch v.Kind {
		case registry.VariantKindCompound:
			res.Parts = res.Parts.WithTemplate(v.Selector)
		case registry.VariantKindAncestor:
			res.Parts = res.Parts.WithAncestor(v.Selector, v.Combinator)
		case registry.VariantKindPseudoElement:
			if res.Parts.Element != "" {
				return Applied{}, fmt.Errorf("%w: %q on %q", ErrPseudoElementConflict, v.Selector, res.Parts.String())
			}
			res.Parts.Element = v.Selector
			res.Content = v.Content
		case registry.VariantKindAtRule:
			res.AtRules = append([]AtRule{{Name: v.AtRule, Params: v.Params}}, res.AtRules...)
		default:
			return Applied{}, fmt.Errorf("variant %q: unsupported kind %s", v.Name, v.Kind)
		}
	}
	return res, nil
}

// Weight returns sort weight of transforms: registration orders, highest first.
func Weight(transforms []*registry.Variant) []int {
	w := make([]int, 0, len(transforms))
	for _, v := range transforms {
		w = append(w, v.Order)
	}
	slices.Sort(w)
	slices.Reverse(w)
	return w
}

// CompareWeight orders weights the way a bitset of variant orders compares
// as a big integer: the highest differing order decides, a longer weight
// sorts after its own prefix.
func CompareWeight(a, b []int) int {
	return slices.Compare(a, b)
}
