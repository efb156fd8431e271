package jit

import (
	"slices"

	"jitcss/common"
	"jitcss/css"
	"jitcss/selector"
	"jitcss/variant"
)

// conditional lists at-rules generated rules may be wrapped into.
var conditional = map[string]bool{
	"media":     true,
	"supports":  true,
	"container": true,
}

// layers is authored stylesheet split by layer.
type layers struct {
	body       []css.Item // top-level items, @layer blocks of known layers removed
	base       []css.Item
	components []css.Item
	utilities  []css.Item
}

func splitLayers(items []css.Item) layers {
	var l layers
	for _, item := range items {
		if at := item.AtRule; at != nil && at.Name == "layer" {
			switch layer, err := common.ParseLayer(at.Params); {
			case err != nil || layer == common.LayerUnlayered:
			case layer == common.LayerBase:
				l.base = append(l.base, at.Body...)
				continue
			case layer == common.LayerComponents:
				l.components = append(l.components, at.Body...)
				continue
			case layer == common.LayerUtilities:
				l.utilities = append(l.utilities, at.Body...)
				continue
			}
		}
		l.body = append(l.body, item)
	}
	return l
}

// userRule is an authored rule from components or utilities layer.
type userRule struct {
	index   int
	layer   common.Layer
	rule    *css.Rule
	atRules []variant.AtRule // conditional blocks inside the layer
	classes []string         // classes rule is indexed by
	item    *css.Item        // non-rule item kept as is

	state expansion
	frags []fragment
	err   error
}

type expansion int

const (
	expansionPending expansion = iota
	expansionRunning
	expansionDone
)

// collectUserRules flattens layer items into user rules keeping
// conditional at-rule context.
func collectUserRules(items []css.Item, layer common.Layer, atRules []variant.AtRule, out []*userRule) []*userRule {
	for i := range items {
		item := items[i]
		switch {
		case item.Rule != nil:
			out = append(out, &userRule{
				index:   len(out),
				layer:   layer,
				rule:    item.Rule,
				atRules: atRules,
				classes: ruleClasses(item.Rule),
			})
		case item.AtRule != nil && conditional[item.AtRule.Name]:
			chain := append(append([]variant.AtRule(nil), atRules...), variant.AtRule{Name: item.AtRule.Name, Params: item.AtRule.Params})
			out = collectUserRules(item.AtRule.Body, layer, chain, out)
		case item.Comment != nil:
		default:
			out = append(out, &userRule{index: len(out), layer: layer, atRules: atRules, item: &item, state: expansionDone})
		}
	}
	return out
}

func ruleClasses(r *css.Rule) []string {
	var classes []string
	for _, sel := range r.Selectors {
		for _, c := range selector.Classes(sel) {
			if !slices.Contains(classes, c) {
				classes = append(classes, c)
			}
		}
	}
	return classes
}

// hasApply reports whether items contain @apply at any depth.
func hasApply(items []css.Item) bool {
	for _, item := range items {
		switch {
		case item.Directive != nil && item.Directive.Name == "apply":
			return true
		case item.Rule != nil && hasApply(item.Rule.Body):
			return true
		case item.AtRule != nil && hasApply(item.AtRule.Body):
			return true
		}
	}
	return false
}
