package jit

import (
	"slices"

	"jitcss/common"
	"jitcss/css"
)

// Optimize hoists composable family defaults out of the rule set: one rule
// per family selecting every consumer, outside of any at-rule. Hoisted rules
// go to anchor (end of base layer or start of utilities layer, negative
// when there is none) or before the first consumer, whichever comes first.
func Optimize(set *RuleSet, anchor int) []RuleNode {
	nodes := set.Nodes()
	groups := set.Defaults().Groups()
	if len(groups) == 0 {
		return nodes
	}

	pos := anchor
	for _, g := range groups {
		if pos < 0 || g.First < pos {
			pos = g.First
		}
	}
	pos = min(pos, len(nodes))

	hoisted := make([]RuleNode, 0, len(groups))
	for _, g := range groups {
		hoisted = append(hoisted, RuleNode{
			Selectors: slices.Clone(g.Selectors),
			Decls:     slices.Clone(g.Family.Defaults),
			Layer:     common.LayerBase,
		})
	}

	out := make([]RuleNode, 0, len(nodes)+len(hoisted))
	out = append(out, nodes[:pos]...)
	out = append(out, hoisted...)
	return append(out, nodes[pos:]...)
}

// toItems converts nodes into stylesheet items. Consecutive nodes sharing
// at-rule wrapper at the same depth are grouped into one block.
func toItems(nodes []RuleNode, depth int) []css.Item {
	var out []css.Item
	for i := 0; i < len(nodes); {
		n := nodes[i]
		if len(n.AtRules) <= depth {
			out = append(out, n.item())
			i++
			continue
		}
		head := n.AtRules[depth]
		j := i + 1
		for j < len(nodes) && len(nodes[j].AtRules) > depth && nodes[j].AtRules[depth] == head {
			j++
		}
		out = append(out, css.Item{AtRule: &css.AtRule{
			Name:   head.Name,
			Params: head.Params,
			Body:   toItems(nodes[i:j], depth+1),
		}})
		i = j
	}
	return out
}

func (n *RuleNode) item() css.Item {
	if n.Item != nil {
		return *n.Item
	}
	body := make([]css.Item, 0, len(n.Decls))
	for i := range n.Decls {
		d := n.Decls[i]
		body = append(body, css.Item{Decl: &d})
	}
	return css.Item{Rule: &css.Rule{Selectors: slices.Clone(n.Selectors), Body: body}}
}
