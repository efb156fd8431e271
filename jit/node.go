package jit

import (
	"strings"

	"jitcss/common"
	"jitcss/css"
	"jitcss/registry"
	"jitcss/variant"
)

// FamilyUse records that a rule consumes variables of composable family.
// Selector is the rule selector without variant pseudo-classes and
// wrappers, it receives the family defaults.
type FamilyUse struct {
	Family   *registry.Family
	Selector string
}

// RuleNode is a single output rule. When Item is set node passes authored
// item through unchanged and only AtRules is taken into account.
type RuleNode struct {
	Selectors []string
	Decls     []css.Declaration
	AtRules   []variant.AtRule // outermost first
	Layer     common.Layer
	Uses      []FamilyUse
	Item      *css.Item

	key sortKey
}

// Selector returns selector list as it is written.
func (n *RuleNode) Selector() string {
	if n.Item != nil && n.Item.Rule != nil {
		return n.Item.Rule.Selector()
	}
	return joinSelectors(n.Selectors)
}

// CompositeDefaultGroup accumulates selectors requiring defaults of one family.
type CompositeDefaultGroup struct {
	Family    *registry.Family
	Selectors []string // first-encountered order, no duplicates
	First     int      // index of first consuming node

	seen map[string]bool
}

// DefaultsAccumulator is build scoped state collecting family usages as rule
// nodes are appended in output order.
type DefaultsAccumulator struct {
	groups []*CompositeDefaultGroup
	byName map[string]*CompositeDefaultGroup
}

// NewDefaultsAccumulator creates empty accumulator.
func NewDefaultsAccumulator() *DefaultsAccumulator {
	return &DefaultsAccumulator{byName: make(map[string]*CompositeDefaultGroup)}
}

// Add registers selector of node at index as family consumer.
func (a *DefaultsAccumulator) Add(f *registry.Family, sel string, index int) {
	g, ok := a.byName[f.Name]
	if !ok {
		g = &CompositeDefaultGroup{Family: f, First: index, seen: make(map[string]bool)}
		a.byName[f.Name] = g
		a.groups = append(a.groups, g)
	}
	if !g.seen[sel] {
		g.seen[sel] = true
		g.Selectors = append(g.Selectors, sel)
	}
}

// Groups returns groups in the order families were first encountered.
func (a *DefaultsAccumulator) Groups() []*CompositeDefaultGroup {
	return a.groups
}

// RuleSet is an arena of rule nodes in output order. Nodes are referenced by
// index so optimizer can regroup them freely.
type RuleSet struct {
	nodes    []RuleNode
	defaults *DefaultsAccumulator
}

// NewRuleSet creates empty rule set with its own accumulator.
func NewRuleSet() *RuleSet {
	return &RuleSet{defaults: NewDefaultsAccumulator()}
}

// Append adds node and registers its family usages. Returns node index.
func (s *RuleSet) Append(n RuleNode) int {
	idx := len(s.nodes)
	s.nodes = append(s.nodes, n)
	for _, u := range n.Uses {
		s.defaults.Add(u.Family, u.Selector, idx)
	}
	return idx
}

// Len returns number of nodes.
func (s *RuleSet) Len() int {
	return len(s.nodes)
}

// Nodes returns nodes in output order.
func (s *RuleSet) Nodes() []RuleNode {
	return s.nodes
}

// Defaults returns accumulator of the set.
func (s *RuleSet) Defaults() *DefaultsAccumulator {
	return s.defaults
}

func joinSelectors(sels []string) string {
	return strings.Join(sels, ", ")
}
