package css

import (
	"strings"
)

// Declaration is a single property: value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// String returns declaration text without trailing semicolon.
func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// Rule is a qualified rule: selector list and body. Body may contain
// declarations, directives and nested rules.
type Rule struct {
	Selectors []string // Selector list, each member trimmed
	Body      []Item
	Line      int // Line number in source for error reporting
}

// Selector returns the selector list joined as it would be written.
func (r *Rule) Selector() string {
	return strings.Join(r.Selectors, ", ")
}

// Declarations returns declarations of the rule body in source order,
// nested rules and directives are skipped.
func (r *Rule) Declarations() []Declaration {
	var decls []Declaration
	for _, item := range r.Body {
		if item.Decl != nil {
			decls = append(decls, *item.Decl)
		}
	}
	return decls
}

// AtRule is an at-rule with a block (@media, @supports, @layer, @font-face...).
type AtRule struct {
	Name   string // Name without leading '@'
	Params string
	Body   []Item
	Line   int
}

// Header returns at-rule prelude as it would be written.
func (a *AtRule) Header() string {
	if a.Params == "" {
		return "@" + a.Name
	}
	return "@" + a.Name + " " + a.Params
}

// Directive is a block-less at-rule statement (@apply, @tailwind, @import...).
type Directive struct {
	Name   string // Name without leading '@'
	Params string
	Line   int
}

// String returns directive text without trailing semicolon.
func (d *Directive) String() string {
	if d.Params == "" {
		return "@" + d.Name
	}
	return "@" + d.Name + " " + d.Params
}

// Comment keeps comment text including delimiters.
type Comment struct {
	Text string
}

// Item is a single node of a stylesheet or of a block body.
// Exactly one of the fields is non-nil.
type Item struct {
	Rule      *Rule
	AtRule    *AtRule
	Directive *Directive
	Decl      *Declaration
	Comment   *Comment
}

// Stylesheet represents a parsed or generated CSS stylesheet.
type Stylesheet struct {
	Items    []Item   // All top-level items in source order
	Warnings []string // Warnings for malformed input
}

// Directives returns all directives with the given name found anywhere in
// the stylesheet, in source order.
func (s *Stylesheet) Directives(name string) []*Directive {
	var found []*Directive
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, item := range items {
			switch {
			case item.Directive != nil && item.Directive.Name == name:
				found = append(found, item.Directive)
			case item.Rule != nil:
				walk(item.Rule.Body)
			case item.AtRule != nil:
				walk(item.AtRule.Body)
			}
		}
	}
	walk(s.Items)
	return found
}

// RulesBySelector returns all top-level rules whose selector list is
// exactly the given selector text.
func (s *Stylesheet) RulesBySelector(selector string) []*Rule {
	var matches []*Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector() == selector {
			matches = append(matches, item.Rule)
		}
	}
	return matches
}

// Clone returns a deep copy of items.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		switch {
		case item.Rule != nil:
			r := *item.Rule
			r.Selectors = append([]string(nil), r.Selectors...)
			r.Body = Clone(r.Body)
			out = append(out, Item{Rule: &r})
		case item.AtRule != nil:
			a := *item.AtRule
			a.Body = Clone(a.Body)
			out = append(out, Item{AtRule: &a})
		case item.Directive != nil:
			d := *item.Directive
			out = append(out, Item{Directive: &d})
		case item.Decl != nil:
			d := *item.Decl
			out = append(out, Item{Decl: &d})
		case item.Comment != nil:
			c := *item.Comment
			out = append(out, Item{Comment: &c})
		}
	}
	return out
}
