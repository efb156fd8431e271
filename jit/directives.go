package jit

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"jitcss/candidate"
	"jitcss/common"
	"jitcss/css"
	"jitcss/registry"
	"jitcss/selector"
	"jitcss/utility"
	"jitcss/variant"
)

// fragment is a rule produced by expansion before it becomes a node.
type fragment struct {
	selectors []string
	atRules   []variant.AtRule
	decls     []css.Declaration
	uses      []FamilyUse
	order     int
}

func (f *fragment) node(layer common.Layer, outer []variant.AtRule) RuleNode {
	n := RuleNode{
		Selectors: f.selectors,
		Decls:     f.decls,
		Layer:     layer,
		Uses:      f.uses,
	}
	if len(outer)+len(f.atRules) > 0 {
		n.AtRules = make([]variant.AtRule, 0, len(outer)+len(f.atRules))
		n.AtRules = append(n.AtRules, outer...)
		n.AtRules = append(n.AtRules, f.atRules...)
	}
	return n
}

// step is a single "host applies utility" expansion in progress.
type step struct {
	host    string
	utility string
	owner   *userRule
}

func (s step) String() string {
	return s.host + " -> " + s.utility
}

// session is build scoped state of directive resolution. After user rules
// are expanded it is only read, so candidates may be resolved concurrently.
type session struct {
	log       *zap.Logger
	parser    *candidate.Parser
	engine    *variant.Engine
	resolver  *utility.Resolver
	important bool

	users   []*userRule
	byClass map[string][]*userRule
	stack   []step
}

func newSession(reg *registry.Registry, log *zap.Logger) *session {
	return &session{
		log:       log,
		parser:    candidate.NewParser(reg.Separator(), reg.Prefix(), reg),
		engine:    variant.New(reg),
		resolver:  utility.New(reg),
		important: reg.Important(),
		byClass:   make(map[string][]*userRule),
	}
}

// index registers user rules of components and utilities layers and expands
// their directives. Returned error aggregates all structural failures.
func (s *session) index(l layers) error {
	s.users = collectUserRules(l.components, common.LayerComponents, nil, nil)
	s.users = collectUserRules(l.utilities, common.LayerUtilities, nil, s.users)
	for i, r := range s.users {
		r.index = i
		for _, c := range r.classes {
			s.byClass[c] = append(s.byClass[c], r)
		}
	}

	var (
		errs error
		seen []error
	)
	for _, r := range s.users {
		if _, err := s.userFragments(r, step{}); err != nil {
			for _, e := range multierr.Errors(err) {
				if !slices.Contains(seen, e) {
					seen = append(seen, e)
					errs = multierr.Append(errs, e)
				}
			}
		}
	}
	return errs
}

// userFragments returns expanded fragments of user rule, expanding it on
// first request. Request for a rule which is being expanded is a cycle.
func (s *session) userFragments(r *userRule, via step) ([]fragment, error) {
	switch r.state {
	case expansionDone:
		return r.frags, r.err
	case expansionRunning:
		from := slices.IndexFunc(s.stack, func(st step) bool { return st.owner == r })
		if from < 0 {
			from = 0
		}
		chain := make([]string, 0, len(s.stack)-from+1)
		for _, st := range s.stack[from:] {
			chain = append(chain, st.String())
		}
		if from < len(s.stack) {
			chain = append(chain, s.stack[from].String())
		} else {
			chain = append(chain, via.String())
		}
		return nil, &CycleError{Chain: chain}
	}

	r.state = expansionRunning
	frags, err := s.expandRule(r.rule, r)
	r.state = expansionDone
	if err != nil {
		r.err = err
		return nil, err
	}
	// conditional blocks the rule sits in wrap everything it produces
	if len(r.atRules) > 0 {
		for i := range frags {
			frags[i].atRules = append(slices.Clip(r.atRules), frags[i].atRules...)
		}
	}
	r.frags = frags
	return r.frags, nil
}

// expandRule expands @apply directives of rule. First fragment is the rule
// itself with authored and inlined declarations. For selector lists every
// member gets its own fragment with applied declarations, authored ones stay
// with the list. Fragments produced by variants follow.
func (s *session) expandRule(rule *css.Rule, owner *userRule) ([]fragment, error) {
	var (
		errs     error
		siblings []fragment
		main     = fragment{selectors: rule.Selectors}
		members  []fragment
	)

	single := len(rule.Selectors) == 1
	if !single {
		members = make([]fragment, len(rule.Selectors))
		for i, sel := range rule.Selectors {
			members[i] = fragment{selectors: []string{sel}}
		}
	}

	for _, item := range rule.Body {
		switch {
		case item.Decl != nil:
			main.decls = append(main.decls, *item.Decl)
		case item.Directive != nil && item.Directive.Name == "apply":
			tokens, important := applyParams(item.Directive.Params)
			for _, tok := range tokens {
				for i, host := range rule.Selectors {
					frags, err := s.apply(tok, host, important, owner)
					if err != nil {
						errs = multierr.Append(errs, err)
						continue
					}
					target := &main
					if !single {
						target = &members[i]
					}
					for _, f := range frags {
						if len(f.atRules) == 0 && len(f.selectors) == 1 && f.selectors[0] == host {
							target.decls = append(target.decls, f.decls...)
							target.uses = append(target.uses, f.uses...)
							continue
						}
						siblings = append(siblings, f)
					}
				}
			}
		case item.Directive != nil:
			s.log.Warn("Unsupported directive inside rule, ignoring",
				zap.String("selector", rule.Selector()), zap.Stringer("directive", item.Directive), zap.Int("line", item.Directive.Line))
		case item.Rule != nil || item.AtRule != nil:
			s.log.Warn("Nested blocks are not supported, ignoring", zap.String("selector", rule.Selector()), zap.Int("line", rule.Line))
		}
	}
	if errs != nil {
		return nil, errs
	}

	out := make([]fragment, 0, 1+len(members)+len(siblings))
	out = append(out, main)
	out = append(out, members...)
	return append(out, siblings...), nil
}

// applyParams splits @apply parameters into candidates and important flag.
func applyParams(params string) ([]string, bool) {
	var (
		tokens    []string
		important bool
	)
	for _, f := range strings.Fields(params) {
		if f == "!important" {
			important = true
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens, important
}

// apply resolves candidate tok against host selector. Both core utility and
// user classes with the same name contribute.
func (s *session) apply(tok, host string, important bool, owner *userRule) ([]fragment, error) {
	c, err := s.parser.Parse(tok)
	if err != nil {
		s.log.Warn("Unable to parse @apply candidate, skipping", zap.String("host", host), zap.String("candidate", tok), zap.Error(err))
		return nil, nil
	}
	transforms, err := s.engine.Resolve(c.Variants)
	if err != nil {
		s.log.Warn("Unable to resolve @apply variants, skipping", zap.String("host", host), zap.String("candidate", tok), zap.Error(err))
		return nil, nil
	}
	important = important || c.Important

	var out []fragment
	if c.Prefixed {
		if f, ok := s.core(c, transforms, selector.FromSelector(host), important); ok {
			out = append(out, f)
		}
	}

	self := owner != nil && slices.Contains(owner.classes, c.Name)
	if !self {
		st := step{host: host, utility: tok, owner: owner}
		s.stack = append(s.stack, st)
		for _, r := range s.byClass[c.Name] {
			frags, err := s.userFragments(r, st)
			if err != nil {
				s.stack = s.stack[:len(s.stack)-1]
				return nil, err
			}
			out = append(out, retarget(frags, c.Name, host, transforms, important)...)
		}
		s.stack = s.stack[:len(s.stack)-1]
	}

	if len(out) == 0 {
		if self {
			st := step{host: host, utility: tok}.String()
			return nil, &CycleError{Chain: []string{st, st}}
		}
		s.log.Warn("Unknown @apply candidate, skipping", zap.String("host", host), zap.String("candidate", tok))
	}
	return out, nil
}

// core resolves candidate as registered utility applied to parts.
func (s *session) core(c candidate.Candidate, transforms []*registry.Variant, parts selector.Parts, important bool) (fragment, bool) {
	res, err := s.resolver.Resolve(c.Base, c.Negative)
	if err != nil {
		if !errors.Is(err, utility.ErrUnrecognized) {
			s.log.Debug("Candidate rejected", zap.String("candidate", c.Raw), zap.Error(err))
		}
		return fragment{}, false
	}
	parts.Suffix += res.Tail
	applied, err := variant.Apply(parts, transforms)
	if err != nil {
		s.log.Debug("Candidate rejected", zap.String("candidate", c.Raw), zap.Error(err))
		return fragment{}, false
	}

	f := fragment{
		selectors: []string{applied.Parts.String()},
		atRules:   applied.AtRules,
		decls:     withContent(res.Declarations, applied.Content, important),
		order:     res.Order,
	}
	if res.Family != nil {
		f.uses = []FamilyUse{{Family: res.Family, Selector: applied.Parts.Base()}}
	}
	return f, true
}

// retarget moves fragments of user class to target selector. Variants are
// applied to the compound holding the class, compounds around it are kept.
func retarget(frags []fragment, class, target string, transforms []*registry.Variant, important bool) []fragment {
	var out []fragment
	for _, f := range frags {
		if len(f.decls) == 0 {
			continue
		}
		for _, sel := range f.selectors {
			parts, ok := retargetParts(sel, class, target)
			if !ok {
				continue
			}
			applied, err := variant.Apply(parts, transforms)
			if err != nil {
				continue
			}
			nf := fragment{
				selectors: []string{applied.Parts.String()},
				atRules:   append(slices.Clip(applied.AtRules), f.atRules...),
				decls:     withContent(f.decls, applied.Content, important),
			}
			for _, u := range f.uses {
				up, ok := retargetParts(u.Selector, class, target)
				if !ok {
					up = selector.FromSelector(u.Selector)
				}
				ha, err := variant.Apply(up, transforms)
				if err != nil {
					continue
				}
				nf.uses = append(nf.uses, FamilyUse{Family: u.Family, Selector: ha.Parts.Base()})
			}
			out = append(out, nf)
		}
	}
	return out
}

// retargetParts decomposes sel around class and substitutes target for
// every occurrence of the class.
func retargetParts(sel, class, target string) (selector.Parts, bool) {
	parts, ok := selector.AroundClass(sel, class)
	if !ok {
		return selector.Parts{}, false
	}
	parts.Prefix, _ = selector.ReplaceClass(parts.Prefix, class, target)
	parts.Subject, _ = selector.ReplaceClass(parts.Subject, class, target)
	parts.Suffix, _ = selector.ReplaceClass(parts.Suffix, class, target)
	return parts, true
}

// withContent copies declarations marking them important when requested and
// seeds pseudo-element content unless declarations set it.
func withContent(decls []css.Declaration, content, important bool) []css.Declaration {
	out := make([]css.Declaration, 0, len(decls)+1)
	if content && !slices.ContainsFunc(decls, func(d css.Declaration) bool { return d.Property == "content" }) {
		out = append(out, css.Declaration{Property: "content", Value: "''"})
	}
	for _, d := range decls {
		d.Important = d.Important || important
		out = append(out, d)
	}
	return out
}

// resolve turns raw candidate into rule nodes, core utility first followed
// by matching user classes. Safe for concurrent use once index returned.
func (s *session) resolve(raw string) ([]RuleNode, error) {
	c, err := s.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	transforms, err := s.engine.Resolve(c.Variants)
	if err != nil {
		return nil, err
	}
	weight := variant.Weight(transforms)

	var nodes []RuleNode
	if c.Prefixed {
		if f, ok := s.core(c, transforms, selector.ForClass(raw, ""), c.Important || s.important); ok {
			n := f.node(common.LayerUtilities, nil)
			n.key = sortKey{weight: weight, order: f.order}
			nodes = append(nodes, n)
		}
	}
	for _, r := range s.byClass[c.Name] {
		if r.err != nil {
			continue
		}
		for _, f := range retarget(r.frags, c.Name, selector.Class(raw), transforms, c.Important) {
			n := f.node(r.layer, nil)
			n.key = sortKey{weight: weight, order: userOrder + r.index}
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %q", utility.ErrUnrecognized, raw)
	}
	return nodes, nil
}
