// Package jit generates stylesheet from authored CSS and class candidates:
// rules are built on demand for candidates actually used, @apply directives
// are expanded in place and composable family defaults are hoisted.
package jit

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jitcss/common"
	"jitcss/css"
	"jitcss/registry"
	"jitcss/variant"
)

// userOrder places authored layer classes after registered utilities.
const userOrder = 1 << 31

type sortKey struct {
	weight []int
	order  int
	index  int // candidate first-seen index
	sub    int // node index within candidate
}

func compareKeys(a, b sortKey) int {
	if c := variant.CompareWeight(a.weight, b.weight); c != 0 {
		return c
	}
	return cmp.Or(
		cmp.Compare(a.order, b.order),
		cmp.Compare(a.index, b.index),
		cmp.Compare(a.sub, b.sub),
	)
}

// Options control build.
type Options struct {
	Workers int // parallel candidate resolution, 0 means number of CPUs
	Style   common.OutputStyle
}

// Stats summarize single build.
type Stats struct {
	Candidates  int // distinct candidates
	Resolved    int
	Dropped     int
	Rules       int // top-level output items
	Families    int // hoisted family rules
	CacheHits   int64
	CacheMisses int64
	Elapsed     time.Duration
}

// Result is a generated stylesheet.
type Result struct {
	ID      uuid.UUID
	Sheet   *css.Stylesheet
	Stats   Stats
	Dropped []string // candidates which produced nothing, first-seen order
	style   common.OutputStyle
}

// WriteTo writes stylesheet in configured output style.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	return css.Writer{Style: r.style}.Write(w, r.Sheet.Items)
}

// Generator builds stylesheets for registry. It may be used for multiple
// builds, candidate cache is kept while registry and authored layers do not
// change.
type Generator struct {
	log    *zap.Logger
	reg    *registry.Registry
	parser *css.Parser
	opts   Options

	mu    sync.Mutex
	cache *Cache
}

// New creates generator.
func New(reg *registry.Registry, opts Options, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	log = log.Named("jit")
	return &Generator{
		log:    log,
		reg:    reg,
		parser: css.NewParser(log),
		opts:   opts,
	}
}

// Build generates stylesheet from authored CSS and candidates. Candidates
// order is significant only as first-seen tie-break. Unrecognized candidates
// are dropped, structural problems (directive cycles) fail the build.
func (g *Generator) Build(ctx context.Context, authored []byte, candidates []string) (*Result, error) {
	start := time.Now()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate build id: %w", err)
	}
	log := g.log.With(zap.Stringer("build", id))

	sheet := g.parser.Parse(authored)
	for _, w := range sheet.Warnings {
		log.Warn("Malformed authored CSS", zap.String("details", w))
	}

	l := splitLayers(sheet.Items)
	s := newSession(g.reg, log)
	if err := s.index(l); err != nil {
		return nil, fmt.Errorf("unable to expand layer directives: %w", err)
	}

	cache := g.cacheFor(g.fingerprint(l))
	cands := firstSeen(candidates)
	results, err := g.resolveAll(ctx, s, cache, cands)
	if err != nil {
		return nil, err
	}

	var (
		comps, utils []RuleNode
		droppedNames []string
	)
	for i, nodes := range results {
		if len(nodes) == 0 {
			droppedNames = append(droppedNames, cands[i])
		}
		for j, n := range nodes {
			n.key.index, n.key.sub = i, j
			if n.Layer == common.LayerComponents {
				comps = append(comps, n)
			} else {
				utils = append(utils, n)
			}
		}
	}
	sort.SliceStable(comps, func(i, j int) bool { return compareKeys(comps[i].key, comps[j].key) < 0 })
	sort.SliceStable(utils, func(i, j int) bool { return compareKeys(utils[i].key, utils[j].key) < 0 })

	set, anchor, err := s.assemble(l, comps, utils)
	if err != nil {
		return nil, err
	}
	nodes := Optimize(set, anchor)

	res := &Result{
		ID:      id,
		Sheet:   &css.Stylesheet{Items: toItems(nodes, 0), Warnings: sheet.Warnings},
		Dropped: droppedNames,
		style:   g.opts.Style,
	}
	res.Stats = Stats{
		Candidates: len(cands),
		Resolved:   len(cands) - len(droppedNames),
		Dropped:    len(droppedNames),
		Rules:      len(res.Sheet.Items),
		Families:   len(set.Defaults().Groups()),
		Elapsed:    time.Since(start),
	}
	res.Stats.CacheHits, res.Stats.CacheMisses = cache.Stats()

	log.Info("Build completed",
		zap.Int("candidates", res.Stats.Candidates),
		zap.Int("resolved", res.Stats.Resolved),
		zap.Int("dropped", res.Stats.Dropped),
		zap.Int("families", res.Stats.Families),
		zap.Duration("elapsed", res.Stats.Elapsed))
	return res, nil
}

// Resolvable returns distinct candidates which produce at least one rule
// with given authored layers, in first-seen order.
func (g *Generator) Resolvable(ctx context.Context, authored []byte, candidates []string) ([]string, error) {
	l := splitLayers(g.parser.Parse(authored).Items)
	s := newSession(g.reg, g.log)
	if err := s.index(l); err != nil {
		return nil, fmt.Errorf("unable to expand layer directives: %w", err)
	}

	cands := firstSeen(candidates)
	results, err := g.resolveAll(ctx, s, g.cacheFor(g.fingerprint(l)), cands)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cands))
	for i, nodes := range results {
		if len(nodes) > 0 {
			out = append(out, cands[i])
		}
	}
	return out, nil
}

// resolveAll resolves distinct candidates in parallel. Results are indexed
// by candidate position, never by completion order.
func (g *Generator) resolveAll(ctx context.Context, s *session, cache *Cache, cands []string) ([][]RuleNode, error) {
	results := make([][]RuleNode, len(cands))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, raw := range cands {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			nodes, err := cache.Get(raw, s.resolve)
			if err != nil {
				s.log.Debug("Candidate dropped", zap.String("candidate", raw), zap.Error(err))
				return nil
			}
			results[i] = nodes
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("candidate resolution interrupted: %w", err)
	}
	return results, nil
}

// assemble lays out output: authored items in order with layers inserted at
// @tailwind points. Returns rule set and anchor for hoisted defaults.
func (s *session) assemble(l layers, comps, utils []RuleNode) (*RuleSet, int, error) {
	var (
		errs   error
		set    = NewRuleSet()
		anchor = -1
		placed = make(map[common.Layer]bool)
	)

	base, err := s.bodyNodes(l.base, common.LayerBase, nil)
	errs = multierr.Append(errs, err)
	comps = append(s.classless(common.LayerComponents), comps...)
	utils = append(s.classless(common.LayerUtilities), utils...)

	insert := func(layer common.Layer, nodes []RuleNode) {
		placed[layer] = true
		if layer == common.LayerUtilities && anchor < 0 {
			anchor = set.Len()
		}
		for _, n := range nodes {
			set.Append(n)
		}
		if layer == common.LayerBase && anchor < 0 {
			anchor = set.Len()
		}
	}

	for _, item := range l.body {
		if d := item.Directive; d != nil && d.Name == "tailwind" {
			layer, err := common.ParseLayer(d.Params)
			if err != nil || !layer.Generated() {
				s.log.Warn("Unsupported @tailwind directive, ignoring", zap.String("params", d.Params), zap.Int("line", d.Line))
				continue
			}
			if placed[layer] {
				s.log.Warn("Repeated @tailwind directive, ignoring", zap.Stringer("layer", layer), zap.Int("line", d.Line))
				continue
			}
			switch layer {
			case common.LayerBase:
				insert(layer, base)
			case common.LayerComponents:
				insert(layer, comps)
			case common.LayerUtilities:
				insert(layer, utils)
			}
			continue
		}
		nodes, err := s.bodyNodes([]css.Item{item}, common.LayerUnlayered, nil)
		errs = multierr.Append(errs, err)
		for _, n := range nodes {
			set.Append(n)
		}
	}
	if errs != nil {
		return nil, 0, fmt.Errorf("unable to expand directives: %w", errs)
	}

	for _, pending := range []struct {
		layer common.Layer
		nodes []RuleNode
	}{{common.LayerBase, base}, {common.LayerComponents, comps}, {common.LayerUtilities, utils}} {
		if !placed[pending.layer] && len(pending.nodes) > 0 {
			s.log.Warn("No @tailwind directive for layer, appending rules to the end", zap.Stringer("layer", pending.layer))
			insert(pending.layer, pending.nodes)
		}
	}
	return set, anchor, nil
}

// bodyNodes converts authored items into nodes expanding @apply.
func (s *session) bodyNodes(items []css.Item, layer common.Layer, outer []variant.AtRule) ([]RuleNode, error) {
	var (
		errs  error
		nodes []RuleNode
	)
	for i := range items {
		item := items[i]
		switch {
		case item.Rule != nil && hasApply(item.Rule.Body):
			frags, err := s.expandRule(item.Rule, nil)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			for _, f := range frags {
				if len(f.decls) > 0 {
					nodes = append(nodes, f.node(layer, outer))
				}
			}
		case item.AtRule != nil && conditional[item.AtRule.Name] && hasApply(item.AtRule.Body):
			chain := append(append([]variant.AtRule(nil), outer...), variant.AtRule{Name: item.AtRule.Name, Params: item.AtRule.Params})
			inner, err := s.bodyNodes(item.AtRule.Body, layer, chain)
			errs = multierr.Append(errs, err)
			nodes = append(nodes, inner...)
		case item.Directive != nil && item.Directive.Name == "apply":
			s.log.Warn("@apply outside of rule, ignoring", zap.Int("line", item.Directive.Line))
		default:
			nodes = append(nodes, RuleNode{Item: &item, AtRules: outer, Layer: layer})
		}
	}
	return nodes, errs
}

// classless returns nodes of user rules in layer which are not indexed by
// any class and therefore always emitted.
func (s *session) classless(layer common.Layer) []RuleNode {
	var nodes []RuleNode
	for _, r := range s.users {
		if r.layer != layer || len(r.classes) > 0 || r.err != nil {
			continue
		}
		if r.item != nil {
			nodes = append(nodes, RuleNode{Item: r.item, AtRules: r.atRules, Layer: layer})
			continue
		}
		for _, f := range r.frags {
			if len(f.decls) > 0 {
				nodes = append(nodes, f.node(layer, nil))
			}
		}
	}
	return nodes
}

// fingerprint identifies inputs candidate cache depends on.
func (g *Generator) fingerprint(l layers) uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "%016x\n", g.reg.Fingerprint())
	w := css.Writer{Style: common.OutputStyleCompact}
	_, _ = w.Write(h, l.components)
	_, _ = h.WriteString("\x00")
	_, _ = w.Write(h, l.utilities)
	return h.Sum64()
}

func (g *Generator) cacheFor(fingerprint uint64) *Cache {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cache == nil || g.cache.Fingerprint() != fingerprint {
		if g.cache != nil {
			g.log.Debug("Candidate cache invalidated", zap.Uint64("old", g.cache.Fingerprint()), zap.Uint64("new", fingerprint))
		}
		g.cache = NewCache(fingerprint)
	}
	return g.cache
}

// firstSeen removes duplicate candidates keeping first occurrence.
func firstSeen(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
