package jit

import (
	"jitcss/css"
	"jitcss/utils/debug"
)

// Dump describes build as an indented tree: statistics, dropped candidates
// and every output item with nested blocks. It is meant for debug report.
func (r *Result) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "build %s", r.ID)
	st := r.Stats
	tw.Line(1, "candidates=%d resolved=%d dropped=%d rules=%d families=%d cache=%d/%d elapsed=%s",
		st.Candidates, st.Resolved, st.Dropped, st.Rules, st.Families, st.CacheHits, st.CacheMisses, st.Elapsed)
	tw.List(1, "dropped", r.Dropped)
	tw.List(1, "warnings", r.Sheet.Warnings)
	tw.Line(1, "items (%d)", len(r.Sheet.Items))
	dumpItems(tw, 2, r.Sheet.Items)
	return tw.String()
}

func dumpItems(tw *debug.TreeWriter, depth int, items []css.Item) {
	for _, it := range items {
		switch {
		case it.Comment != nil:
			tw.Field(depth, "comment", it.Comment.Text)
		case it.Directive != nil:
			tw.Field(depth, "directive", it.Directive.String())
		case it.Decl != nil:
			tw.Field(depth, "decl", it.Decl.String())
		case it.Rule != nil:
			tw.Line(depth, "rule")
			tw.List(depth+1, "selectors", it.Rule.Selectors)
			dumpItems(tw, depth+1, it.Rule.Body)
		case it.AtRule != nil:
			tw.Field(depth, "at-rule", it.AtRule.Header())
			dumpItems(tw, depth+1, it.AtRule.Body)
		}
	}
}
