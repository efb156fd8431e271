package selector

import (
	"strings"
)

// Parts is a selector decomposed around its subject compound. Variants
// operate on parts: pseudo-classes are appended to the subject, ancestor
// markers extend the prefix and pseudo-element always renders last.
type Parts struct {
	Prefix  string   // ancestor compounds with combinators, ends with space
	Subject string   // compound carrying the utility class or the whole host selector
	Pseudo  []string // pseudo-classes and attribute selectors appended to subject
	Suffix  string   // tail following subject compound (e.g. " > * + *")
	Element string   // pseudo-element, e.g. "::before"

	base string // set by templates: template applied to the base of parts
}

// ForClass returns parts for utility class with optional intrinsic tail.
func ForClass(class, tail string) Parts {
	return Parts{Subject: Class(class), Suffix: tail}
}

// FromSelector decomposes single (not a list) authored selector. Trailing
// pseudo-element, if any, is separated so it keeps rendering last.
func FromSelector(sel string) Parts {
	sel = strings.TrimSpace(sel)
	if idx := trailingPseudoElement(sel); idx >= 0 {
		return Parts{Subject: sel[:idx], Element: normalizeElement(sel[idx:])}
	}
	return Parts{Subject: sel}
}

// AroundClass decomposes selector around the compound holding the first
// top-level occurrence of class: compounds before it become prefix, those
// after it become suffix. Returns false when selector does not use class.
func AroundClass(sel, class string) (Parts, bool) {
	sel = strings.TrimSpace(sel)
	pos := indexClass(sel, Class(class))
	if pos < 0 {
		return Parts{}, false
	}
	start, end := compoundBounds(sel, pos)
	p := Parts{Prefix: sel[:start], Subject: sel[start:end], Suffix: sel[end:]}
	if p.Suffix == "" {
		if idx := trailingPseudoElement(p.Subject); idx >= 0 {
			p.Subject, p.Element = p.Subject[:idx], normalizeElement(p.Subject[idx:])
		}
	}
	return p, true
}

// String renders selector.
func (p Parts) String() string {
	var sb strings.Builder
	sb.WriteString(p.Prefix)
	sb.WriteString(p.Subject)
	for _, ps := range p.Pseudo {
		sb.WriteString(ps)
	}
	sb.WriteString(p.Suffix)
	sb.WriteString(p.Element)
	return sb.String()
}

// Base renders selector shared family defaults are attached to: the last
// compound of subject without pseudo-classes, followed by suffix and
// pseudo-element. Result is the same for all state and relation variants.
func (p Parts) Base() string {
	if p.base != "" {
		return p.base + p.Element
	}
	return LastCompound(p.Subject) + p.Suffix + p.Element
}

// WithPseudo returns copy of parts with pseudo-class inserted in front of
// already appended ones.
func (p Parts) WithPseudo(ps string) Parts {
	out := p
	out.Pseudo = make([]string, 0, len(p.Pseudo)+1)
	out.Pseudo = append(out.Pseudo, ps)
	out.Pseudo = append(out.Pseudo, p.Pseudo...)
	return out
}

// WithAncestor returns copy of parts with marker compound and combinator
// placed in front of everything built so far.
func (p Parts) WithAncestor(marker, combinator string) Parts {
	out := p
	out.Pseudo = append([]string(nil), p.Pseudo...)
	if combinator = strings.TrimSpace(combinator); combinator == "" {
		out.Prefix = marker + " " + p.Prefix
	} else {
		out.Prefix = marker + " " + combinator + " " + p.Prefix
	}
	return out
}

// WithTemplate substitutes selector built so far (without pseudo-element)
// for every '&' in template. Template without '&' is appended to subject.
// Base of the result is the template applied to base of p, so state added
// before the template does not reach family defaults.
func (p Parts) WithTemplate(tmpl string) Parts {
	if !strings.Contains(tmpl, "&") {
		return p.WithPseudo(tmpl)
	}

	cur := p
	cur.Element = ""
	return Parts{
		Subject: strings.ReplaceAll(tmpl, "&", cur.String()),
		Element: p.Element,
		base:    strings.ReplaceAll(tmpl, "&", cur.Base()),
	}
}

// LastCompound returns the last compound of selector with pseudo-classes
// removed. Pseudo-element, if present, is kept. Universal selector is
// returned when nothing else remains.
func LastCompound(sel string) string {
	sel = strings.TrimSpace(sel)
	start, _ := compoundBounds(sel, len(sel))
	c := sel[start:]

	var (
		sb       strings.Builder
		depth    int
		skipping bool
	)
	for i := 0; i < len(c); i++ {
		ch := c[i]
		switch {
		case ch == '\\':
			e := escapeEnd(c, i)
			if !skipping {
				sb.WriteString(c[i : e+1])
			}
			i = e
			continue
		case ch == '(' || ch == '[':
			if depth == 0 && ch == '[' {
				skipping = false
			}
			depth++
		case ch == ')' || ch == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (ch == '.' || ch == '#'):
			skipping = false
		case depth == 0 && ch == ':':
			if strings.HasPrefix(c[i:], "::") || isLegacyElement(c[i:]) {
				sb.WriteString(c[i:])
				i = len(c)
				continue
			}
			skipping = true
		}
		if !skipping {
			sb.WriteByte(ch)
		}
	}
	out := sb.String()
	if out == "" || strings.HasPrefix(out, ":") {
		out = "*" + out
	}
	return out
}

// compoundBounds returns boundaries of the compound containing byte at pos.
func compoundBounds(sel string, pos int) (start, end int) {
	depth := 0
	for i := 0; i < len(sel); i++ {
		switch c := sel[i]; {
		case c == '\\':
			i = escapeEnd(sel, i)
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && isCombinator(c):
			if i < pos {
				start = i + 1
			} else {
				return start, i
			}
		}
	}
	return start, len(sel)
}

func isCombinator(c byte) bool {
	return c == ' ' || c == '>' || c == '+' || c == '~' || c == '\t' || c == '\n'
}

func isLegacyElement(s string) bool {
	for _, le := range legacyElements {
		if strings.EqualFold(s, le) {
			return true
		}
	}
	return false
}

var legacyElements = []string{":before", ":after", ":first-line", ":first-letter"}

// trailingPseudoElement returns index of pseudo-element ending selector, -1
// when there is none.
func trailingPseudoElement(sel string) int {
	depth, found := 0, -1
	for i := 0; i < len(sel); i++ {
		switch c := sel[i]; c {
		case '\\':
			i = escapeEnd(sel, i)
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ' ', '>', '+', '~', '\t', '\n':
			if depth == 0 {
				found = -1
			}
		case ':':
			if depth != 0 || found >= 0 {
				continue
			}
			if strings.HasPrefix(sel[i:], "::") {
				found = i
				i++
				continue
			}
			if isLegacyElement(sel[i:]) {
				found = i
			}
		}
	}
	if found == 0 {
		return -1
	}
	return found
}

func normalizeElement(el string) string {
	if !strings.HasPrefix(el, "::") {
		return ":" + el
	}
	return el
}
