// Package candidate splits raw class-like tokens into variant stack and base
// utility name.
package candidate

import (
	"errors"
	"fmt"
	"strings"

	"jitcss/registry"
	"jitcss/variant"
)

// ErrMalformed is returned for tokens which cannot be class candidates at all.
var ErrMalformed = errors.New("malformed candidate")

// VariantLookup resolves variant names, *registry.Registry implements it.
type VariantLookup interface {
	Variant(name string) (*registry.Variant, bool)
}

// Candidate is a parsed raw token. It is immutable once parsed.
type Candidate struct {
	Raw       string
	Variants  []string // authored order, outermost first
	Important bool     // "!" in front of utility
	Negative  bool     // "-" in front of utility
	Name      string   // utility part without "!" and "-", prefix kept
	Base      string   // Name with configured prefix removed
	Prefixed  bool     // Name carries configured prefix (always true without prefix)
}

// Parser parses raw tokens for a particular registry configuration.
type Parser struct {
	separator string
	prefix    string
	variants  VariantLookup
}

// NewParser creates parser. Empty separator defaults to ":".
func NewParser(separator, prefix string, variants VariantLookup) *Parser {
	if separator == "" {
		separator = ":"
	}
	return &Parser{separator: separator, prefix: prefix, variants: variants}
}

// Parse splits raw token. Leading segments must all be known variants,
// otherwise the whole token is rejected. Result is a pure function of raw and
// parser configuration.
func (p *Parser) Parse(raw string) (Candidate, error) {
	if raw == "" || strings.ContainsAny(raw, " \t\r\n") {
		return Candidate{}, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	segments, err := SplitTopLevel(raw, p.separator)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %q: %w", ErrMalformed, raw, err)
	}

	c := Candidate{Raw: raw}
	last := len(segments) - 1
	for _, seg := range segments[:last] {
		if _, ok := p.variants.Variant(seg); !ok {
			return Candidate{}, fmt.Errorf("%w: %q in %q", variant.ErrUnknownVariant, seg, raw)
		}
		c.Variants = append(c.Variants, seg)
	}

	name := segments[last]
	if strings.HasPrefix(name, "!") {
		c.Important = true
		name = name[1:]
	}
	if strings.HasPrefix(name, "-") {
		c.Negative = true
		name = name[1:]
	}
	if name == "" || strings.HasPrefix(name, "-") {
		return Candidate{}, fmt.Errorf("%w: empty utility in %q", ErrMalformed, raw)
	}
	c.Name = name

	c.Base, c.Prefixed = name, true
	if p.prefix != "" {
		c.Base, c.Prefixed = strings.CutPrefix(name, p.prefix)
		if c.Prefixed && c.Base == "" {
			return Candidate{}, fmt.Errorf("%w: empty utility in %q", ErrMalformed, raw)
		}
	}
	return c, nil
}

// SplitTopLevel splits s on sep outside of brackets and parentheses.
func SplitTopLevel(s, sep string) ([]string, error) {
	var (
		out   []string
		stack []byte
		start int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
			continue
		case '[', '(':
			stack = append(stack, c)
			continue
		case ']', ')':
			if len(stack) == 0 || (c == ']') != (stack[len(stack)-1] == '[') {
				return nil, fmt.Errorf("unbalanced %q at %d", c, i)
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if len(stack) == 0 && strings.HasPrefix(s[i:], sep) {
			out = append(out, s[start:i])
			i += len(sep) - 1
			start = i + 1
		}
	}
	if len(stack) != 0 {
		return nil, errors.New("unclosed bracket")
	}
	return append(out, s[start:]), nil
}
