package registry

import (
	"strings"
)

// pseudoElements in registration order. Value is rendered element.
var pseudoElements = []struct {
	name, element string
	content       bool
}{
	{"first-letter", "::first-letter", false},
	{"first-line", "::first-line", false},
	{"marker", "::marker", false},
	{"selection", "::selection", false},
	{"file", "::file-selector-button", false},
	{"placeholder", "::placeholder", false},
	{"backdrop", "::backdrop", false},
	{"before", "::before", true},
	{"after", "::after", true},
}

// pseudoClasses in registration order, also used as group/peer states.
var pseudoClasses = []struct {
	name, selector string
}{
	{"first", ":first-child"},
	{"last", ":last-child"},
	{"only", ":only-child"},
	{"odd", ":nth-child(odd)"},
	{"even", ":nth-child(even)"},
	{"first-of-type", ":first-of-type"},
	{"last-of-type", ":last-of-type"},
	{"only-of-type", ":only-of-type"},
	{"visited", ":visited"},
	{"target", ":target"},
	{"open", "[open]"},
	{"default", ":default"},
	{"checked", ":checked"},
	{"indeterminate", ":indeterminate"},
	{"placeholder-shown", ":placeholder-shown"},
	{"autofill", ":autofill"},
	{"optional", ":optional"},
	{"required", ":required"},
	{"valid", ":valid"},
	{"invalid", ":invalid"},
	{"in-range", ":in-range"},
	{"out-of-range", ":out-of-range"},
	{"read-only", ":read-only"},
	{"empty", ":empty"},
	{"focus-within", ":focus-within"},
	{"hover", ":hover"},
	{"focus", ":focus"},
	{"focus-visible", ":focus-visible"},
	{"active", ":active"},
	{"enabled", ":enabled"},
	{"disabled", ":disabled"},
}

var ariaStates = []string{"busy", "checked", "disabled", "expanded", "hidden", "pressed", "readonly", "required", "selected"}

// Reserved slot names for parameterized variants.
const (
	slotArbitrary  = "arbitrary"
	slotData       = "data"
	slotAria       = "aria"
	slotGroup      = "group"
	slotPeer       = "peer"
	slotSupports   = "supports"
	slotMinWidth   = "min"
	slotMaxWidth   = "max"
	slotUserOffset = "user"
)

func (r *Registry) addVariant(v *Variant) {
	v.Order = len(r.variants) + len(r.slots) + 1
	r.variants[v.Name] = v
}

func (r *Registry) reserve(slot string) {
	r.slots[slot] = len(r.variants) + len(r.slots) + 1
}

// registerVariants registers core variants in cascade order followed by user
// variants, screens are always last.
func (r *Registry) registerVariants(specs []VariantSpec) error {
	for _, pe := range pseudoElements {
		r.addVariant(&Variant{Name: pe.name, Kind: VariantKindPseudoElement, Selector: pe.element, Content: pe.content})
	}
	for _, pc := range pseudoClasses {
		r.addVariant(&Variant{Name: pc.name, Kind: VariantKindCompound, Selector: pc.selector})
	}
	r.reserve(slotArbitrary)

	group, peer := r.prefixed("group"), r.prefixed("peer")
	for _, pc := range pseudoClasses {
		r.addVariant(&Variant{Name: "group-" + pc.name, Kind: VariantKindAncestor, Selector: "." + group + pc.selector, Combinator: " "})
	}
	r.reserve(slotGroup)
	for _, pc := range pseudoClasses {
		r.addVariant(&Variant{Name: "peer-" + pc.name, Kind: VariantKindAncestor, Selector: "." + peer + pc.selector, Combinator: "~"})
	}
	r.reserve(slotPeer)

	for _, state := range ariaStates {
		r.addVariant(&Variant{Name: "aria-" + state, Kind: VariantKindCompound, Selector: `[aria-` + state + `="true"]`})
	}
	r.reserve(slotAria)
	r.reserve(slotData)

	r.addVariant(&Variant{Name: "ltr", Kind: VariantKindAncestor, Selector: `[dir="ltr"]`, Combinator: " "})
	r.addVariant(&Variant{Name: "rtl", Kind: VariantKindAncestor, Selector: `[dir="rtl"]`, Combinator: " "})
	r.addVariant(&Variant{Name: "motion-safe", Kind: VariantKindAtRule, AtRule: "media", Params: "(prefers-reduced-motion: no-preference)"})
	r.addVariant(&Variant{Name: "motion-reduce", Kind: VariantKindAtRule, AtRule: "media", Params: "(prefers-reduced-motion: reduce)"})
	if r.theme.DarkMode == "class" {
		r.addVariant(&Variant{Name: "dark", Kind: VariantKindAncestor, Selector: ".dark", Combinator: " "})
	} else {
		r.addVariant(&Variant{Name: "dark", Kind: VariantKindAtRule, AtRule: "media", Params: "(prefers-color-scheme: dark)"})
	}
	r.addVariant(&Variant{Name: "print", Kind: VariantKindAtRule, AtRule: "media", Params: "print"})
	r.addVariant(&Variant{Name: "portrait", Kind: VariantKindAtRule, AtRule: "media", Params: "(orientation: portrait)"})
	r.addVariant(&Variant{Name: "landscape", Kind: VariantKindAtRule, AtRule: "media", Params: "(orientation: landscape)"})
	r.reserve(slotSupports)

	r.reserve(slotUserOffset)
	for _, spec := range specs {
		v, err := r.userVariant(spec)
		if err != nil {
			return err
		}
		r.addVariant(v)
	}

	seen := make(map[string]bool, len(r.theme.Screens))
	for _, s := range r.theme.Screens {
		if s.Name == "" || s.Min == "" {
			return confErr("screen", s.Name, "both name and min width are required")
		}
		if seen[s.Name] {
			return confErr("screen", s.Name, "defined more than once")
		}
		seen[s.Name] = true
		if _, dup := r.variants[s.Name]; dup {
			return confErr("screen", s.Name, "name collides with variant")
		}
		r.addVariant(&Variant{Name: s.Name, Kind: VariantKindAtRule, AtRule: "media", Params: "(min-width: " + s.Min + ")"})
	}
	r.reserve(slotMinWidth)
	r.reserve(slotMaxWidth)
	return nil
}

func (r *Registry) userVariant(spec VariantSpec) (*Variant, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, confErr("variant", "<empty>", "name is required")
	}
	if strings.Contains(name, r.separator) {
		return nil, confErr("variant", name, "name contains separator %q", r.separator)
	}
	if _, dup := r.variants[name]; dup {
		return nil, confErr("variant", name, "defined more than once")
	}
	kind, err := ParseVariantKind(spec.Kind)
	if err != nil {
		return nil, confErr("variant", name, "unknown kind %q, expected one of %s", spec.Kind, strings.Join(VariantKindNames(), ", "))
	}

	v := &Variant{Name: name, Kind: kind}
	switch kind {
	case VariantKindCompound:
		if spec.Selector == "" {
			return nil, confErr("variant", name, "selector is required")
		}
		v.Selector = spec.Selector
	case VariantKindAncestor:
		if spec.Selector == "" {
			return nil, confErr("variant", name, "marker selector is required")
		}
		switch c := strings.TrimSpace(spec.Combinator); c {
		case "", ">", "+", "~":
			v.Combinator = " "
			if c != "" {
				v.Combinator = c
			}
		default:
			return nil, confErr("variant", name, "unknown combinator %q", spec.Combinator)
		}
		v.Selector = spec.Selector
	case VariantKindAtRule:
		if spec.AtRule == "" || spec.Params == "" {
			return nil, confErr("variant", name, "at_rule and params are required")
		}
		v.AtRule = strings.TrimPrefix(spec.AtRule, "@")
		v.Params = spec.Params
	case VariantKindPseudoElement:
		if !strings.HasPrefix(spec.Selector, "::") {
			return nil, confErr("variant", name, "pseudo-element selector must start with '::'")
		}
		v.Selector = spec.Selector
		v.Content = spec.Selector == "::before" || spec.Selector == "::after"
	}
	return v, nil
}

func (r *Registry) prefixed(name string) string {
	return r.prefix + name
}

// Variant returns variant by name. Besides registered variants it resolves
// parameterized forms: "[&>*]", "[@media(...)]", "group-[.x]", "peer-[.x]",
// "data-[x]", "aria-[x]", "supports-[x]", "min-[x]" and "max-[x]".
func (r *Registry) Variant(name string) (*Variant, bool) {
	if v, ok := r.variants[name]; ok {
		return v, true
	}

	if arg, ok := bracketed(name); ok {
		if strings.HasPrefix(arg, "@") {
			at, params, _ := strings.Cut(arg[1:], " ")
			if i := strings.IndexAny(at, "("); i > 0 && params == "" {
				at, params = at[:i], at[i:]
			}
			if at == "" || params == "" {
				return nil, false
			}
			return &Variant{Name: name, Kind: VariantKindAtRule, AtRule: at, Params: params, Order: r.slots[slotArbitrary]}, true
		}
		if !strings.Contains(arg, "&") {
			return nil, false
		}
		return &Variant{Name: name, Kind: VariantKindCompound, Selector: arg, Order: r.slots[slotArbitrary]}, true
	}

	head, arg, ok := parameterized(name)
	if !ok {
		return nil, false
	}
	switch head {
	case "group", "peer":
		marker := "." + r.prefixed(head)
		if strings.Contains(arg, "&") {
			marker = strings.ReplaceAll(arg, "&", marker)
		} else {
			marker += arg
		}
		comb := " "
		if head == "peer" {
			comb = "~"
		}
		return &Variant{Name: name, Kind: VariantKindAncestor, Selector: marker, Combinator: comb, Order: r.slots[head]}, true
	case "data":
		return &Variant{Name: name, Kind: VariantKindCompound, Selector: "[data-" + arg + "]", Order: r.slots[slotData]}, true
	case "aria":
		return &Variant{Name: name, Kind: VariantKindCompound, Selector: "[aria-" + arg + "]", Order: r.slots[slotAria]}, true
	case "supports":
		if !strings.HasPrefix(arg, "(") {
			arg = "(" + arg + ")"
		}
		return &Variant{Name: name, Kind: VariantKindAtRule, AtRule: "supports", Params: arg, Order: r.slots[slotSupports]}, true
	case "min":
		return &Variant{Name: name, Kind: VariantKindAtRule, AtRule: "media", Params: "(min-width: " + arg + ")", Order: r.slots[slotMinWidth]}, true
	case "max":
		return &Variant{Name: name, Kind: VariantKindAtRule, AtRule: "media", Params: "(max-width: " + arg + ")", Order: r.slots[slotMaxWidth]}, true
	}
	return nil, false
}

// bracketed returns content of "[...]" with underscores turned into spaces.
func bracketed(s string) (string, bool) {
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	return DecodeArbitrary(s[1 : len(s)-1]), true
}

// parameterized splits "head-[arg]".
func parameterized(s string) (string, string, bool) {
	head, rest, ok := strings.Cut(s, "-[")
	if !ok || head == "" {
		return "", "", false
	}
	arg, ok := bracketed("[" + rest)
	if !ok || arg == "" {
		return "", "", false
	}
	return head, arg, true
}

// DecodeArbitrary converts arbitrary value as written in class name into
// CSS text: underscores become spaces, escaped underscores are kept.
func DecodeArbitrary(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '_':
			sb.WriteByte('_')
			i++
		case s[i] == '_':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
