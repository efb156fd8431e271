package registry_test

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"jitcss/css"
	"jitcss/registry"
)

func newRegistry(t *testing.T, opts registry.Options) *registry.Registry {
	t.Helper()
	r, err := registry.New(opts, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}
	return r
}

func TestNew_Defaults(t *testing.T) {
	r := newRegistry(t, registry.Options{})

	if r.Separator() != ":" {
		t.Errorf("expected default separator, got %q", r.Separator())
	}
	for _, name := range []string{"hover", "focus", "before", "group-hover", "peer-focus", "md", "dark"} {
		if _, ok := r.Variant(name); !ok {
			t.Errorf("expected core variant %q", name)
		}
	}
	if len(r.Utilities("rotate")) != 1 {
		t.Errorf("expected rotate utility")
	}
	if f, ok := r.Family(registry.FamilyTransform); !ok || len(f.Defaults) != 8 {
		t.Errorf("expected transform family with 8 defaults, got %+v", f)
	}
}

func TestVariantOrder(t *testing.T) {
	r := newRegistry(t, registry.Options{})
	order := func(name string) int {
		v, ok := r.Variant(name)
		if !ok {
			t.Fatalf("variant %q not found", name)
		}
		return v.Order
	}
	if !(order("before") < order("hover") && order("hover") < order("focus")) {
		t.Error("pseudo-elements must precede hover which must precede focus")
	}
	if !(order("focus") < order("group-hover") && order("group-hover") < order("peer-focus")) {
		t.Error("group variants must follow pseudo-classes and precede peer variants")
	}
	if !(order("dark") < order("sm") && order("sm") < order("md") && order("md") < order("2xl")) {
		t.Error("screens must be last and ordered")
	}
	if order("md") > order("min-[900px]") {
		t.Error("arbitrary min-width must follow screens")
	}
}

func TestDynamicVariants(t *testing.T) {
	r := newRegistry(t, registry.Options{Prefix: "tw-"})
	tests := []struct {
		name     string
		kind     registry.VariantKind
		selector string
		atRule   string
		params   string
	}{
		{name: "[&>*]", kind: registry.VariantKindCompound, selector: "&>*"},
		{name: "[&_p]", kind: registry.VariantKindCompound, selector: "& p"},
		{name: "[@media(min-width:900px)]", kind: registry.VariantKindAtRule, atRule: "media", params: "(min-width:900px)"},
		{name: "group-[.is-open]", kind: registry.VariantKindAncestor, selector: ".tw-group.is-open"},
		{name: "peer-[&:checked]", kind: registry.VariantKindAncestor, selector: ".tw-peer:checked"},
		{name: "group-hover", kind: registry.VariantKindAncestor, selector: ".tw-group:hover"},
		{name: "data-[state=open]", kind: registry.VariantKindCompound, selector: "[data-state=open]"},
		{name: "aria-[sort=ascending]", kind: registry.VariantKindCompound, selector: "[aria-sort=ascending]"},
		{name: "supports-[display:grid]", kind: registry.VariantKindAtRule, atRule: "supports", params: "(display:grid)"},
		{name: "max-[600px]", kind: registry.VariantKindAtRule, atRule: "media", params: "(max-width: 600px)"},
	}
	for _, tt := range tests {
		v, ok := r.Variant(tt.name)
		if !ok {
			t.Errorf("variant %q not resolved", tt.name)
			continue
		}
		if v.Kind != tt.kind || v.Selector != tt.selector || v.AtRule != tt.atRule || v.Params != tt.params {
			t.Errorf("variant %q: unexpected %+v", tt.name, v)
		}
	}

	for _, name := range []string{"[p]", "unknown", "group-[]", "[]"} {
		if _, ok := r.Variant(name); ok {
			t.Errorf("variant %q must not resolve", name)
		}
	}
}

func TestDarkModeClass(t *testing.T) {
	r := newRegistry(t, registry.Options{Theme: registry.Theme{DarkMode: "class"}})
	v, _ := r.Variant("dark")
	if v.Kind != registry.VariantKindAncestor || v.Selector != ".dark" {
		t.Errorf("unexpected dark variant %+v", v)
	}
}

func TestUserEntries(t *testing.T) {
	r := newRegistry(t, registry.Options{
		Variants: []registry.VariantSpec{
			{Name: "hocus", Kind: "compound", Selector: ":is(:hover, :focus)"},
			{Name: "parent-open", Kind: "ancestor", Selector: ".parent[open]", Combinator: ">"},
			{Name: "tall", Kind: "at-rule", AtRule: "@media", Params: "(min-height: 800px)"},
			{Name: "mark", Kind: "pseudo-element", Selector: "::marker"},
		},
		Utilities: []registry.UtilitySpec{
			{Name: "tilt", Family: registry.FamilyTransform, Declarations: []css.Declaration{
				{Property: "--tw-rotate", Value: "2deg"},
				{Property: "transform", Value: "var(--tw-transform)"},
			}},
		},
	})

	v, ok := r.Variant("tall")
	if !ok || v.AtRule != "media" {
		t.Errorf("unexpected user at-rule variant %+v", v)
	}
	if v, _ := r.Variant("parent-open"); v.Combinator != ">" {
		t.Errorf("unexpected combinator %q", v.Combinator)
	}
	us := r.Utilities("tilt")
	if len(us) != 1 || us[0].Family != registry.FamilyTransform {
		t.Fatalf("unexpected user utility %+v", us)
	}
	decls, ok := us[0].Generate(registry.Value{})
	if !ok || len(decls) != 2 {
		t.Errorf("unexpected user utility declarations %+v", decls)
	}
	if _, ok := us[0].Generate(registry.Value{Key: "1"}); ok {
		t.Error("static utility must reject value")
	}
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts registry.Options
	}{
		{"unknown kind", registry.Options{Variants: []registry.VariantSpec{{Name: "x", Kind: "sideways", Selector: ":x"}}}},
		{"duplicate variant", registry.Options{Variants: []registry.VariantSpec{{Name: "hover", Kind: "compound", Selector: ":hover"}}}},
		{"bad pseudo-element", registry.Options{Variants: []registry.VariantSpec{{Name: "x", Kind: "pseudo-element", Selector: ":x"}}}},
		{"at-rule without params", registry.Options{Variants: []registry.VariantSpec{{Name: "x", Kind: "at-rule", AtRule: "media"}}}},
		{"unknown family", registry.Options{Utilities: []registry.UtilitySpec{{Name: "x", Family: "nope", Declarations: []css.Declaration{{Property: "a", Value: "b"}}}}}},
		{"empty utility", registry.Options{Utilities: []registry.UtilitySpec{{Name: "x"}}}},
		{"unknown core plugin", registry.Options{CorePlugins: []string{"teleport"}}},
		{"bad dark mode", registry.Options{Theme: registry.Theme{DarkMode: "sometimes"}}},
		{"duplicate screen", registry.Options{Theme: registry.Theme{Screens: []registry.Screen{{"a", "1px"}, {"a", "2px"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.New(tt.opts, nil)
			var ce *registry.ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if ce.Entry == "" || ce.Reason == "" {
				t.Errorf("error lacks context: %+v", ce)
			}
		})
	}
}

func TestCorePluginAllowList(t *testing.T) {
	r := newRegistry(t, registry.Options{CorePlugins: []string{"transform", "scale", "rotate", "skew"}})
	if len(r.Utilities("rotate")) != 1 || len(r.Utilities("scale-x")) != 1 {
		t.Error("allowed plugins must be registered")
	}
	if len(r.Utilities("p")) != 0 || len(r.Utilities("translate-x")) != 0 {
		t.Error("plugins outside of allow-list must not be registered")
	}
}

func TestGenerators(t *testing.T) {
	r := newRegistry(t, registry.Options{})
	gen := func(root string, v registry.Value) []css.Declaration {
		for _, u := range r.Utilities(root) {
			if decls, ok := u.Generate(v); ok {
				return decls
			}
		}
		return nil
	}

	tests := []struct {
		root string
		v    registry.Value
		want string
	}{
		{"scale-x", registry.Value{Key: "110"}, "--tw-scale-x: 1.1;transform: var(--tw-transform)"},
		{"scale", registry.Value{Key: "50"}, "--tw-scale-x: .5;--tw-scale-y: .5;transform: var(--tw-transform)"},
		{"rotate", registry.Value{Key: "3", Negative: true}, "--tw-rotate: -3deg;transform: var(--tw-transform)"},
		{"rotate", registry.Value{Key: "7deg", Arbitrary: true, Negative: true}, "--tw-rotate: -7deg;transform: var(--tw-transform)"},
		{"mt", registry.Value{Key: "0", Negative: true}, "margin-top: 0px"},
		{"mt", registry.Value{Key: "var(--x)", Arbitrary: true, Negative: true}, "margin-top: calc(var(--x) * -1)"},
		{"bg", registry.Value{Key: "red-500"}, "--tw-bg-opacity: 1;background-color: rgba(239, 68, 68, var(--tw-bg-opacity))"},
		{"bg", registry.Value{Key: "red-500", Alpha: "0.5"}, "background-color: rgba(239, 68, 68, 0.5)"},
		{"bg", registry.Value{Key: "#0f0", Arbitrary: true}, "--tw-bg-opacity: 1;background-color: rgba(0, 255, 0, var(--tw-bg-opacity))"},
		{"text", registry.Value{Key: "lg"}, "font-size: 1.125rem;line-height: 1.75rem"},
		{"text", registry.Value{Key: "14px", Arbitrary: true}, "font-size: 14px"},
		{"text", registry.Value{Key: "white"}, "--tw-text-opacity: 1;color: rgba(255, 255, 255, var(--tw-text-opacity))"},
		{"border", registry.Value{}, "border-width: 1px"},
		{"w", registry.Value{Key: "1/2"}, "width: 50%"},
		{"blur", registry.Value{}, "--tw-blur: blur(8px);filter: var(--tw-filter)"},
	}
	for _, tt := range tests {
		decls := gen(tt.root, tt.v)
		var got string
		for i, d := range decls {
			if i > 0 {
				got += ";"
			}
			got += d.String()
		}
		if got != tt.want {
			t.Errorf("%s %+v: got %q, want %q", tt.root, tt.v, got, tt.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := newRegistry(t, registry.Options{})
	b := newRegistry(t, registry.Options{})
	c := newRegistry(t, registry.Options{Prefix: "tw-"})
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal options must give equal fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different options must give different fingerprints")
	}
}

func TestDecodeArbitrary(t *testing.T) {
	if got := registry.DecodeArbitrary(`a_b\_c`); got != "a b_c" {
		t.Errorf("unexpected %q", got)
	}
}
