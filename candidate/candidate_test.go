package candidate_test

import (
	"errors"
	"slices"
	"testing"

	"jitcss/candidate"
	"jitcss/registry"
	"jitcss/variant"
)

func newParser(t *testing.T, sep, prefix string) *candidate.Parser {
	t.Helper()
	r, err := registry.New(registry.Options{Separator: sep, Prefix: prefix}, nil)
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}
	return candidate.NewParser(r.Separator(), r.Prefix(), r)
}

func TestParse(t *testing.T) {
	p := newParser(t, "", "")

	tests := []struct {
		raw       string
		variants  []string
		base      string
		important bool
		negative  bool
	}{
		{raw: "scale-x-110", base: "scale-x-110"},
		{raw: "hover:scale-x-110", variants: []string{"hover"}, base: "scale-x-110"},
		{raw: "group-hover:before:scale-x-110", variants: []string{"group-hover", "before"}, base: "scale-x-110"},
		{raw: "hover:focus:hover:p-4", variants: []string{"hover", "focus", "hover"}, base: "p-4"},
		{raw: "md:!p-4", variants: []string{"md"}, base: "p-4", important: true},
		{raw: "-rotate-3", base: "rotate-3", negative: true},
		{raw: "!-mt-4", base: "mt-4", important: true, negative: true},
		{raw: "bg-red-500/50", base: "bg-red-500/50"},
		{raw: "[&:nth-child(3)]:w-[calc(100%-2rem)]", variants: []string{"[&:nth-child(3)]"}, base: "w-[calc(100%-2rem)]"},
		{raw: "[mask-type:luminance]", base: "[mask-type:luminance]"},
		{raw: "hover:[mask-type:luminance]", variants: []string{"hover"}, base: "[mask-type:luminance]"},
		{raw: "supports-[display:grid]:grid", variants: []string{"supports-[display:grid]"}, base: "grid"},
	}
	for _, tt := range tests {
		c, err := p.Parse(tt.raw)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.raw, err)
			continue
		}
		if !slices.Equal(c.Variants, tt.variants) || c.Base != tt.base ||
			c.Important != tt.important || c.Negative != tt.negative || c.Raw != tt.raw {
			t.Errorf("Parse(%q) = %+v", tt.raw, c)
		}
	}
}

func TestParse_Rejected(t *testing.T) {
	p := newParser(t, "", "")

	tests := []struct {
		raw string
		err error
	}{
		{"unknown:p-4", variant.ErrUnknownVariant},
		{"hover:unknown:p-4", variant.ErrUnknownVariant},
		{"hover::p-4", variant.ErrUnknownVariant},
		{"", candidate.ErrMalformed},
		{"hover:", candidate.ErrMalformed},
		{"w-[37px", candidate.ErrMalformed},
		{"w-37px]", candidate.ErrMalformed},
		{"--x", candidate.ErrMalformed},
		{"a b", candidate.ErrMalformed},
	}
	for _, tt := range tests {
		if _, err := p.Parse(tt.raw); !errors.Is(err, tt.err) {
			t.Errorf("Parse(%q): expected %v, got %v", tt.raw, tt.err, err)
		}
	}
}

func TestParse_SeparatorAndPrefix(t *testing.T) {
	p := newParser(t, "__", "tw-")

	c, err := p.Parse("hover__-tw-mt-2")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !slices.Equal(c.Variants, []string{"hover"}) || !c.Negative || !c.Prefixed || c.Base != "mt-2" || c.Name != "tw-mt-2" {
		t.Errorf("unexpected candidate %+v", c)
	}

	c, err = p.Parse("btn")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Prefixed || c.Name != "btn" {
		t.Errorf("unexpected candidate %+v", c)
	}

	if c, err := p.Parse("hover:p-4"); err != nil || len(c.Variants) != 0 || c.Prefixed {
		t.Errorf("colon must not split with custom separator: %+v, %v", c, err)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := newParser(t, "", "")
	a, errA := p.Parse("group-hover:hover:before:scale-x-110")
	b, errB := p.Parse("group-hover:hover:before:scale-x-110")
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors %v %v", errA, errB)
	}
	if !slices.Equal(a.Variants, b.Variants) || a.Base != b.Base {
		t.Error("equal raw strings must parse identically")
	}
}

func TestSplitTopLevel(t *testing.T) {
	got, err := candidate.SplitTopLevel(`a:[b:c]:d\:e:(f:g)`, ":")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []string{"a", "[b:c]", `d\:e`, "(f:g)"}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
