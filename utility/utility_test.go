package utility_test

import (
	"errors"
	"strings"
	"testing"

	"jitcss/css"
	"jitcss/registry"
	"jitcss/utility"
)

func newResolver(t *testing.T) *utility.Resolver {
	t.Helper()
	r, err := registry.New(registry.Options{}, nil)
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}
	return utility.New(r)
}

func text(decls []css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}

func TestResolve(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name     string
		negative bool
		want     string
		family   string
		tail     string
	}{
		{name: "scale-x-110", want: "--tw-scale-x: 1.1; transform: var(--tw-transform)", family: registry.FamilyTransform},
		{name: "rotate-3", want: "--tw-rotate: 3deg; transform: var(--tw-transform)", family: registry.FamilyTransform},
		{name: "rotate-3", negative: true, want: "--tw-rotate: -3deg; transform: var(--tw-transform)", family: registry.FamilyTransform},
		{name: "skew-y-6", want: "--tw-skew-y: 6deg; transform: var(--tw-transform)", family: registry.FamilyTransform},
		{name: "w-1/2", want: "width: 50%"},
		{name: "w-[37px]", want: "width: 37px"},
		{name: "w-[calc(100%-2rem)]", want: "width: calc(100%-2rem)"},
		{name: "grid-cols-[1fr_2fr]", want: ""},
		{name: "bg-red-500/50", want: "background-color: rgba(239, 68, 68, 0.5)"},
		{name: "bg-red-500/[.37]", want: "background-color: rgba(239, 68, 68, .37)"},
		{name: "[mask-type:luminance]", want: "mask-type: luminance"},
		{name: "[grid-template-columns:1fr_2fr]", want: "grid-template-columns: 1fr 2fr"},
		{name: "space-x-4", want: "margin-right: calc(1rem * var(--tw-space-x-reverse)); margin-left: calc(1rem * calc(1 - var(--tw-space-x-reverse)))",
			family: registry.FamilySpace, tail: " > :not([hidden]) ~ :not([hidden])"},
		{name: "space-x-reverse", want: "--tw-space-x-reverse: 1", family: registry.FamilySpace, tail: " > :not([hidden]) ~ :not([hidden])"},
		{name: "ring-2", want: "--tw-ring-offset-shadow: var(--tw-ring-inset) 0 0 0 var(--tw-ring-offset-width) var(--tw-ring-offset-color); " +
			"--tw-ring-shadow: var(--tw-ring-inset) 0 0 0 calc(2px + var(--tw-ring-offset-width)) var(--tw-ring-color); " +
			"box-shadow: var(--tw-ring-offset-shadow), var(--tw-ring-shadow), var(--tw-shadow, 0 0 #0000)", family: registry.FamilyBoxShadow},
		{name: "ring-blue-500", want: "--tw-ring-opacity: 1; --tw-ring-color: rgba(59, 130, 246, var(--tw-ring-opacity))"},
		{name: "content-['hi']", want: "content: 'hi'"},
		{name: "hidden", want: "display: none"},
	}
	for _, tt := range tests {
		res, err := r.Resolve(tt.name, tt.negative)
		if tt.want == "" {
			if !errors.Is(err, utility.ErrUnrecognized) {
				t.Errorf("%s: expected unrecognized, got %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if got := text(res.Declarations); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
		family := ""
		if res.Family != nil {
			family = res.Family.Name
		}
		if family != tt.family {
			t.Errorf("%s: family %q, want %q", tt.name, family, tt.family)
		}
		if res.Tail != tt.tail {
			t.Errorf("%s: tail %q, want %q", tt.name, res.Tail, tt.tail)
		}
	}
}

func TestResolve_Errors(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name     string
		negative bool
		err      error
	}{
		{name: "nope", err: utility.ErrUnrecognized},
		{name: "rotate-7", err: utility.ErrUnrecognized},
		{name: "p-4", negative: true, err: utility.ErrUnrecognized},
		{name: "scale-x-110/50", err: utility.ErrInvalidModifier},
		{name: "bg-red-500/33", err: utility.ErrInvalidModifier},
		{name: "bg-current/50", err: utility.ErrUnrecognized},
		{name: "[mask-type:luminance]", negative: true, err: utility.ErrUnrecognized},
		{name: "w-[]", err: utility.ErrUnrecognized},
	}
	for _, tt := range tests {
		if _, err := r.Resolve(tt.name, tt.negative); !errors.Is(err, tt.err) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.err, err)
		}
	}
}

func TestResolve_Order(t *testing.T) {
	r := newResolver(t)
	order := func(name string) int {
		res, err := r.Resolve(name, false)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		return res.Order
	}
	if !(order("translate-x-4") < order("rotate-3") && order("rotate-3") < order("skew-y-6") && order("skew-y-6") < order("scale-x-110")) {
		t.Error("transform utilities must be ordered translate, rotate, skew, scale")
	}
	if order("[mask-type:luminance]") <= order("shadow") {
		t.Error("arbitrary properties must sort after registered utilities")
	}
}
