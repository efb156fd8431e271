package registry

import (
	"jitcss/css"
)

// Composable family tags.
const (
	FamilyTransform      = "transform"
	FamilyFilter         = "filter"
	FamilyBackdropFilter = "backdrop-filter"
	FamilyBoxShadow      = "box-shadow"
	FamilySpace          = "space"
	FamilyDivide         = "divide"
)

const empty = "var(--tw-empty,/*!*/ /*!*/)"

func decl(prop, value string) css.Declaration {
	return css.Declaration{Property: prop, Value: value}
}

func coreFamilies() []*Family {
	return []*Family{
		{Name: FamilyTransform, Defaults: []css.Declaration{
			decl("--tw-translate-x", "0"),
			decl("--tw-translate-y", "0"),
			decl("--tw-rotate", "0"),
			decl("--tw-skew-x", "0"),
			decl("--tw-skew-y", "0"),
			decl("--tw-scale-x", "1"),
			decl("--tw-scale-y", "1"),
			decl("--tw-transform", "translateX(var(--tw-translate-x)) translateY(var(--tw-translate-y)) "+
				"rotate(var(--tw-rotate)) skewX(var(--tw-skew-x)) skewY(var(--tw-skew-y)) "+
				"scaleX(var(--tw-scale-x)) scaleY(var(--tw-scale-y))"),
		}},
		{Name: FamilyFilter, Defaults: []css.Declaration{
			decl("--tw-blur", empty),
			decl("--tw-brightness", empty),
			decl("--tw-contrast", empty),
			decl("--tw-grayscale", empty),
			decl("--tw-hue-rotate", empty),
			decl("--tw-invert", empty),
			decl("--tw-saturate", empty),
			decl("--tw-sepia", empty),
			decl("--tw-drop-shadow", empty),
			decl("--tw-filter", "var(--tw-blur) var(--tw-brightness) var(--tw-contrast) var(--tw-grayscale) "+
				"var(--tw-hue-rotate) var(--tw-invert) var(--tw-saturate) var(--tw-sepia) var(--tw-drop-shadow)"),
		}},
		{Name: FamilyBackdropFilter, Defaults: []css.Declaration{
			decl("--tw-backdrop-blur", empty),
			decl("--tw-backdrop-brightness", empty),
			decl("--tw-backdrop-contrast", empty),
			decl("--tw-backdrop-grayscale", empty),
			decl("--tw-backdrop-hue-rotate", empty),
			decl("--tw-backdrop-invert", empty),
			decl("--tw-backdrop-opacity", empty),
			decl("--tw-backdrop-saturate", empty),
			decl("--tw-backdrop-sepia", empty),
			decl("--tw-backdrop-filter", "var(--tw-backdrop-blur) var(--tw-backdrop-brightness) "+
				"var(--tw-backdrop-contrast) var(--tw-backdrop-grayscale) var(--tw-backdrop-hue-rotate) "+
				"var(--tw-backdrop-invert) var(--tw-backdrop-opacity) var(--tw-backdrop-saturate) var(--tw-backdrop-sepia)"),
		}},
		{Name: FamilyBoxShadow, Defaults: []css.Declaration{
			decl("--tw-ring-inset", empty),
			decl("--tw-ring-offset-width", "0px"),
			decl("--tw-ring-offset-color", "#fff"),
			decl("--tw-ring-color", "rgba(59, 130, 246, 0.5)"),
			decl("--tw-ring-offset-shadow", "0 0 #0000"),
			decl("--tw-ring-shadow", "0 0 #0000"),
			decl("--tw-shadow", "0 0 #0000"),
		}},
		{Name: FamilySpace, Defaults: []css.Declaration{
			decl("--tw-space-x-reverse", "0"),
			decl("--tw-space-y-reverse", "0"),
		}},
		{Name: FamilyDivide, Defaults: []css.Declaration{
			decl("--tw-divide-x-reverse", "0"),
			decl("--tw-divide-y-reverse", "0"),
		}},
	}
}
