package registry

import (
	"jitcss/css"
)

const spaceTail = " > :not([hidden]) ~ :not([hidden])"

// propGroup is a utility root setting several properties to one value.
type propGroup struct {
	root  string
	props []string
}

type utilityOption func(*Utility)

func negative(u *Utility) { u.Negative = true }
func alpha(u *Utility)    { u.Alpha = true }

func inFamily(name string) utilityOption {
	return func(u *Utility) { u.Family = name }
}

func withTail(tail string) utilityOption {
	return func(u *Utility) { u.Tail = tail }
}

// coreUtilities returns core utilities in registration order which is also
// the order of generated rules.
func coreUtilities(t Theme) []*Utility {
	var list []*Utility
	add := func(plugin, root string, gen Generator, opts ...utilityOption) {
		u := &Utility{Root: root, Plugin: plugin, Generate: gen}
		for _, o := range opts {
			o(u)
		}
		list = append(list, u)
	}
	statics := func(plugin string, table [][3]string) {
		for _, row := range table {
			add(plugin, row[0], static(decl(row[1], row[2])))
		}
	}

	spacing := t.Spacing
	spacingAuto := merge(spacing, map[string]string{"auto": "auto"})
	sizing := merge(spacing, fractions, map[string]string{"auto": "auto"})

	// Space and divide
	add("space", "space-x", scaled(spacing, func(v string) []css.Declaration {
		return []css.Declaration{
			decl("margin-right", "calc("+v+" * var(--tw-space-x-reverse))"),
			decl("margin-left", "calc("+v+" * calc(1 - var(--tw-space-x-reverse)))"),
		}
	}), negative, inFamily(FamilySpace), withTail(spaceTail))
	add("space", "space-y", scaled(spacing, func(v string) []css.Declaration {
		return []css.Declaration{
			decl("margin-top", "calc("+v+" * calc(1 - var(--tw-space-y-reverse)))"),
			decl("margin-bottom", "calc("+v+" * var(--tw-space-y-reverse))"),
		}
	}), negative, inFamily(FamilySpace), withTail(spaceTail))
	add("space", "space-x-reverse", static(decl("--tw-space-x-reverse", "1")), inFamily(FamilySpace), withTail(spaceTail))
	add("space", "space-y-reverse", static(decl("--tw-space-y-reverse", "1")), inFamily(FamilySpace), withTail(spaceTail))

	add("divideWidth", "divide-x", scaled(widthScale, func(v string) []css.Declaration {
		return []css.Declaration{
			decl("border-right-width", "calc("+v+" * var(--tw-divide-x-reverse))"),
			decl("border-left-width", "calc("+v+" * calc(1 - var(--tw-divide-x-reverse)))"),
		}
	}), inFamily(FamilyDivide), withTail(spaceTail))
	add("divideWidth", "divide-y", scaled(widthScale, func(v string) []css.Declaration {
		return []css.Declaration{
			decl("border-top-width", "calc("+v+" * calc(1 - var(--tw-divide-y-reverse)))"),
			decl("border-bottom-width", "calc("+v+" * var(--tw-divide-y-reverse))"),
		}
	}), inFamily(FamilyDivide), withTail(spaceTail))
	add("divideWidth", "divide-x-reverse", static(decl("--tw-divide-x-reverse", "1")), inFamily(FamilyDivide), withTail(spaceTail))
	add("divideWidth", "divide-y-reverse", static(decl("--tw-divide-y-reverse", "1")), inFamily(FamilyDivide), withTail(spaceTail))
	add("divideColor", "divide", color(t.Colors, "border-color", "--tw-divide-opacity"), alpha, withTail(spaceTail))

	// Accessibility
	add("accessibility", "sr-only", static(
		decl("position", "absolute"), decl("width", "1px"), decl("height", "1px"), decl("padding", "0"),
		decl("margin", "-1px"), decl("overflow", "hidden"), decl("clip", "rect(0, 0, 0, 0)"),
		decl("white-space", "nowrap"), decl("border-width", "0")))
	add("accessibility", "not-sr-only", static(
		decl("position", "static"), decl("width", "auto"), decl("height", "auto"), decl("padding", "0"),
		decl("margin", "0"), decl("overflow", "visible"), decl("clip", "auto"), decl("white-space", "normal")))

	// Backgrounds and borders
	add("backgroundColor", "bg", color(t.Colors, "background-color", "--tw-bg-opacity"), alpha)
	add("backgroundOpacity", "bg-opacity", scaled(opacityScale, props("--tw-bg-opacity")))
	add("borderColor", "border", color(t.Colors, "border-color", "--tw-border-opacity"), alpha)
	add("borderOpacity", "border-opacity", scaled(opacityScale, props("--tw-border-opacity")))
	for _, r := range []propGroup{
		{"rounded", []string{"border-radius"}},
		{"rounded-t", []string{"border-top-left-radius", "border-top-right-radius"}},
		{"rounded-r", []string{"border-top-right-radius", "border-bottom-right-radius"}},
		{"rounded-b", []string{"border-bottom-right-radius", "border-bottom-left-radius"}},
		{"rounded-l", []string{"border-top-left-radius", "border-bottom-left-radius"}},
		{"rounded-tl", []string{"border-top-left-radius"}},
		{"rounded-tr", []string{"border-top-right-radius"}},
		{"rounded-br", []string{"border-bottom-right-radius"}},
		{"rounded-bl", []string{"border-bottom-left-radius"}},
	} {
		add("borderRadius", r.root, scaled(radiusScale, props(r.props...)))
	}
	for _, b := range []propGroup{
		{"border", []string{"border-width"}},
		{"border-x", []string{"border-left-width", "border-right-width"}},
		{"border-y", []string{"border-top-width", "border-bottom-width"}},
		{"border-t", []string{"border-top-width"}},
		{"border-r", []string{"border-right-width"}},
		{"border-b", []string{"border-bottom-width"}},
		{"border-l", []string{"border-left-width"}},
	} {
		add("borderWidth", b.root, notColor(scaled(widthScale, props(b.props...))))
	}

	// Layout
	statics("display", [][3]string{
		{"block", "display", "block"},
		{"inline-block", "display", "inline-block"},
		{"inline", "display", "inline"},
		{"flex", "display", "flex"},
		{"inline-flex", "display", "inline-flex"},
		{"table", "display", "table"},
		{"grid", "display", "grid"},
		{"inline-grid", "display", "inline-grid"},
		{"contents", "display", "contents"},
		{"hidden", "display", "none"},
	})
	statics("flexDirection", [][3]string{
		{"flex-row", "flex-direction", "row"},
		{"flex-row-reverse", "flex-direction", "row-reverse"},
		{"flex-col", "flex-direction", "column"},
		{"flex-col-reverse", "flex-direction", "column-reverse"},
	})
	statics("flexWrap", [][3]string{
		{"flex-wrap", "flex-wrap", "wrap"},
		{"flex-wrap-reverse", "flex-wrap", "wrap-reverse"},
		{"flex-nowrap", "flex-wrap", "nowrap"},
	})
	add("flex", "flex", scaled(map[string]string{
		"1": "1 1 0%", "auto": "1 1 auto", "initial": "0 1 auto", "none": "none",
	}, props("flex")))
	add("flexGrow", "flex-grow", scaled(map[string]string{"": "1", "0": "0"}, props("flex-grow")))
	add("flexShrink", "flex-shrink", scaled(map[string]string{"": "1", "0": "0"}, props("flex-shrink")))
	statics("alignItems", [][3]string{
		{"items-start", "align-items", "flex-start"},
		{"items-end", "align-items", "flex-end"},
		{"items-center", "align-items", "center"},
		{"items-baseline", "align-items", "baseline"},
		{"items-stretch", "align-items", "stretch"},
	})
	statics("justifyContent", [][3]string{
		{"justify-start", "justify-content", "flex-start"},
		{"justify-end", "justify-content", "flex-end"},
		{"justify-center", "justify-content", "center"},
		{"justify-between", "justify-content", "space-between"},
		{"justify-around", "justify-content", "space-around"},
		{"justify-evenly", "justify-content", "space-evenly"},
	})
	statics("cursor", [][3]string{
		{"cursor-auto", "cursor", "auto"},
		{"cursor-default", "cursor", "default"},
		{"cursor-pointer", "cursor", "pointer"},
		{"cursor-wait", "cursor", "wait"},
		{"cursor-text", "cursor", "text"},
		{"cursor-move", "cursor", "move"},
		{"cursor-not-allowed", "cursor", "not-allowed"},
	})

	// Typography
	add("fontSize", "text", notColor(func(v Value) ([]css.Declaration, bool) {
		if v.Arbitrary {
			return []css.Declaration{decl("font-size", v.Key)}, v.Key != ""
		}
		fs, ok := fontSizeScale[v.Key]
		if !ok {
			return nil, false
		}
		return []css.Declaration{decl("font-size", fs[0]), decl("line-height", fs[1])}, true
	}))
	add("fontWeight", "font", scaled(fontWeightScale, props("font-weight")))

	// Sizing and spacing
	add("height", "h", scaled(merge(sizing, map[string]string{"screen": "100vh"}), props("height")))
	for _, in := range []propGroup{
		{"inset", []string{"top", "right", "bottom", "left"}},
		{"inset-x", []string{"right", "left"}},
		{"inset-y", []string{"top", "bottom"}},
		{"top", []string{"top"}},
		{"right", []string{"right"}},
		{"bottom", []string{"bottom"}},
		{"left", []string{"left"}},
	} {
		add("inset", in.root, scaled(sizing, props(in.props...)), negative)
	}
	for _, m := range []propGroup{
		{"m", []string{"margin"}},
		{"mx", []string{"margin-left", "margin-right"}},
		{"my", []string{"margin-top", "margin-bottom"}},
		{"mt", []string{"margin-top"}},
		{"mr", []string{"margin-right"}},
		{"mb", []string{"margin-bottom"}},
		{"ml", []string{"margin-left"}},
	} {
		add("margin", m.root, scaled(spacingAuto, props(m.props...)), negative)
	}
	add("maxWidth", "max-w", scaled(map[string]string{
		"none": "none", "0": "0rem", "xs": "20rem", "sm": "24rem", "md": "28rem", "lg": "32rem",
		"xl": "36rem", "2xl": "42rem", "3xl": "48rem", "4xl": "56rem", "5xl": "64rem", "6xl": "72rem",
		"7xl": "80rem", "full": "100%", "min": "min-content", "max": "max-content", "prose": "65ch",
	}, props("max-width")))
	add("minWidth", "min-w", scaled(map[string]string{
		"0": "0px", "full": "100%", "min": "min-content", "max": "max-content",
	}, props("min-width")))
	add("opacity", "opacity", scaled(opacityScale, props("opacity")))
	for _, p := range []propGroup{
		{"p", []string{"padding"}},
		{"px", []string{"padding-left", "padding-right"}},
		{"py", []string{"padding-top", "padding-bottom"}},
		{"pt", []string{"padding-top"}},
		{"pr", []string{"padding-right"}},
		{"pb", []string{"padding-bottom"}},
		{"pl", []string{"padding-left"}},
	} {
		add("padding", p.root, scaled(spacing, props(p.props...)))
	}
	statics("position", [][3]string{
		{"static", "position", "static"},
		{"fixed", "position", "fixed"},
		{"absolute", "position", "absolute"},
		{"relative", "position", "relative"},
		{"sticky", "position", "sticky"},
	})
	statics("overflow", [][3]string{
		{"overflow-auto", "overflow", "auto"},
		{"overflow-hidden", "overflow", "hidden"},
		{"overflow-visible", "overflow", "visible"},
		{"overflow-scroll", "overflow", "scroll"},
	})
	statics("textAlign", [][3]string{
		{"text-left", "text-align", "left"},
		{"text-center", "text-align", "center"},
		{"text-right", "text-align", "right"},
		{"text-justify", "text-align", "justify"},
	})
	add("textColor", "text", color(t.Colors, "color", "--tw-text-opacity"), alpha)
	add("textOpacity", "text-opacity", scaled(opacityScale, props("--tw-text-opacity")))
	add("width", "w", scaled(merge(sizing, map[string]string{
		"screen": "100vw", "min": "min-content", "max": "max-content",
	}), props("width")))
	add("zIndex", "z", scaled(zIndexScale, props("z-index")), negative)
	add("gap", "gap", scaled(spacing, props("gap")))
	add("gap", "gap-x", scaled(spacing, props("column-gap")))
	add("gap", "gap-y", scaled(spacing, props("row-gap")))

	// Transform family
	const useTransform = "var(--tw-transform)"
	add("transform", "transform", static(decl("transform", useTransform)), inFamily(FamilyTransform))
	add("transform", "transform-none", static(decl("transform", "none")))
	translate := merge(spacing, fractions)
	add("translate", "translate-x", scaled(translate, member("transform", useTransform, "--tw-translate-x")), negative, inFamily(FamilyTransform))
	add("translate", "translate-y", scaled(translate, member("transform", useTransform, "--tw-translate-y")), negative, inFamily(FamilyTransform))
	add("rotate", "rotate", scaled(rotateScale, member("transform", useTransform, "--tw-rotate")), negative, inFamily(FamilyTransform))
	add("skew", "skew-x", scaled(skewScale, member("transform", useTransform, "--tw-skew-x")), negative, inFamily(FamilyTransform))
	add("skew", "skew-y", scaled(skewScale, member("transform", useTransform, "--tw-skew-y")), negative, inFamily(FamilyTransform))
	add("scale", "scale", scaled(scaleScale, member("transform", useTransform, "--tw-scale-x", "--tw-scale-y")), inFamily(FamilyTransform))
	add("scale", "scale-x", scaled(scaleScale, member("transform", useTransform, "--tw-scale-x")), inFamily(FamilyTransform))
	add("scale", "scale-y", scaled(scaleScale, member("transform", useTransform, "--tw-scale-y")), inFamily(FamilyTransform))

	// Filter family
	const useFilter = "var(--tw-filter)"
	add("filter", "filter", static(decl("filter", useFilter)), inFamily(FamilyFilter))
	add("filter", "filter-none", static(decl("filter", "none")))
	add("blur", "blur", scaled(blurScale, wrap("blur", member("filter", useFilter, "--tw-blur"))), inFamily(FamilyFilter))
	add("brightness", "brightness", scaled(brightnessScale, wrap("brightness", member("filter", useFilter, "--tw-brightness"))), inFamily(FamilyFilter))
	add("contrast", "contrast", scaled(contrastScale, wrap("contrast", member("filter", useFilter, "--tw-contrast"))), inFamily(FamilyFilter))
	add("dropShadow", "drop-shadow", scaled(dropShadowScale, member("filter", useFilter, "--tw-drop-shadow")), inFamily(FamilyFilter))
	add("grayscale", "grayscale", scaled(map[string]string{"": "100%", "0": "0"}, wrap("grayscale", member("filter", useFilter, "--tw-grayscale"))), inFamily(FamilyFilter))
	add("hueRotate", "hue-rotate", scaled(hueRotateScale, wrap("hue-rotate", member("filter", useFilter, "--tw-hue-rotate"))), negative, inFamily(FamilyFilter))
	add("invert", "invert", scaled(map[string]string{"": "100%", "0": "0"}, wrap("invert", member("filter", useFilter, "--tw-invert"))), inFamily(FamilyFilter))
	add("saturate", "saturate", scaled(saturateScale, wrap("saturate", member("filter", useFilter, "--tw-saturate"))), inFamily(FamilyFilter))
	add("sepia", "sepia", scaled(map[string]string{"": "100%", "0": "0"}, wrap("sepia", member("filter", useFilter, "--tw-sepia"))), inFamily(FamilyFilter))

	// Backdrop filter family
	const useBackdrop = "var(--tw-backdrop-filter)"
	add("backdropFilter", "backdrop-filter", static(decl("backdrop-filter", useBackdrop)), inFamily(FamilyBackdropFilter))
	add("backdropFilter", "backdrop-filter-none", static(decl("backdrop-filter", "none")))
	add("backdropBlur", "backdrop-blur", scaled(blurScale, wrap("blur", member("backdrop-filter", useBackdrop, "--tw-backdrop-blur"))), inFamily(FamilyBackdropFilter))
	add("backdropBrightness", "backdrop-brightness", scaled(brightnessScale, wrap("brightness", member("backdrop-filter", useBackdrop, "--tw-backdrop-brightness"))), inFamily(FamilyBackdropFilter))
	add("backdropContrast", "backdrop-contrast", scaled(contrastScale, wrap("contrast", member("backdrop-filter", useBackdrop, "--tw-backdrop-contrast"))), inFamily(FamilyBackdropFilter))
	add("backdropGrayscale", "backdrop-grayscale", scaled(map[string]string{"": "100%", "0": "0"}, wrap("grayscale", member("backdrop-filter", useBackdrop, "--tw-backdrop-grayscale"))), inFamily(FamilyBackdropFilter))
	add("backdropHueRotate", "backdrop-hue-rotate", scaled(hueRotateScale, wrap("hue-rotate", member("backdrop-filter", useBackdrop, "--tw-backdrop-hue-rotate"))), negative, inFamily(FamilyBackdropFilter))
	add("backdropInvert", "backdrop-invert", scaled(map[string]string{"": "100%", "0": "0"}, wrap("invert", member("backdrop-filter", useBackdrop, "--tw-backdrop-invert"))), inFamily(FamilyBackdropFilter))
	add("backdropOpacity", "backdrop-opacity", scaled(opacityScale, wrap("opacity", member("backdrop-filter", useBackdrop, "--tw-backdrop-opacity"))), inFamily(FamilyBackdropFilter))
	add("backdropSaturate", "backdrop-saturate", scaled(saturateScale, wrap("saturate", member("backdrop-filter", useBackdrop, "--tw-backdrop-saturate"))), inFamily(FamilyBackdropFilter))
	add("backdropSepia", "backdrop-sepia", scaled(map[string]string{"": "100%", "0": "0"}, wrap("sepia", member("backdrop-filter", useBackdrop, "--tw-backdrop-sepia"))), inFamily(FamilyBackdropFilter))

	// Box shadow family: rings and shadows share shadow layering
	add("ringWidth", "ring", notColor(scaled(ringWidthScale, func(v string) []css.Declaration {
		return []css.Declaration{
			decl("--tw-ring-offset-shadow", "var(--tw-ring-inset) 0 0 0 var(--tw-ring-offset-width) var(--tw-ring-offset-color)"),
			decl("--tw-ring-shadow", "var(--tw-ring-inset) 0 0 0 calc("+v+" + var(--tw-ring-offset-width)) var(--tw-ring-color)"),
			decl("box-shadow", "var(--tw-ring-offset-shadow), var(--tw-ring-shadow), var(--tw-shadow, 0 0 #0000)"),
		}
	})), inFamily(FamilyBoxShadow))
	add("ringWidth", "ring-inset", static(decl("--tw-ring-inset", "inset")), inFamily(FamilyBoxShadow))
	add("ringColor", "ring", color(t.Colors, "--tw-ring-color", "--tw-ring-opacity"), alpha)
	add("ringOpacity", "ring-opacity", scaled(opacityScale, props("--tw-ring-opacity")))
	add("ringOffsetWidth", "ring-offset", notColor(scaled(widthScale, props("--tw-ring-offset-width"))))
	add("ringOffsetColor", "ring-offset", color(t.Colors, "--tw-ring-offset-color", ""), alpha)
	add("boxShadow", "shadow", scaled(boxShadowScale, member("box-shadow",
		"var(--tw-ring-offset-shadow, 0 0 #0000), var(--tw-ring-shadow, 0 0 #0000), var(--tw-shadow)",
		"--tw-shadow")), inFamily(FamilyBoxShadow))

	// Content
	add("content", "content", scaled(map[string]string{"none": "none"}, props("content")))

	return list
}

func registerCoreUtilities(r *Registry) {
	for _, u := range coreUtilities(r.theme) {
		r.addUtility(u)
	}
}

func corePluginNames() map[string]bool {
	names := make(map[string]bool)
	for _, u := range coreUtilities(DefaultTheme()) {
		names[u.Plugin] = true
	}
	return names
}

// CorePlugins returns names of all core plugins.
func CorePlugins() []string {
	var names []string
	seen := make(map[string]bool)
	for _, u := range coreUtilities(DefaultTheme()) {
		if !seen[u.Plugin] {
			seen[u.Plugin] = true
			names = append(names, u.Plugin)
		}
	}
	return names
}
