package registry

import (
	"slices"
	"strconv"
	"strings"

	"jitcss/css"
)

// static produces fixed declarations for bare utility name.
func static(decls ...css.Declaration) Generator {
	return func(v Value) ([]css.Declaration, bool) {
		if v.Key != "" || v.Arbitrary {
			return nil, false
		}
		return slices.Clone(decls), true
	}
}

// scaled resolves value against scale (arbitrary values are taken verbatim)
// and builds declarations from it.
func scaled(scale map[string]string, build func(string) []css.Declaration) Generator {
	return func(v Value) ([]css.Declaration, bool) {
		val, ok := lookup(scale, v)
		if !ok {
			return nil, false
		}
		return build(val), true
	}
}

// props returns builder setting every property to the same value.
func props(names ...string) func(string) []css.Declaration {
	return func(val string) []css.Declaration {
		decls := make([]css.Declaration, 0, len(names))
		for _, name := range names {
			decls = append(decls, decl(name, val))
		}
		return decls
	}
}

// member returns builder for composable family member: sets variable and
// the property consuming accumulated variable chain.
func member(consumer, consumerValue string, vars ...string) func(string) []css.Declaration {
	return func(val string) []css.Declaration {
		decls := make([]css.Declaration, 0, len(vars)+1)
		for _, name := range vars {
			decls = append(decls, decl(name, val))
		}
		return append(decls, decl(consumer, consumerValue))
	}
}

// wrap formats value into function call before passing it to next builder.
func wrap(fn string, next func(string) []css.Declaration) func(string) []css.Declaration {
	return func(val string) []css.Declaration {
		return next(fn + "(" + val + ")")
	}
}

func lookup(scale map[string]string, v Value) (string, bool) {
	var val string
	if v.Arbitrary {
		if v.Key == "" {
			return "", false
		}
		val = v.Key
	} else {
		s, ok := scale[v.Key]
		if !ok {
			return "", false
		}
		val = s
	}
	if v.Negative {
		val = negate(val)
	}
	return val, true
}

// negate returns negative form of CSS value.
func negate(v string) string {
	if isZero(v) {
		return v
	}
	switch {
	case strings.HasPrefix(v, "-"):
		return v[1:]
	case v != "" && (v[0] == '.' || (v[0] >= '0' && v[0] <= '9')):
		return "-" + v
	default:
		return "calc(" + v + " * -1)"
	}
}

func isZero(v string) bool {
	num := strings.TrimRightFunc(v, func(r rune) bool { return r == '%' || (r >= 'a' && r <= 'z') })
	f, err := strconv.ParseFloat(num, 64)
	return err == nil && f == 0
}

// LooksLikeColor reports whether arbitrary value is a color.
func LooksLikeColor(v string) bool {
	v = strings.ToLower(v)
	for _, p := range []string{"#", "rgb(", "rgba(", "hsl(", "hsla(", "color(", "color:"} {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	switch v {
	case "transparent", "currentcolor", "inherit", "black", "white":
		return true
	}
	return false
}

// color builds color utility. When opacityVar is not empty hex colors are
// emitted as rgba() with variable alpha which opacity utilities override.
func color(colors map[string]string, prop, opacityVar string) Generator {
	return func(v Value) ([]css.Declaration, bool) {
		var c string
		if v.Arbitrary {
			if !LooksLikeColor(v.Key) {
				return nil, false
			}
			c = strings.TrimPrefix(v.Key, "color:")
		} else {
			var ok bool
			if c, ok = colors[v.Key]; !ok {
				return nil, false
			}
		}

		r, g, b, hex := hexToRGB(c)
		switch {
		case !hex && v.Alpha != "":
			// no alpha axis for keywords and functional notation
			return nil, false
		case !hex:
			return []css.Declaration{decl(prop, c)}, true
		case v.Alpha != "":
			return []css.Declaration{decl(prop, rgba(r, g, b, v.Alpha))}, true
		case opacityVar != "":
			return []css.Declaration{
				decl(opacityVar, "1"),
				decl(prop, rgba(r, g, b, "var("+opacityVar+")")),
			}, true
		default:
			return []css.Declaration{decl(prop, c)}, true
		}
	}
}

// notColor rejects arbitrary values which look like colors so the same root
// can be shared between color and length utilities.
func notColor(gen Generator) Generator {
	return func(v Value) ([]css.Declaration, bool) {
		if v.Arbitrary && LooksLikeColor(v.Key) {
			return nil, false
		}
		return gen(v)
	}
}
