package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Screen is a named breakpoint, screens are ordered smallest first.
type Screen struct {
	Name string
	Min  string
}

// Theme keeps configurable scales. Colors are flat: "red-500" -> "#ef4444".
type Theme struct {
	Screens  []Screen
	Colors   map[string]string
	Spacing  map[string]string
	DarkMode string // "media" or "class"
}

// DefaultTheme returns theme used when configuration does not override it.
func DefaultTheme() Theme {
	return Theme{
		Screens:  DefaultScreens(),
		Colors:   DefaultColors(),
		Spacing:  DefaultSpacing(),
		DarkMode: "media",
	}
}

// DefaultScreens returns default breakpoints.
func DefaultScreens() []Screen {
	return []Screen{
		{Name: "sm", Min: "640px"},
		{Name: "md", Min: "768px"},
		{Name: "lg", Min: "1024px"},
		{Name: "xl", Min: "1280px"},
		{Name: "2xl", Min: "1536px"},
	}
}

// DefaultSpacing returns default spacing scale.
func DefaultSpacing() map[string]string {
	s := map[string]string{
		"0":   "0px",
		"px":  "1px",
		"0.5": "0.125rem",
		"1.5": "0.375rem",
		"2.5": "0.625rem",
		"3.5": "0.875rem",
	}
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 14, 16, 20, 24, 28, 32, 36, 40, 44, 48, 52, 56, 60, 64, 72, 80, 96} {
		s[strconv.Itoa(n)] = strconv.FormatFloat(float64(n)*0.25, 'f', -1, 64) + "rem"
	}
	return s
}

var palette = map[string][10]string{
	"gray":   {"#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827"},
	"red":    {"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d"},
	"yellow": {"#fffbeb", "#fef3c7", "#fde68a", "#fcd34d", "#fbbf24", "#f59e0b", "#d97706", "#b45309", "#92400e", "#78350f"},
	"green":  {"#ecfdf5", "#d1fae5", "#a7f3d0", "#6ee7b7", "#34d399", "#10b981", "#059669", "#047857", "#065f46", "#064e3b"},
	"blue":   {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a"},
	"indigo": {"#eef2ff", "#e0e7ff", "#c7d2fe", "#a5b4fc", "#818cf8", "#6366f1", "#4f46e5", "#4338ca", "#3730a3", "#312e81"},
	"purple": {"#f5f3ff", "#ede9fe", "#ddd6fe", "#c4b5fd", "#a78bfa", "#8b5cf6", "#7c3aed", "#6d28d9", "#5b21b6", "#4c1d95"},
	"pink":   {"#fdf2f8", "#fce7f3", "#fbcfe8", "#f9a8d4", "#f472b6", "#ec4899", "#db2777", "#be185d", "#9d174d", "#831843"},
}

var shades = [10]string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}

// DefaultColors returns default flat color palette.
func DefaultColors() map[string]string {
	c := map[string]string{
		"transparent": "transparent",
		"current":     "currentColor",
		"black":       "#000",
		"white":       "#fff",
	}
	for name, values := range palette {
		for i, v := range values {
			c[name+"-"+shades[i]] = v
		}
	}
	return c
}

// Static scales which are not configurable.
var (
	opacityScale = percentScale(0, 5, 10, 20, 25, 30, 40, 50, 60, 70, 75, 80, 90, 95, 100)

	scaleScale      = fractionScale(0, 50, 75, 90, 95, 100, 105, 110, 125, 150)
	brightnessScale = fractionScale(0, 50, 75, 90, 95, 100, 105, 110, 125, 150, 200)
	contrastScale   = fractionScale(0, 50, 75, 100, 125, 150, 200)
	saturateScale   = fractionScale(0, 50, 100, 150, 200)

	rotateScale    = degScale(0, 1, 2, 3, 6, 12, 45, 90, 180)
	skewScale      = degScale(0, 1, 2, 3, 6, 12)
	hueRotateScale = degScale(0, 15, 30, 60, 90, 180)

	blurScale = map[string]string{
		"none": "0", "sm": "4px", "": "8px", "md": "12px", "lg": "16px",
		"xl": "24px", "2xl": "40px", "3xl": "64px",
	}

	dropShadowScale = map[string]string{
		"sm":   "drop-shadow(0 1px 1px rgba(0,0,0,0.05))",
		"":     "drop-shadow(0 1px 2px rgba(0, 0, 0, 0.1)) drop-shadow(0 1px 1px rgba(0, 0, 0, 0.06))",
		"md":   "drop-shadow(0 4px 3px rgba(0, 0, 0, 0.07)) drop-shadow(0 2px 2px rgba(0, 0, 0, 0.06))",
		"lg":   "drop-shadow(0 10px 8px rgba(0, 0, 0, 0.04)) drop-shadow(0 4px 3px rgba(0, 0, 0, 0.1))",
		"xl":   "drop-shadow(0 20px 13px rgba(0, 0, 0, 0.03)) drop-shadow(0 8px 5px rgba(0, 0, 0, 0.08))",
		"2xl":  "drop-shadow(0 25px 25px rgba(0, 0, 0, 0.15))",
		"none": "drop-shadow(0 0 #0000)",
	}

	boxShadowScale = map[string]string{
		"sm":    "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
		"":      "0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px 0 rgba(0, 0, 0, 0.06)",
		"md":    "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)",
		"lg":    "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)",
		"xl":    "0 20px 25px -5px rgba(0, 0, 0, 0.1), 0 10px 10px -5px rgba(0, 0, 0, 0.04)",
		"2xl":   "0 25px 50px -12px rgba(0, 0, 0, 0.25)",
		"inner": "inset 0 2px 4px 0 rgba(0, 0, 0, 0.06)",
		"none":  "0 0 #0000",
	}

	widthScale = map[string]string{
		"":  "1px",
		"0": "0px", "2": "2px", "4": "4px", "8": "8px",
	}

	ringWidthScale = map[string]string{
		"": "3px", "0": "0px", "1": "1px", "2": "2px", "4": "4px", "8": "8px",
	}

	radiusScale = map[string]string{
		"none": "0px", "sm": "0.125rem", "": "0.25rem", "md": "0.375rem", "lg": "0.5rem",
		"xl": "0.75rem", "2xl": "1rem", "3xl": "1.5rem", "full": "9999px",
	}

	fontSizeScale = map[string][2]string{
		"xs":   {"0.75rem", "1rem"},
		"sm":   {"0.875rem", "1.25rem"},
		"base": {"1rem", "1.5rem"},
		"lg":   {"1.125rem", "1.75rem"},
		"xl":   {"1.25rem", "1.75rem"},
		"2xl":  {"1.5rem", "2rem"},
		"3xl":  {"1.875rem", "2.25rem"},
		"4xl":  {"2.25rem", "2.5rem"},
		"5xl":  {"3rem", "1"},
		"6xl":  {"3.75rem", "1"},
	}

	fontWeightScale = map[string]string{
		"thin": "100", "extralight": "200", "light": "300", "normal": "400", "medium": "500",
		"semibold": "600", "bold": "700", "extrabold": "800", "black": "900",
	}

	zIndexScale = map[string]string{
		"0": "0", "10": "10", "20": "20", "30": "30", "40": "40", "50": "50", "auto": "auto",
	}

	fractions = map[string]string{
		"1/2": "50%", "1/3": "33.333333%", "2/3": "66.666667%", "1/4": "25%", "2/4": "50%",
		"3/4": "75%", "1/5": "20%", "2/5": "40%", "3/5": "60%", "4/5": "80%", "1/6": "16.666667%",
		"5/6": "83.333333%", "full": "100%",
	}
)

func percentScale(values ...int) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[strconv.Itoa(v)] = strconv.FormatFloat(float64(v)/100, 'f', -1, 64)
	}
	return m
}

// fractionScale is like percentScale but drops leading zero (".5").
func fractionScale(values ...int) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		s := strconv.FormatFloat(float64(v)/100, 'f', -1, 64)
		if strings.HasPrefix(s, "0.") {
			s = s[1:]
		}
		m[strconv.Itoa(v)] = s
	}
	return m
}

func degScale(values ...int) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[strconv.Itoa(v)] = strconv.Itoa(v) + "deg"
	}
	return m
}

func merge(scales ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, s := range scales {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// Opacity resolves opacity modifier key ("50" or arbitrary) to a value.
func Opacity(key string, arbitrary bool) (string, bool) {
	if arbitrary {
		return key, key != ""
	}
	v, ok := opacityScale[key]
	return v, ok
}

// hexToRGB converts #rgb or #rrggbb to components.
func hexToRGB(hex string) (r, g, b int, ok bool) {
	if !strings.HasPrefix(hex, "#") {
		return 0, 0, 0, false
	}
	h := hex[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func rgba(r, g, b int, alpha string) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, alpha)
}
