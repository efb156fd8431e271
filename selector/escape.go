// Package selector implements selector algebra used by the generator:
// class name escaping and decomposition of a selector around the compound
// a utility (or directive host) is attached to.
package selector

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// EscapeClass escapes a class name so it could be used after '.' in a
// selector. Follows CSS.escape() from CSSOM.
func EscapeClass(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 8)

	first, _ := utf8.DecodeRuneInString(name)
	for i, r := range name {
		switch {
		case r == 0:
			sb.WriteRune(utf8.RuneError)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, "\\%x ", r)
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&sb, "\\%x ", r)
		case i == 1 && first == '-' && r >= '0' && r <= '9':
			fmt.Fprintf(&sb, "\\%x ", r)
		case i == 0 && r == '-' && len(name) == 1:
			sb.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			sb.WriteRune(r)
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Class returns class selector for name.
func Class(name string) string {
	return "." + EscapeClass(name)
}

// FirstClass returns unescaped name of the first class found in selector,
// empty string when there is none.
func FirstClass(sel string) string {
	if classes := Classes(sel); len(classes) > 0 {
		return classes[0]
	}
	return ""
}

// Classes returns unescaped names of all classes used in selector outside
// of functional pseudo-classes and attribute selectors, in order of
// appearance, without duplicates.
func Classes(sel string) []string {
	var out []string
	depth := 0
	for i := 0; i < len(sel); i++ {
		switch sel[i] {
		case '\\':
			i = escapeEnd(sel, i)
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth != 0 {
				continue
			}
			if name := unescapeIdent(sel[i+1:]); name != "" && !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out
}

// ReplaceClass replaces every top-level occurrence of class in selector
// with replacement. Returns selector unchanged and false if class is not
// there.
func ReplaceClass(sel, class, replacement string) (string, bool) {
	needle := Class(class)
	var (
		sb    strings.Builder
		found bool
		last  int
	)
	for {
		pos := indexClass(sel[last:], needle)
		if pos < 0 {
			break
		}
		pos += last
		sb.WriteString(sel[last:pos])
		sb.WriteString(replacement)
		last = pos + len(needle)
		found = true
	}
	if !found {
		return sel, false
	}
	sb.WriteString(sel[last:])
	return sb.String(), true
}

// indexClass returns position of the first top-level class selector equal
// to needle, -1 if there is none.
func indexClass(sel, needle string) int {
	depth := 0
	for i := 0; i < len(sel); i++ {
		switch sel[i] {
		case '\\':
			i = escapeEnd(sel, i)
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth != 0 || !strings.HasPrefix(sel[i:], needle) {
				continue
			}
			if end := i + len(needle); end == len(sel) || !isIdentByte(sel[end]) {
				return i
			}
		}
	}
	return -1
}

// escapeEnd returns index of the last byte of escape sequence starting at i:
// either single escaped character or up to six hex digits with optional
// terminating space.
func escapeEnd(s string, i int) int {
	j := i + 1
	for j < len(s) && j < i+7 && isHex(s[j]) {
		j++
	}
	if j == i+1 {
		return i + 1
	}
	if j < len(s) && s[j] == ' ' {
		return j
	}
	return j - 1
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c == '\\' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// IsClass reports whether sel is exactly one class selector.
func IsClass(sel string) bool {
	if !strings.HasPrefix(sel, ".") {
		return false
	}
	name := FirstClass(sel)
	return name != "" && Class(name) == sel
}

// unescapeIdent reads identifier at the start of s resolving escapes.
func unescapeIdent(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			j := i + 1
			for j < len(s) && j < i+7 && isHex(s[j]) {
				j++
			}
			if j > i+1 {
				var r rune
				fmt.Sscanf(s[i+1:j], "%x", &r) //nolint:errcheck
				sb.WriteRune(r)
				if j < len(s) && s[j] == ' ' {
					j++
				}
				i = j - 1
				continue
			}
			sb.WriteByte(s[j])
			i = j
		case c == '-' || c == '_' || c >= 0x80 ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			sb.WriteByte(c)
		default:
			return sb.String()
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
