// Package debug formats indented trees for troubleshooting dumps put into
// debug report.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

type TreeWriter struct {
	b strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.b.WriteString("  ")
	}
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Field writes "label: value" with value quoted so whitespace and control
// characters are visible. Empty values are written as is.
func (tw *TreeWriter) Field(depth int, label, value string) {
	tw.indent(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	if value != "" {
		value = strconv.Quote(value)
	}
	tw.b.WriteString(value)
	tw.b.WriteByte('\n')
}

// List writes label followed by items one level deeper. Nothing is written
// for empty list.
func (tw *TreeWriter) List(depth int, label string, items []string) {
	if len(items) == 0 {
		return
	}
	tw.Line(depth, "%s (%d)", label, len(items))
	for _, it := range items {
		tw.Line(depth+1, "%s", it)
	}
}
