package css

import (
	"fmt"
	"io"
	"strings"

	"jitcss/common"
)

// Writer serializes stylesheet items. Zero value writes expanded style.
type Writer struct {
	Style common.OutputStyle
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	return Writer{}.Write(w, s.Items)
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// Write writes items to w. In expanded style top-level items are separated
// by blank line.
func (wr Writer) Write(w io.Writer, items []Item) (int64, error) {
	var total int64
	for i, item := range items {
		n, err := wr.writeItem(w, item, 0)
		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if wr.Style == common.OutputStyleExpanded && i < len(items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

func (wr Writer) writeItem(w io.Writer, item Item, depth int) (int, error) {
	indent := strings.Repeat("  ", depth)
	switch {
	case item.Comment != nil:
		return fmt.Fprintf(w, "%s%s\n", indent, item.Comment.Text)
	case item.Directive != nil:
		return fmt.Fprintf(w, "%s%s;\n", indent, item.Directive.String())
	case item.Decl != nil:
		return fmt.Fprintf(w, "%s%s;\n", indent, item.Decl.String())
	case item.Rule != nil:
		return wr.writeBlock(w, item.Rule.Selector(), item.Rule.Body, depth)
	case item.AtRule != nil:
		return wr.writeBlock(w, item.AtRule.Header(), item.AtRule.Body, depth)
	}
	return 0, nil
}

// writeBlock writes "header { body }" at given nesting depth.
func (wr Writer) writeBlock(w io.Writer, header string, body []Item, depth int) (int, error) {
	indent := strings.Repeat("  ", depth)

	if wr.Style == common.OutputStyleCompact && flat(body) {
		parts := make([]string, 0, len(body))
		for _, item := range body {
			switch {
			case item.Decl != nil:
				parts = append(parts, item.Decl.String()+";")
			case item.Directive != nil:
				parts = append(parts, item.Directive.String()+";")
			}
		}
		if len(parts) == 0 {
			return fmt.Fprintf(w, "%s%s {}\n", indent, header)
		}
		return fmt.Fprintf(w, "%s%s { %s }\n", indent, header, strings.Join(parts, " "))
	}

	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, header)
	total += n
	if err != nil {
		return total, err
	}

	nested := false
	for _, item := range body {
		block := item.Rule != nil || item.AtRule != nil
		// Blank line between nested blocks in expanded style
		if block && nested && wr.Style == common.OutputStyleExpanded {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
		nested = block

		n, err = wr.writeItem(w, item, depth+1)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// flat reports whether body has no nested blocks or comments.
func flat(body []Item) bool {
	for _, item := range body {
		if item.Rule != nil || item.AtRule != nil || item.Comment != nil {
			return false
		}
	}
	return true
}
