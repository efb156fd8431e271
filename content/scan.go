package content

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func space(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// stop reports bytes which terminate a candidate. Quotes are allowed inside
// brackets so arbitrary values like content-['hi'] survive.
func stop(c byte, depth int) bool {
	switch {
	case space(c), c == '<', c == '>':
		return true
	case depth == 0 && (c == '"' || c == '\'' || c == '`'):
		return true
	}
	return false
}

// Scan extracts class-like tokens from arbitrary text in order of
// appearance. Tokens are not validated, unknown ones are dropped later.
func Scan(data []byte, emit func(string)) {
	for i := 0; i < len(data); {
		if stop(data[i], 0) {
			i++
			continue
		}
		start, depth := i, 0
		for ; i < len(data) && !stop(data[i], depth); i++ {
			switch data[i] {
			case '[':
				depth++
			case ']':
				if depth > 0 {
					depth--
				}
			}
		}
		if depth != 0 {
			continue
		}
		if tok := bytes.TrimRight(data[start:i], ":,;"); len(tok) > 0 {
			emit(string(tok))
		}
	}
}

// HTMLClasses extracts tokens of class attributes and scans inline scripts.
func HTMLClasses(r io.Reader, emit func(string)) error {
	z := html.NewTokenizer(r)
	script := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			script = atom.Lookup(name) == atom.Script
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch k := string(key); {
				case k == "class", k == "classname", strings.HasSuffix(k, ":class"):
					for _, f := range strings.Fields(string(val)) {
						emit(f)
					}
				}
			}
		case html.EndTagToken:
			script = false
		case html.TextToken:
			if script {
				Scan(z.Text(), emit)
			}
		}
	}
}
