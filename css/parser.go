package css

import (
	"bytes"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into a tree of items. Unlike a browser
// parser it keeps block-less at-rules (@apply, @tailwind) in place and
// allows rules nested into other rules and at-rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

type token struct {
	tt   css.TokenType
	data string
	line int
}

// tokenStream is a cursor over tokens produced by the lexer.
type tokenStream struct {
	tokens []token
	pos    int
}

func (ts *tokenStream) peek() (token, bool) {
	if ts.pos >= len(ts.tokens) {
		return token{}, false
	}
	return ts.tokens[ts.pos], true
}

func (ts *tokenStream) next() (token, bool) {
	t, ok := ts.peek()
	if ok {
		ts.pos++
	}
	return t, ok
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]Item, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	ts := &tokenStream{tokens: p.tokenize(data, sheet)}
	sheet.Items = p.parseItems(ts, sheet, true)
	return sheet
}

// tokenize runs lexer over input collecting tokens with their line numbers.
func (p *Parser) tokenize(data []byte, sheet *Stylesheet) []token {
	lexer := css.NewLexer(parse.NewInput(bytes.NewReader(data)))
	line := 1

	var tokens []token
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err.Error() != "EOF" {
				sheet.Warnings = append(sheet.Warnings, fmt.Sprintf("line %d: %v", line, err))
				p.log.Debug("CSS lexer error", zap.Int("line", line), zap.Error(err))
			}
			return tokens
		}
		tokens = append(tokens, token{tt: tt, data: string(text), line: line})
		line += bytes.Count(text, []byte{'\n'})
	}
}

// parseItems parses a list of items until closing brace (consumed) or end of input.
func (p *Parser) parseItems(ts *tokenStream, sheet *Stylesheet, top bool) []Item {
	var items []Item
	for {
		t, ok := ts.peek()
		if !ok {
			if !top {
				sheet.Warnings = append(sheet.Warnings, "unexpected end of input: unclosed block")
			}
			return items
		}

		switch t.tt {
		case css.WhitespaceToken, css.CDOToken, css.CDCToken, css.SemicolonToken:
			ts.next()

		case css.CommentToken:
			ts.next()
			items = append(items, Item{Comment: &Comment{Text: t.data}})

		case css.RightBraceToken:
			ts.next()
			if top {
				sheet.Warnings = append(sheet.Warnings, fmt.Sprintf("line %d: unexpected '}'", t.line))
				continue
			}
			return items

		case css.AtKeywordToken:
			ts.next()
			items = append(items, p.parseAtRule(ts, sheet, t))

		default:
			if item, ok := p.parseRuleOrDeclaration(ts, sheet); ok {
				items = append(items, item)
			}
		}
	}
}

// collectPrelude gathers tokens up to a top-level terminator: '{', ';' or '}'.
// Terminator is returned but only '{' and ';' are consumed.
func collectPrelude(ts *tokenStream) ([]token, css.TokenType) {
	var (
		prelude []token
		depth   int
	)
	for {
		t, ok := ts.peek()
		if !ok {
			return prelude, css.ErrorToken
		}
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.LeftBraceToken, css.SemicolonToken:
			if depth == 0 {
				ts.next()
				return prelude, t.tt
			}
		case css.RightBraceToken:
			return prelude, t.tt
		}
		ts.next()
		prelude = append(prelude, t)
	}
}

// joinTokens reconstructs text from tokens collapsing whitespace runs and
// dropping comments.
func joinTokens(tokens []token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		switch t.tt {
		case css.WhitespaceToken:
			space = true
			continue
		case css.CommentToken:
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(t.data)
	}
	return sb.String()
}

func (p *Parser) parseAtRule(ts *tokenStream, sheet *Stylesheet, at token) Item {
	name := strings.ToLower(strings.TrimPrefix(at.data, "@"))
	prelude, term := collectPrelude(ts)
	params := joinTokens(prelude)

	if term != css.LeftBraceToken {
		p.log.Debug("Parsed directive", zap.String("name", name), zap.String("params", params))
		return Item{Directive: &Directive{Name: name, Params: params, Line: at.line}}
	}

	body := p.parseItems(ts, sheet, false)
	p.log.Debug("Parsed @-rule block", zap.String("name", name), zap.String("params", params), zap.Int("items", len(body)))
	return Item{AtRule: &AtRule{Name: name, Params: params, Body: body, Line: at.line}}
}

func (p *Parser) parseRuleOrDeclaration(ts *tokenStream, sheet *Stylesheet) (Item, bool) {
	start, _ := ts.peek()
	prelude, term := collectPrelude(ts)

	if term == css.LeftBraceToken {
		selectors := SplitSelectors(joinTokens(prelude))
		body := p.parseItems(ts, sheet, false)
		if len(selectors) == 0 {
			sheet.Warnings = append(sheet.Warnings, fmt.Sprintf("line %d: rule without selector", start.line))
			return Item{}, false
		}
		return Item{Rule: &Rule{Selectors: selectors, Body: body, Line: start.line}}, true
	}

	decl, ok := parseDeclaration(prelude)
	if !ok {
		text := joinTokens(prelude)
		if text != "" {
			sheet.Warnings = append(sheet.Warnings, fmt.Sprintf("line %d: malformed declaration %q", start.line, text))
			p.log.Debug("Skipping malformed declaration", zap.Int("line", start.line), zap.String("text", text))
		}
		return Item{}, false
	}
	return Item{Decl: &decl}, true
}

// parseDeclaration splits tokens at the first colon into property and value,
// trailing "!important" is removed from value and recorded.
func parseDeclaration(tokens []token) (Declaration, bool) {
	colon := -1
	for i, t := range tokens {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon <= 0 {
		return Declaration{}, false
	}

	prop := strings.TrimSpace(joinTokens(tokens[:colon]))
	if prop == "" || strings.ContainsAny(prop, " \t") {
		return Declaration{}, false
	}

	values := tokens[colon+1:]
	important := false

	// Trim trailing whitespace and look for "! important"
	end := len(values)
	for end > 0 && (values[end-1].tt == css.WhitespaceToken || values[end-1].tt == css.CommentToken) {
		end--
	}
	if end > 0 && values[end-1].tt == css.IdentToken && strings.EqualFold(values[end-1].data, "important") {
		i := end - 2
		for i >= 0 && values[i].tt == css.WhitespaceToken {
			i--
		}
		if i >= 0 && values[i].tt == css.DelimToken && values[i].data == "!" {
			important = true
			end = i
		}
	}

	value := strings.TrimSpace(joinTokens(values[:end]))
	if value == "" && !strings.HasPrefix(prop, "--") {
		return Declaration{}, false
	}
	return Declaration{Property: prop, Value: value, Important: important}, true
}

// SplitSelectors splits selector list on top-level commas. Commas inside
// parentheses, brackets, strings or escaped are preserved.
func SplitSelectors(list string) []string {
	var (
		out   []string
		depth int
		quote rune
		start int
	)
	flush := func(end int) {
		if s := strings.TrimSpace(list[start:end]); s != "" {
			out = append(out, s)
		}
	}
	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if rune(c) == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = rune(c)
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			flush(i)
			start = i + 1
		}
	}
	flush(len(list))
	return out
}
