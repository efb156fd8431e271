// Package content collects class candidates from content sources: files
// matched by glob patterns and files inside zip archives.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"jitcss/archive"
)

// sniffLen is the size of file header used to detect binary content.
const sniffLen = 262

// Options define content sources.
type Options struct {
	Patterns []string // doublestar patterns, relative ones are resolved against Base
	Base     string
	CodePage string // IANA name of legacy encoding for non UTF-8 sources and zip entry names
}

// Extractor extracts candidates from content sources.
type Extractor struct {
	log      *zap.Logger
	patterns []string
	base     string
	cp       encoding.Encoding
}

// NewExtractor validates options and creates extractor.
func NewExtractor(opts Options, log *zap.Logger) (*Extractor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Extractor{log: log.Named("content"), base: opts.Base}
	if e.base == "" {
		e.base = "."
	}
	for _, p := range opts.Patterns {
		p = filepath.ToSlash(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("bad content pattern %q: %w", p, doublestar.ErrBadPattern)
		}
		e.patterns = append(e.patterns, p)
	}
	if opts.CodePage != "" {
		cp, err := ianaindex.IANA.Encoding(opts.CodePage)
		if err != nil || cp == nil {
			return nil, fmt.Errorf("unknown character set %q: %w", opts.CodePage, err)
		}
		e.cp = cp
	}
	return e, nil
}

// Patterns returns validated patterns.
func (e *Extractor) Patterns() []string {
	return e.patterns
}

// Match reports whether path matches any of the content patterns.
func (e *Extractor) Match(path string) bool {
	base := e.base
	if filepath.IsAbs(path) {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		path = rel
	}
	path = filepath.ToSlash(path)
	for _, p := range e.patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// Files expands patterns into the list of files. Files of every pattern are
// naturally ordered, patterns keep their order, duplicates are removed.
func (e *Extractor) Files() ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)
	fsys := os.DirFS(e.base)
	for _, p := range e.patterns {
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("unable to expand content pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			e.log.Debug("Content pattern does not match anything", zap.String("pattern", p))
		}
		slices.SortFunc(matches, func(a, b string) int {
			switch {
			case natural.Less(a, b):
				return -1
			case natural.Less(b, a):
				return 1
			}
			return 0
		})
		for _, m := range matches {
			path := filepath.Join(e.base, filepath.FromSlash(m))
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}
	return files, nil
}

// Extract returns candidates found in all content sources in first-seen
// order without duplicates.
func (e *Extractor) Extract(ctx context.Context) ([]string, error) {
	files, err := e.Files()
	if err != nil {
		return nil, err
	}

	set := newOrderedSet()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.EqualFold(filepath.Ext(path), ".zip") {
			if err := e.extractArchive(ctx, path, set); err != nil {
				e.log.Warn("Skipping archive", zap.String("archive", path), zap.Error(err))
			}
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			e.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if err := e.extract(path, data, set); err != nil {
			e.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
		}
	}
	e.log.Debug("Candidates extracted", zap.Int("files", len(files)), zap.Int("candidates", set.Len()))
	return set.Items(), nil
}

func (e *Extractor) extractArchive(ctx context.Context, path string, set *orderedSet) error {
	var decode archive.NameDecoder
	if e.cp != nil {
		decode = func(name string) (string, error) {
			return e.cp.NewDecoder().String(name)
		}
	}
	count := 0
	err := archive.Walk(path, "", decode, func(arc, name string, r io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read %q: %w", name, err)
		}
		if err := e.extract(name, data, set); err != nil {
			e.log.Debug("Skipping file in archive", zap.String("archive", arc), zap.String("file", name), zap.Error(err))
			return nil
		}
		count++
		return nil
	})
	if err == nil && count == 0 {
		e.log.Debug("Nothing to extract", zap.String("archive", path))
	}
	return err
}

// extract adds candidates of single source to set.
func (e *Extractor) extract(name string, data []byte, set *orderedSet) error {
	if binary(data) {
		return fmt.Errorf("binary content")
	}

	isHTML := isHTMLName(name)
	if !utf8.Valid(data) {
		decoded, err := e.decode(data, isHTML)
		if err != nil {
			return err
		}
		data = decoded
	}

	if isHTML {
		return HTMLClasses(bytes.NewReader(data), set.Add)
	}
	Scan(data, set.Add)
	return nil
}

// decode converts legacy encoded content to UTF-8. Configured code page
// wins, HTML sources may declare their own.
func (e *Extractor) decode(data []byte, isHTML bool) ([]byte, error) {
	enc := e.cp
	if enc == nil && isHTML {
		if detected, name, certain := charset.DetermineEncoding(data, "text/html"); certain {
			e.log.Debug("Detected content encoding", zap.String("charset", name))
			enc = detected
		}
	}
	if enc == nil {
		return data, nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		n, _ := ianaindex.IANA.Name(enc)
		return nil, fmt.Errorf("unable to decode content from %s: %w", n, err)
	}
	return out, nil
}

func binary(data []byte) bool {
	head := data[:min(len(data), sniffLen)]
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return true
	}
	return bytes.IndexByte(head, 0) >= 0
}

func isHTMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml", ".vue", ".svelte":
		return true
	}
	return false
}

// orderedSet keeps strings in first-seen order.
type orderedSet struct {
	items []string
	seen  map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) Add(v string) {
	if !s.seen[v] {
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}

func (s *orderedSet) Len() int {
	return len(s.items)
}

func (s *orderedSet) Items() []string {
	return s.items
}
