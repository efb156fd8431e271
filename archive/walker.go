// Package archive walks content sources stored in zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// WalkFunc is called for every matching file of the archive visited by
// Walk. Name is entry name after decoding, r is the entry content. If an
// error is returned, processing stops.
type WalkFunc func(archive, name string, r io.Reader) error

// NameDecoder converts entry names which are not marked as UTF-8.
type NameDecoder func(name string) (string, error)

// Walk calls walkFn for every file in archive with name matching doublestar
// pattern, empty pattern matches everything. Archives with absolute entry
// names or path traversal components are rejected as a whole.
func Walk(archive, pattern string, decode NameDecoder, walkFn WalkFunc) error {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("bad pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if f.NonUTF8 && decode != nil {
			if name, err = decode(name); err != nil {
				return fmt.Errorf("zip entry %q: unable to decode name: %w", f.Name, err)
			}
		}
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, name); !ok {
				continue
			}
		}
		if err := visit(archive, name, f, walkFn); err != nil {
			return err
		}
	}
	return nil
}

func visit(archive, name string, f *zip.File, walkFn WalkFunc) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("zip entry %q: %w", name, err)
	}
	defer rc.Close()
	return walkFn(archive, name, rc)
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
