// Package walker discovers the documents an index build covers.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gwenf/tinysearch/internal/index"
)

// Collect walks root recursively and returns a Source for every regular
// file whose extension matches exts (case-insensitive, with or without the
// leading dot), in lexical walk order so document ids are reproducible
// across rebuilds. Directories named skipDir are not descended into, which
// keeps the index from indexing its own artifacts.
func Collect(root, skipDir string, exts []string) ([]index.Source, error) {
	extSet := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	var sources []index.Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && d.Name() == skipDir {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := extSet[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		sources = append(sources, index.Source{
			Path: filepath.ToSlash(rel),
			Text: string(text),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return sources, nil
}
