// Package corpus loads the documents a reading plan is computed over and
// keeps the mapping between item indices and item names.
//
// Indices are assigned by sorted file name, so the same directory always
// yields the same index order. The Catalog is passed explicitly to whatever
// needs to translate between names and indices; nothing here is global.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// DefaultExtension is the file extension LoadDir uses when none is given.
const DefaultExtension = ".txt"

// Document is one corpus item.
type Document struct {
	// Index is the item's position in sorted file name order.
	Index int `json:"index"`

	// ID is the file name, e.g. "little-red-hen.txt".
	ID string `json:"id"`

	// Title is the display title derived from the file name.
	Title string `json:"title"`

	// Path is the file's location on disk. Empty for in-memory documents.
	Path string `json:"path,omitempty"`

	// Text is the document content.
	Text string `json:"-"`
}

// LoadDir reads every file in dir with the given extension. Documents are
// indexed in file name order.
func LoadDir(dir, ext string) (*Catalog, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrEmptyCorpus, ext, dir)
	}

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, Document{
			ID:    name,
			Title: TitleFromName(name),
			Path:  path,
			Text:  string(data),
		})
	}

	return NewCatalog(docs)
}

// TitleFromName turns a file name into a display title:
// "twenty-thousand-leagues.txt" becomes "Twenty Thousand Leagues".
func TitleFromName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ErrEmptyCorpus is returned when a corpus contains no documents.
var ErrEmptyCorpus = errors.New("empty corpus")
