package corpus

import (
	"fmt"
	"path/filepath"
	"strings"
)

// UnknownItemError is returned when a name does not match any corpus item.
type UnknownItemError struct {
	Name string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("unknown item: %q", e.Name)
}

// Catalog is the ordered set of corpus documents.
type Catalog struct {
	docs   []Document
	byName map[string]int
}

// NewCatalog indexes docs in the given order, overwriting each document's
// Index with its position. Documents must have unique IDs.
func NewCatalog(docs []Document) (*Catalog, error) {
	c := &Catalog{
		docs:   make([]Document, len(docs)),
		byName: make(map[string]int, len(docs)*3),
	}

	for i, doc := range docs {
		if doc.ID == "" {
			return nil, fmt.Errorf("document %d has no id", i)
		}
		if doc.Title == "" {
			doc.Title = TitleFromName(doc.ID)
		}
		doc.Index = i
		c.docs[i] = doc

		if _, ok := c.byName[doc.ID]; ok {
			return nil, fmt.Errorf("duplicate document id: %q", doc.ID)
		}
		c.byName[doc.ID] = i
	}

	// Secondary keys never shadow an exact ID.
	for i, doc := range c.docs {
		for _, key := range []string{
			strings.TrimSuffix(doc.ID, filepath.Ext(doc.ID)),
			normalize(doc.Title),
		} {
			if _, ok := c.byName[key]; !ok {
				c.byName[key] = i
			}
		}
	}

	return c, nil
}

// Len returns the number of documents.
func (c *Catalog) Len() int {
	return len(c.docs)
}

// Documents returns the documents in index order.
func (c *Catalog) Documents() []Document {
	return c.docs
}

// Document returns the document at index i.
func (c *Catalog) Document(i int) (Document, bool) {
	if i < 0 || i >= len(c.docs) {
		return Document{}, false
	}
	return c.docs[i], true
}

// Lookup resolves a file name, a file name without its extension, or a
// case-insensitive title to an index.
func (c *Catalog) Lookup(name string) (int, error) {
	trimmed := strings.TrimSpace(name)
	for _, key := range []string{trimmed, filepath.Base(trimmed), normalize(trimmed)} {
		if i, ok := c.byName[key]; ok {
			return i, nil
		}
	}
	return -1, &UnknownItemError{Name: name}
}

// Indices resolves every name with Lookup.
func (c *Catalog) Indices(names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, name := range names {
		i, err := c.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

// Titles maps indices to titles. Unknown indices map to "#<index>".
func (c *Catalog) Titles(indices []int) []string {
	out := make([]string, len(indices))
	for k, i := range indices {
		if doc, ok := c.Document(i); ok {
			out[k] = doc.Title
		} else {
			out[k] = fmt.Sprintf("#%d", i)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
