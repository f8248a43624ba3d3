package testutils

import (
	"fmt"

	"github.com/papercomputeco/shelf/pkg/corpus"
)

// NewTestDocuments returns indexed in-memory documents named doc-0.txt,
// doc-1.txt, ... with the given texts.
func NewTestDocuments(texts ...string) []corpus.Document {
	docs := make([]corpus.Document, len(texts))
	for i, text := range texts {
		id := fmt.Sprintf("doc-%d.txt", i)
		docs[i] = corpus.Document{
			Index: i,
			ID:    id,
			Title: corpus.TitleFromName(id),
			Text:  text,
		}
	}
	return docs
}
