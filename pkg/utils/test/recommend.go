package testutils

import (
	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/recommend"
	"github.com/papercomputeco/shelf/pkg/simgraph"
)

// ShelfItems names the items of NewTestRecommender in index order.
var ShelfItems = []string{
	"little-red-hen.txt",
	"farmyard-tales.txt",
	"deep-sea-voyage.txt",
	"lonely-lighthouse.txt",
}

// ShelfMatrix links the hen to the voyage only through the farmyard. The
// lighthouse shares nothing with the rest.
var ShelfMatrix = simgraph.Matrix{
	{1, 0.9, 0.05, 0},
	{0.9, 1, 0.2, 0},
	{0.05, 0.2, 1, 0},
	{0, 0, 0, 1},
}

// NewTestRecommender returns a recommender over ShelfItems and ShelfMatrix
// with the default graph options.
func NewTestRecommender() (*recommend.Recommender, error) {
	docs := make([]corpus.Document, len(ShelfItems))
	for i, id := range ShelfItems {
		docs[i] = corpus.Document{ID: id}
	}
	catalog, err := corpus.NewCatalog(docs)
	if err != nil {
		return nil, err
	}
	return recommend.New(recommend.Config{
		Catalog: catalog,
		Matrix:  ShelfMatrix,
	})
}
