// Package recommend turns corpus item names into reading plans.
//
// A Recommender owns the catalog, the similarity matrix and the graph options.
// The graph itself lives in a graphcache.Cache, so recommenders that share a
// cache and identical inputs share one graph.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/graphcache"
	"github.com/papercomputeco/shelf/pkg/logger"
	"github.com/papercomputeco/shelf/pkg/planner"
	"github.com/papercomputeco/shelf/pkg/simgraph"
)

// Config holds everything a Recommender needs.
type Config struct {
	Catalog *corpus.Catalog
	Matrix  simgraph.Matrix
	Options simgraph.Options

	// Cache defaults to a private cache.
	Cache *graphcache.Cache

	Logger *slog.Logger
}

// Recommender plans reading paths over one corpus.
type Recommender struct {
	catalog *corpus.Catalog
	matrix  simgraph.Matrix
	opts    simgraph.Options
	cache   *graphcache.Cache
	logger  *slog.Logger
}

// New validates c and returns a Recommender.
func New(c Config) (*Recommender, error) {
	if c.Catalog == nil {
		return nil, errors.New("recommender requires a catalog")
	}
	if c.Matrix.Len() != c.Catalog.Len() {
		return nil, fmt.Errorf("similarity matrix has %d rows for %d corpus items", c.Matrix.Len(), c.Catalog.Len())
	}
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
	if c.Cache == nil {
		c.Cache = graphcache.New(c.Logger)
	}

	d := simgraph.DefaultOptions()
	if c.Options.Policy == nil {
		c.Options.Policy = d.Policy
	}
	if c.Options.Transform == nil {
		c.Options.Transform = d.Transform
	}

	return &Recommender{
		catalog: c.Catalog,
		matrix:  c.Matrix,
		opts:    c.Options,
		cache:   c.Cache,
		logger:  c.Logger,
	}, nil
}

// Catalog returns the corpus catalog.
func (r *Recommender) Catalog() *corpus.Catalog {
	return r.catalog
}

// Options returns the graph options in use.
func (r *Recommender) Options() simgraph.Options {
	return r.opts
}

// Graph returns the similarity graph, building it on first use.
func (r *Recommender) Graph() (*simgraph.Graph, error) {
	return r.cache.Get(r.matrix, r.opts)
}

// Recommend plans the cheapest path from any item in read to want. Names are
// resolved with corpus.Catalog.Lookup. Unknown names fail with
// *corpus.UnknownItemError; a missing path fails with *NoPathError.
func (r *Recommender) Recommend(ctx context.Context, read []string, want string) (*Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wantIdx, err := r.catalog.Lookup(want)
	if err != nil {
		return nil, err
	}
	readIdx, err := r.catalog.Indices(read)
	if err != nil {
		return nil, err
	}

	g, err := r.Graph()
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	plan, err := planner.Plan(g, readIdx, wantIdx)
	if err != nil {
		return nil, r.translate(err, wantIdx)
	}

	routes, err := planner.Routes(g, readIdx, wantIdx)
	if err != nil {
		return nil, r.translate(err, wantIdx)
	}

	rec := &Recommendation{
		Want:     r.item(plan.Want),
		From:     r.item(plan.Source),
		Steps:    r.items(plan.Path),
		Distance: plan.Distance,
		Routes:   make([]Route, len(routes)),
	}
	for i, route := range routes {
		rec.Routes[i] = Route{
			From:      r.item(route.Source),
			Reachable: route.Reachable,
			Distance:  route.Distance,
			Steps:     r.items(route.Path),
		}
	}

	r.logger.Debug("reading plan",
		"want", rec.Want.ID,
		"from", rec.From.ID,
		"steps", len(rec.Steps),
		"distance", rec.Distance,
	)

	return rec, nil
}

// Stats summarises the similarity graph.
func (r *Recommender) Stats() (GraphStats, error) {
	g, err := r.Graph()
	if err != nil {
		return GraphStats{}, err
	}

	stats := GraphStats{
		Nodes:      g.Len(),
		Edges:      g.EdgeCount(),
		Components: len(g.Components()),
		Isolated:   r.items(g.Isolated()),
		Policy:     r.opts.Policy.Name(),
		Transform:  r.opts.Transform.Name(),
	}
	if g.Len() > 0 {
		stats.MeanDegree = 2 * float64(g.EdgeCount()) / float64(g.Len())
	}
	return stats, nil
}

// Edges returns every graph edge resolved to items.
func (r *Recommender) Edges() ([]Edge, error) {
	g, err := r.Graph()
	if err != nil {
		return nil, err
	}

	edges := g.Edges()
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = Edge{From: r.item(e.From), To: r.item(e.To), Weight: e.Weight}
	}
	return out, nil
}

// Items returns every corpus item in index order.
func (r *Recommender) Items() []Item {
	docs := r.catalog.Documents()
	out := make([]Item, len(docs))
	for i, doc := range docs {
		out[i] = itemOf(doc)
	}
	return out
}

func (r *Recommender) item(i int) Item {
	doc, ok := r.catalog.Document(i)
	if !ok {
		return Item{Index: i, Title: fmt.Sprintf("#%d", i)}
	}
	return itemOf(doc)
}

func (r *Recommender) items(indices []int) []Item {
	if indices == nil {
		return nil
	}
	out := make([]Item, len(indices))
	for k, i := range indices {
		out[k] = r.item(i)
	}
	return out
}

// translate rewrites planner errors in terms of item IDs.
func (r *Recommender) translate(err error, want int) error {
	var noPath *planner.NoPathError
	if errors.As(err, &noPath) {
		ids := make([]string, len(noPath.Read))
		for k, i := range noPath.Read {
			ids[k] = r.item(i).ID
		}
		return &NoPathError{Want: r.item(want).ID, Read: ids, err: noPath}
	}
	return err
}
