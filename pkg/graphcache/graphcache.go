// Package graphcache memoises similarity graphs by their inputs.
//
// A graph is keyed by the SHA-256 of the matrix cells together with the policy
// and transform names. Concurrent first requests for the same key share one
// build; failed builds are not cached.
package graphcache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/papercomputeco/shelf/pkg/simgraph"
)

// Cache holds built graphs. The zero value is not usable; call New.
type Cache struct {
	mu     sync.RWMutex
	graphs map[string]*simgraph.Graph

	group  singleflight.Group
	builds atomic.Int64
	logger *slog.Logger
}

// New returns an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		graphs: make(map[string]*simgraph.Graph),
		logger: logger,
	}
}

// Get returns the graph for m and opts, building it on first use.
func (c *Cache) Get(m simgraph.Matrix, opts simgraph.Options) (*simgraph.Graph, error) {
	opts = withDefaults(opts)
	key := Key(m, opts)

	c.mu.RLock()
	g, ok := c.graphs[key]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		g, ok := c.graphs[key]
		c.mu.RUnlock()
		if ok {
			return g, nil
		}

		c.builds.Add(1)
		g, err := simgraph.Build(m, opts)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.graphs[key] = g
		c.mu.Unlock()

		c.logger.Debug("graph built",
			"key", key[:12],
			"policy", opts.Policy.Name(),
			"transform", opts.Transform.Name(),
			"nodes", g.Len(),
			"edges", g.EdgeCount(),
		)
		return g, nil
	})
	if err != nil {
		c.logger.Debug("graph build failed", "key", key[:12], "error", err)
		return nil, err
	}
	if shared {
		c.logger.Debug("graph build shared", "key", key[:12])
	}

	return v.(*simgraph.Graph), nil
}

// Len returns the number of cached graphs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.graphs)
}

// Builds returns how many times Build has been called by this cache.
func (c *Cache) Builds() int64 {
	return c.builds.Load()
}

// Purge drops every cached graph.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.graphs)
}

// Key returns the cache key for m and opts. Options must already have a
// policy and a transform.
func Key(m simgraph.Matrix, opts simgraph.Options) string {
	h := sha256.New()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(m)))
	h.Write(buf[:])
	for _, row := range m {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(row)))
		h.Write(buf[:])
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}

	h.Write([]byte(opts.Policy.Name()))
	h.Write([]byte{0})
	h.Write([]byte(opts.Transform.Name()))

	return hex.EncodeToString(h.Sum(nil))
}

func withDefaults(opts simgraph.Options) simgraph.Options {
	d := simgraph.DefaultOptions()
	if opts.Policy == nil {
		opts.Policy = d.Policy
	}
	if opts.Transform == nil {
		opts.Transform = d.Transform
	}
	return opts
}
