package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/embeddings"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// job is one document to embed.
type job struct {
	doc corpus.Document
}

// pool embeds documents on a fixed number of workers. Results land in
// vectors at the document's index. The first error cancels the remaining jobs.
type pool struct {
	embedder embeddings.Embedder
	queue    chan job
	wg       sync.WaitGroup
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	vectors [][]float32

	mu  sync.Mutex
	err error
}

func newPool(ctx context.Context, c *Config, vectors [][]float32) (*pool, error) {
	numWorkers := c.NumWorkers
	if numWorkers == 0 {
		numWorkers = defaultNumWorkers
	}
	queueSize := c.QueueSize
	if queueSize == 0 {
		queueSize = defaultJobQueueSize
	}
	if numWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", numWorkers)
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &pool{
		embedder: c.Embedder,
		queue:    make(chan job, queueSize),
		logger:   c.Logger,
		ctx:      ctx,
		cancel:   cancel,
		vectors:  vectors,
	}

	p.wg.Add(int(numWorkers))
	for i := range numWorkers {
		go p.worker(i)
	}

	return p, nil
}

// enqueue blocks until the job is queued. It returns false once the pool has
// been cancelled.
func (p *pool) enqueue(j job) bool {
	select {
	case p.queue <- j:
		p.logger.Debug("embedding job queued", "id", j.doc.ID)
		return true
	case <-p.ctx.Done():
		return false
	}
}

// close stops accepting jobs, waits for the workers to drain and returns the
// first embedding error.
func (p *pool) close() error {
	close(p.queue)
	p.wg.Wait()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("embedding worker started", "worker_id", id)

	for j := range p.queue {
		if p.ctx.Err() != nil {
			continue
		}
		p.process(j)
	}

	p.logger.Debug("embedding worker stopped", "worker_id", id)
}

func (p *pool) process(j job) {
	emb, err := p.embedder.Embed(p.ctx, j.doc.Text)
	if err != nil {
		p.fail(fmt.Errorf("embedding %s: %w", j.doc.ID, err))
		return
	}

	p.vectors[j.doc.Index] = emb
	p.logger.Debug("embedded document",
		"id", j.doc.ID,
		"embedding_dim", len(emb),
	)
}

func (p *pool) fail(err error) {
	p.mu.Lock()
	if p.err == nil {
		p.err = err
	}
	p.mu.Unlock()
	p.cancel()
}
