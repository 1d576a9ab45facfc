package grid

import "sync"

// Pool is a thread-safe pool for reusing Grid buffers between stages.
//
// Every stage allocates a fresh output grid of the same size as its input, so
// a pipeline run touches only one or two distinct sizes. Pool groups buffers
// by dimensions and hands consumed intermediates back to later stages.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Grid
	maxSize int // max grids per bucket
}

// poolKey identifies a bucket of identically sized grids.
type poolKey struct {
	width  int
	height int
}

// NewPool creates a pool retaining at most maxPerBucket grids of each size.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Grid),
		maxSize: maxPerBucket,
	}
}

// Get returns a grid of the given size, reused from the pool when possible.
// The contents of a reused grid are unspecified; callers overwrite every pixel.
// A nil Pool allocates.
func (p *Pool) Get(width, height int) (*Grid, error) {
	if p != nil {
		key := poolKey{width: width, height: height}

		p.mu.Lock()
		bucket := p.buckets[key]
		if len(bucket) > 0 {
			g := bucket[len(bucket)-1]
			bucket[len(bucket)-1] = nil
			p.buckets[key] = bucket[:len(bucket)-1]
			p.mu.Unlock()
			return g, nil
		}
		p.mu.Unlock()
	}

	return New(width, height)
}

// Put returns g to the pool. The caller must not use g afterwards.
// Nil grids, a nil Pool and full buckets discard the grid.
func (p *Pool) Put(g *Grid) {
	if p == nil || g == nil {
		return
	}

	key := poolKey{width: g.width, height: g.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, g)
}

// Len returns the number of pooled grids across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
