package outline2html

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one instance is available.
	MinPoolSize = 1

	// MaxPoolSize caps instances; rendering is CPU-bound and each instance
	// holds its own transcoder and fragment cache.
	MaxPoolSize = 16
)

// RepresentationPool hands out Representation instances to goroutines.
// A Representation is not safe for concurrent use; the pool guarantees that
// an instance has at most one holder at a time. Instances are created lazily
// on first acquire.
type RepresentationPool struct {
	factory   func() *Representation
	size      int
	instances chan *Representation
	mu        sync.Mutex
	created   int
}

// NewRepresentationPool creates a pool of at most n instances built by factory.
func NewRepresentationPool(factory func() *Representation, n int) *RepresentationPool {
	if n < 1 {
		n = 1
	}
	if factory == nil {
		factory = func() *Representation { return New(nil, nil, nil) }
	}

	return &RepresentationPool{
		factory:   factory,
		size:      n,
		instances: make(chan *Representation, n),
	}
}

// Acquire gets an instance from the pool, creating one if needed.
// Blocks if all instances are in use.
func (p *RepresentationPool) Acquire() *Representation {
	select {
	case r := <-p.instances:
		return r
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return p.factory()
	}
	p.mu.Unlock()

	return <-p.instances
}

// Release returns an instance to the pool. Nil is ignored.
func (p *RepresentationPool) Release(r *Representation) {
	if r == nil {
		return
	}
	p.instances <- r
}

// Size returns the pool capacity.
func (p *RepresentationPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in containers).
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0), MinPoolSize), MaxPoolSize)
}
