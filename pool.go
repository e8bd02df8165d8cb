package carte

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent exports; each holds its attachments and
	// two intermediate documents in memory.
	MaxPoolSize = 8
)

// AssemblerPool bounds the number of concurrent exports of a batch.
// Assemblers are created lazily on first acquire and share no export state.
type AssemblerPool struct {
	size    int
	opts    []Option
	sem     chan *Assembler
	mu      sync.Mutex
	created int
}

// NewAssemblerPool creates a pool with capacity for n Assemblers built
// with opts.
func NewAssemblerPool(n int, opts ...Option) *AssemblerPool {
	if n < 1 {
		n = 1
	}
	return &AssemblerPool{
		size: n,
		opts: opts,
		sem:  make(chan *Assembler, n),
	}
}

// Acquire gets an Assembler from the pool, creating one if capacity
// allows. Blocks until one is released or ctx is done.
func (p *AssemblerPool) Acquire(ctx context.Context) (*Assembler, error) {
	select {
	case a := <-p.sem:
		return a, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		a, err := NewAssembler(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return a, nil
	}
	p.mu.Unlock()

	select {
	case a := <-p.sem:
		return a, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns an Assembler to the pool.
func (p *AssemblerPool) Release(a *Assembler) {
	if a == nil {
		return
	}
	p.sem <- a
}

// Size returns the pool capacity.
func (p *AssemblerPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the number of concurrent exports.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
