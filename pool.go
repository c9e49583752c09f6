package mdcard

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ConverterPool hands out up to Size Converters, each owning one browser.
// Converters are built on demand, so a pool that only ever serves text
// conversions never starts Chrome.
type ConverterPool struct {
	opts []Option
	idle chan *Converter

	mu    sync.Mutex
	all   []*Converter
	slots int // converters that may still be built
	done  bool

	// newConverter is replaced in tests.
	newConverter func(opts ...Option) (*Converter, error)
}

// NewConverterPool returns a pool of at most n converters built with opts.
// n below one is raised to one.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	n = max(n, MinPoolSize)
	return &ConverterPool{
		opts:         opts,
		idle:         make(chan *Converter, n),
		all:          make([]*Converter, 0, n),
		slots:        n,
		newConverter: NewConverter,
	}
}

// Acquire returns an idle converter, builds a new one while capacity
// remains, or waits for a Release. A failed build gives its slot back.
// Returns ErrPoolClosed after Close and ctx.Err() if ctx ends first.
func (p *ConverterPool) Acquire(ctx context.Context) (*Converter, error) {
	select {
	case c, ok := <-p.idle:
		return p.take(c, ok)
	default:
	}

	if p.reserveSlot() {
		c, err := p.newConverter(p.opts...)
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.slots++
			return nil, err
		}
		if p.done {
			_ = c.Close()
			return nil, ErrPoolClosed
		}
		p.all = append(p.all, c)
		return c, nil
	}

	select {
	case c, ok := <-p.idle:
		return p.take(c, ok)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// reserveSlot claims the right to build one converter.
func (p *ConverterPool) reserveSlot() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done || p.slots == 0 {
		return false
	}
	p.slots--
	return true
}

func (p *ConverterPool) take(c *Converter, ok bool) (*Converter, error) {
	if !ok {
		return nil, ErrPoolClosed
	}
	return c, nil
}

// Release hands c back for reuse. Nil and releases after Close are ignored.
// The idle channel holds every converter the pool can build, so the send
// never blocks while the lock is held.
func (p *ConverterPool) Release(c *Converter) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.idle <- c
}

// Close shuts down every browser the pool started and wakes blocked
// Acquire calls with ErrPoolClosed. Close errors are joined.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return nil
	}
	p.done = true
	close(p.idle)
	all := p.all
	p.mu.Unlock()

	var errs []error
	for _, c := range all {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return cap(p.idle)
}

// ResolvePoolSize picks a worker count: workers when positive, otherwise
// half of GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize]. The CLI sets
// GOMAXPROCS through automaxprocs so container CPU quotas are honored.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}
