package main

import (
	"context"
	"fmt"

	"github.com/jaydendev/mdcard"
)

// poolAdapter exposes *mdcard.ConverterPool through the CLI Pool interface.
type poolAdapter struct {
	pool *mdcard.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newPoolAdapter creates a converter pool of the given size.
func newPoolAdapter(size int, opts ...mdcard.Option) Pool {
	return &poolAdapter{pool: mdcard.NewConverterPool(size, opts...)}
}

// Acquire gets a converter, creating one on first use.
func (a *poolAdapter) Acquire(ctx context.Context) (CLIConverter, error) {
	c, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release returns a converter obtained from Acquire.
// Panics on a foreign type (programmer error).
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*mdcard.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// Close releases all browser resources.
func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
