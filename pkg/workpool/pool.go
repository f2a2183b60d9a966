// Package workpool bounds the number of concurrently running subprocesses.
package workpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultSize = 4

// Pool limits concurrent work to a fixed number of slots.
type Pool struct {
	sem chan struct{}
}

// New creates a pool with the given number of slots. Non-positive sizes
// fall back to a small default.
func New(size int) *Pool {
	if size <= 0 {
		size = defaultSize
	}
	return &Pool{
		sem: make(chan struct{}, size),
	}
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// Acquire blocks until a slot is available.
func (p *Pool) Acquire() {
	p.sem <- struct{}{}
}

// Release returns a slot to the pool.
func (p *Pool) Release() {
	<-p.sem
}

// Run executes fn with a slot held.
func (p *Pool) Run(fn func()) {
	p.Acquire()
	defer p.Release()
	fn()
}

// RunContext executes fn with a slot held, respecting context cancellation.
// Returns ctx.Err() if context is cancelled while waiting to acquire.
func (p *Pool) RunContext(ctx context.Context, fn func()) error {
	select {
	case p.sem <- struct{}{}:
		defer p.Release()
		fn()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Each calls fn for every index in [0, n) on its own goroutine, at most
// Size at a time, and waits for all of them. It returns the context error if
// ctx is cancelled before every call got a slot.
func (p *Pool) Each(ctx context.Context, n int, fn func(i int)) error {
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			return p.RunContext(ctx, func() { fn(i) })
		})
	}
	return g.Wait()
}
