// Package pool provides a fixed-size goroutine pool for CPU-bound loops.
//
// Workers are started once and reused for every loop, so a caller that runs
// the same loop every iteration pays the goroutine start-up cost only once.
package pool

import (
	"errors"
	"sync"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("pool: closed")

// Pool is a fixed set of worker goroutines fed from a shared task channel.
type Pool struct {
	tasks chan func()
	size  int

	mu     sync.RWMutex // guards closed against concurrent submit
	closed bool
	wg     sync.WaitGroup
}

// New starts a pool with size workers. Sizes below 1 are raised to 1.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}

	p := &Pool{
		tasks: make(chan func()),
		size:  size,
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// ParallelizeLoop splits [first, last) into Size contiguous blocks and runs
// fn once per block on the workers. It blocks until every block returned.
//
// fn must not call back into the same pool.
func (p *Pool) ParallelizeLoop(first, last int, fn func(lo, hi int)) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	blocks := Partition(first, last, p.size)

	var wg sync.WaitGroup
	wg.Add(len(blocks))
	for _, b := range blocks {
		p.tasks <- func() {
			defer wg.Done()
			fn(b.Lo, b.Hi)
		}
	}
	wg.Wait()

	return nil
}

// Close stops the workers after in-flight loops finished.
// It is safe to call Close more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}
