package parallel

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Result is the outcome of one job.
type Result[T any] struct {
	ID       string
	Value    T
	Err      error
	Duration time.Duration

	seq int
}

// WorkerPool runs jobs with bounded concurrency.
type WorkerPool[T any] struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	results    []Result[T]
	submitted  int
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a pool running at most maxWorkers jobs at once.
// If maxWorkers is 0, every submitted job runs immediately.
// If failFast is true, jobs not yet started are skipped after the first error.
func NewWorkerPool[T any](ctx context.Context, maxWorkers int, failFast bool) *WorkerPool[T] {
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool[T]{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit schedules fn under id. It does not block.
func (p *WorkerPool[T]) Submit(id string, fn func(ctx context.Context) (T, error)) {
	p.mu.Lock()
	seq := p.submitted
	p.submitted++
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		// Acquire semaphore slot
		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				p.record(Result[T]{ID: id, Err: p.ctx.Err(), seq: seq})
				return
			}
		}

		if err := p.ctx.Err(); err != nil {
			p.record(Result[T]{ID: id, Err: err, seq: seq})
			return
		}

		start := time.Now()
		value, err := fn(p.ctx)
		p.record(Result[T]{ID: id, Value: value, Err: err, Duration: time.Since(start), seq: seq})
	}()
}

func (p *WorkerPool[T]) record(r Result[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.results = append(p.results, r)
	if r.Err != nil && p.failFast {
		p.cancel()
	}
}

// Wait waits for every submitted job and returns the results and the job
// errors, both in submission order.
func (p *WorkerPool[T]) Wait() ([]Result[T], []error) {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancel()

	results := make([]Result[T], len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool { return results[i].seq < results[j].seq })

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.ID, r.Err))
		}
	}
	return results, errs
}
