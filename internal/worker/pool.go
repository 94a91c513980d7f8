// Package worker runs many inputs through the pipeline concurrently with a
// bounded pool and a per-host rate limiter for URL inputs.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a Job produces
type Result interface {
	GetError() error
}

// Pool runs submitted jobs on a fixed number of goroutines
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result

	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool of workers goroutines, at least one
func NewPool(workers int) *Pool {
	return NewPoolContext(context.Background(), workers)
}

// NewPoolContext creates a pool whose jobs stop when ctx is done
func NewPoolContext(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for range p.workers {
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			select {
			case p.results <- job.Execute(p.ctx):
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It returns without queueing once the pool is shut
// down.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue and returns every result in completion order.
// Jobs submitted beyond the queue and result buffers block Submit until
// Wait drains them; use Run for batches of any size.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	go p.finish()
	return p.drain()
}

// Run submits jobs from a separate goroutine and returns every result in
// completion order.
func (p *Pool) Run(jobs []Job) []Result {
	go func() {
		for _, job := range jobs {
			p.Submit(job)
		}
		close(p.jobs)
		p.finish()
	}()
	return p.drain()
}

func (p *Pool) finish() {
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) drain() []Result {
	var results []Result
	for r := range p.results {
		results = append(results, r)
	}
	return results
}

// Shutdown stops the workers without waiting for queued jobs
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() { close(p.results) })
}
