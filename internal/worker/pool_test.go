package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) GetError() error { return r.err }

// stubJob counts executions and optionally sleeps or fails
type stubJob struct {
	sleep    time.Duration
	fail     bool
	executed *atomic.Int32
	active   *atomic.Int32
	peak     *atomic.Int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		j.executed.Add(1)
	}
	if j.active != nil {
		n := j.active.Add(1)
		defer j.active.Add(-1)
		for {
			p := j.peak.Load()
			if n <= p || j.peak.CompareAndSwap(p, n) {
				break
			}
		}
	}
	if j.sleep > 0 {
		select {
		case <-time.After(j.sleep):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &stubResult{err: errors.New("convert failed")}
	}
	return &stubResult{}
}

func TestNewPool_Workers(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{5, 5},
		{1, 1},
		{0, 1},
		{-2, 1},
	}
	for _, tt := range tests {
		if got := NewPool(tt.in).workers; got != tt.want {
			t.Errorf("NewPool(%d).workers = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPool_SubmitAndWait(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed atomic.Int32
	pool.Submit(&stubJob{executed: &executed})
	pool.Submit(&stubJob{executed: &executed, fail: true})
	pool.Submit(&stubJob{executed: &executed})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if executed.Load() != 3 {
		t.Errorf("expected 3 executions, got %d", executed.Load())
	}

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

func TestPool_RunBoundsConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(workers)
	pool.Start()

	var executed, active, peak atomic.Int32
	jobs := make([]Job, 40)
	for i := range jobs {
		jobs[i] = &stubJob{sleep: 5 * time.Millisecond, executed: &executed, active: &active, peak: &peak}
	}

	results := pool.Run(jobs)
	if len(results) != len(jobs) {
		t.Errorf("expected %d results, got %d", len(jobs), len(results))
	}
	if executed.Load() != int32(len(jobs)) {
		t.Errorf("expected %d executions, got %d", len(jobs), executed.Load())
	}
	if peak.Load() > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", peak.Load(), workers)
	}
}

func TestPool_RunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPoolContext(ctx, 1)
	pool.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Run([]Job{&stubJob{sleep: time.Second}, &stubJob{sleep: time.Second}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_ShutdownInterruptsJobs(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	var active, peak atomic.Int32
	pool.Submit(&stubJob{sleep: 5 * time.Second, active: &active, peak: &peak})
	for active.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		for range pool.results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not interrupt the running job")
	}
}
