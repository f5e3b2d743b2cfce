package pool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	p := New(Config{})
	if p.Name() != "cpu" {
		t.Errorf("expected default name cpu, got %s", p.Name())
	}
	if p.Status().Workers != runtime.NumCPU() {
		t.Errorf("expected %d workers, got %d", runtime.NumCPU(), p.Status().Workers)
	}
}

func TestPool_Run(t *testing.T) {
	p := New(Config{Name: "test", WorkerCount: 4})

	results := make([]int, 100)
	err := p.Run(context.Background(), len(results), func(ctx context.Context, i int) error {
		results[i] = i * i
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range results {
		if v != i*i {
			t.Fatalf("index %d: expected %d, got %d", i, i*i, v)
		}
	}
	if got := p.Status().Completed; got != 100 {
		t.Errorf("expected 100 completed, got %d", got)
	}
	if got := p.Status().InFlight; got != 0 {
		t.Errorf("expected nothing in flight, got %d", got)
	}
}

func TestPool_RunBoundsConcurrency(t *testing.T) {
	p := New(Config{WorkerCount: 2})

	var running, peak atomic.Int32
	err := p.Run(context.Background(), 50, func(ctx context.Context, i int) error {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		runtime.Gosched()
		running.Add(-1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak.Load() > 2 {
		t.Errorf("expected at most 2 concurrent tasks, saw %d", peak.Load())
	}
}

func TestPool_RunError(t *testing.T) {
	p := New(Config{WorkerCount: 1})
	boom := errors.New("boom")

	err := p.Run(context.Background(), 10, func(ctx context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestPool_RunCancelled(t *testing.T) {
	p := New(Config{WorkerCount: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := p.Run(ctx, 10, func(ctx context.Context, i int) error {
		calls.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no tasks to run, got %d", calls.Load())
	}
}
