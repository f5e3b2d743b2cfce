// Package pool runs independent CPU-bound work items on a bounded set of
// goroutines.
package pool

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Task processes the work item at index i. Implementations must only touch
// state owned by that index.
type Task func(ctx context.Context, i int) error

// Pool bounds how many tasks run at once.
// No rate limiting since the work never leaves the process.
type Pool struct {
	name        string
	logger      *slog.Logger
	workerCount int

	inFlight  atomic.Int32
	completed atomic.Int64
}

// Config configures a new pool.
type Config struct {
	Name        string
	Logger      *slog.Logger
	WorkerCount int // Number of concurrent tasks (default: runtime.NumCPU())
}

// Status reports a pool's current state.
type Status struct {
	Name      string `json:"name" yaml:"name"`
	Workers   int    `json:"workers" yaml:"workers"`
	InFlight  int    `json:"in_flight" yaml:"in_flight"`
	Completed int64  `json:"completed" yaml:"completed"`
}

// New creates a pool.
func New(cfg Config) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.Name
	if name == "" {
		name = "cpu"
	}

	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	return &Pool{
		name:        name,
		logger:      logger.With("pool", name, "workers", workerCount),
		workerCount: workerCount,
	}
}

// Name returns the pool name.
func (p *Pool) Name() string {
	return p.name
}

// Run calls task for every index in [0, n) and waits for all of them.
// The first task error cancels the context handed to the remaining tasks
// and is returned. Cancelling ctx stops new tasks from starting.
func (p *Pool) Run(ctx context.Context, n int, task Task) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerCount)

	p.logger.Debug("pool starting", "tasks", n)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			p.inFlight.Add(1)
			defer p.inFlight.Add(-1)

			if err := task(gctx, i); err != nil {
				p.logger.Debug("task failed", "index", i, "error", err)
				return err
			}
			p.completed.Add(1)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	p.logger.Debug("pool finished", "completed", p.completed.Load(), "error", err)
	return err
}

// Status returns current pool status.
func (p *Pool) Status() Status {
	return Status{
		Name:      p.name,
		Workers:   p.workerCount,
		InFlight:  int(p.inFlight.Load()),
		Completed: p.completed.Load(),
	}
}
