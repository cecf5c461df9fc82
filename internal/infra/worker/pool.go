// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var ErrPoolStopped = errors.New("worker pool stopped")

type Task func(ctx context.Context) error

// Pool runs tasks on a fixed number of workers. Tasks submitted with the same
// key always land on the same worker, so they run one at a time in submission
// order. With a single worker every task is strictly sequential.
type Pool struct {
	wg     sync.WaitGroup
	mu     sync.RWMutex
	queues []chan Task
	closed bool
	log    *zerolog.Logger
}

func NewPool(workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	queues := make([]chan Task, workers)
	for i := range queues {
		queues[i] = make(chan Task, 16)
	}
	return &Pool{queues: queues, log: logger}
}

// Start launches the workers. Tasks receive ctx.
func (p *Pool) Start(ctx context.Context) {
	for i, q := range p.queues {
		p.wg.Add(1)
		go func(id int, q <-chan Task) {
			defer p.wg.Done()
			for task := range q {
				if err := task(ctx); err != nil {
					p.log.Error().Err(err).Int("worker", id).Msg("task failed")
				}
			}
		}(i+1, q)
	}
}

// Submit queues task on the worker owning key, blocking while that worker's
// queue is full.
func (p *Pool) Submit(ctx context.Context, key int64, task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolStopped
	}
	q := p.queues[uint64(key)%uint64(len(p.queues))]
	select {
	case q <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop stops accepting tasks, lets queued ones finish and waits for workers.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		for _, q := range p.queues {
			close(q)
		}
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) Size() int { return len(p.queues) }
