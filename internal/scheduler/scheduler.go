// Package scheduler fires recurring jobs into the worker pool on a fixed
// cadence.
package scheduler

import (
	"sync"
	"time"

	"github.com/bunchesapp/bunches-go/internal/worker"
)

// Scheduler owns the tickers for recurring jobs. Each scheduled job gets its
// own goroutine that enqueues the job into the shared worker pool; the pool
// bounds how many jobs actually run at once.
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a scheduler that feeds the given pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule enqueues the job once immediately, then again at every interval
// tick until Stop is called. Enqueue blocks when the pool queue is full, which
// holds back the ticker rather than piling up duplicate runs.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.workerPool.Enqueue(job)
		for {
			select {
			case <-ticker.C:
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts all tickers and waits for the scheduling goroutines to exit.
// Jobs already handed to the pool keep running until the pool itself stops.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
