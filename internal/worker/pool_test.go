package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

type signalJob struct {
	done chan struct{}
	err  error
}

func (j *signalJob) Process(ctx context.Context) error {
	j.done <- struct{}{}
	return j.err
}

func waitForRuns(t *testing.T, done chan struct{}, want int) {
	t.Helper()
	for i := 0; i < want; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("Timed out waiting for job run %d of %d", i+1, want)
		}
	}
}

func TestPool_ExecutesQueuedJobs(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	job := &signalJob{done: make(chan struct{}, 3)}
	for i := 0; i < 3; i++ {
		pool.Enqueue(job)
	}

	waitForRuns(t, job.done, 3)
}

func TestPool_SurvivesJobFailure(t *testing.T) {
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	failing := &signalJob{done: make(chan struct{}, 1), err: errors.New("job exploded")}
	healthy := &signalJob{done: make(chan struct{}, 1)}

	pool.Enqueue(failing)
	pool.Enqueue(healthy)

	// The failure is logged and the worker keeps going
	waitForRuns(t, failing.done, 1)
	waitForRuns(t, healthy.done, 1)
}

type panickyJob struct {
	entered chan struct{}
}

func (j *panickyJob) Process(ctx context.Context) error {
	close(j.entered)
	panic("corrupt job state")
}

func TestPool_ContainsJobPanic(t *testing.T) {
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	bad := &panickyJob{entered: make(chan struct{})}
	healthy := &signalJob{done: make(chan struct{}, 1)}

	pool.Enqueue(bad)
	pool.Enqueue(healthy)

	select {
	case <-bad.entered:
	case <-time.After(time.Second):
		t.Fatal("Panicking job never ran")
	}
	waitForRuns(t, healthy.done, 1)
}

func TestPool_StopWaitsForWorkers(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()

	job := &signalJob{done: make(chan struct{}, 1)}
	pool.Enqueue(job)
	waitForRuns(t, job.done, 1)

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after workers went idle")
	}
}
