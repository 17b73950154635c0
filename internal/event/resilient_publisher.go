package event

import (
	"context"
	"sync"
	"time"

	"github.com/bunchesapp/bunches-go/internal/logger"
)

// retryEntry tracks an event moving through the retry queue
type retryEntry struct {
	event     Event
	attempts  int
	lastError error
}

// ResilientPublisher wraps an Event Bus with a background retry queue and a
// dead-letter file for events that exhaust their retries. Callers never block
// on a failing subscriber; publish failures are absorbed here.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	deadLetter, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: deadLetter,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// PublishWithRetry publishes an event, queueing it for background retry when
// the first attempt fails. The caller is never blocked by retries.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, e Event) {
	err := p.bus.Publish(ctx, e)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed,
		"event_type", e.Type,
		"error", err)

	entry := retryEntry{event: e, attempts: 1, lastError: err}
	select {
	case p.retryQueue <- entry:
	default:
		log.Error(LogMsgRetryQueueFull, "event_type", e.Type)
		if dlErr := p.deadLetter.Write(e, entry.attempts, err); dlErr != nil {
			log.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
	}
}

// Publish implements Bus. Errors are absorbed by the retry machinery, so the
// returned error is always nil.
func (p *ResilientPublisher) Publish(ctx context.Context, e Event) error {
	p.PublishWithRetry(ctx, e)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// retryWorker processes the retry queue until shutdown, then drains it
func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drainQueue()
			return
		case entry := <-p.retryQueue:
			p.processRetry(entry)
		}
	}
}

// processRetry attempts an event with exponential backoff until it succeeds
// or retries are exhausted
func (p *ResilientPublisher) processRetry(entry retryEntry) {
	// Detached context: the originating request is long gone
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for entry.attempts <= p.maxRetries {
		time.Sleep(CalculateRetryDelay(p.retryDelay, entry.attempts))

		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded,
				"event_type", entry.event.Type,
				"attempt", entry.attempts)
			return
		}

		entry.lastError = err
		entry.attempts++
		log.Warn(LogMsgEventRetryFailed,
			"event_type", entry.event.Type,
			"attempt", entry.attempts,
			"error", err)
	}

	log.Warn(LogMsgEventRetryExhausted,
		"event_type", entry.event.Type,
		"attempts", entry.attempts)
	if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastError); err != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// drainQueue gives every queued event one final attempt before dead-lettering it
func (p *ResilientPublisher) drainQueue() {
	log := logger.FromContext(context.Background())
	drained := 0

	for {
		select {
		case entry := <-p.retryQueue:
			drained++
			if err := p.bus.Publish(context.Background(), entry.event); err != nil {
				log.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
				if dlErr := p.deadLetter.Write(entry.event, entry.attempts, err); dlErr != nil {
					log.Error(LogMsgDeadLetterWriteFailedS, "error", dlErr)
				}
			}
		default:
			if drained > 0 {
				log.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

// Shutdown stops the retry worker, drains pending retries, and closes the
// dead-letter file. It returns early with ctx.Err() if the context expires.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	close(p.shutdown)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
