// Package undo keeps a LIFO history of reversible actions behind a visibility
// timer. The stack is entity-agnostic: callers push an Action whose Inverse
// closure restores whatever snapshot they captured before mutating.
//
// One Stack is built at startup and injected everywhere it is needed. The
// visibility timer only hides the undo affordance; history survives until it
// is undone or cleared.
package undo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/logger"
)

// Action is one undoable step. Inverse must restore the state captured before
// the mutation it reverses.
type Action struct {
	Kind        string
	Description string
	Inverse     func(context.Context) error
	At          time.Time
}

// Stack is the process-scoped undo history.
type Stack struct {
	visibility time.Duration
	bus        event.Bus

	mu       sync.Mutex
	notify   func(visible bool)
	actions  []Action
	visible  bool
	timer    *time.Timer
	timerGen uint64
}

// NewStack builds a stack whose affordance hides after the given duration.
// Non-positive durations fall back to DefaultVisibility. bus may be nil.
func NewStack(visibility time.Duration, bus event.Bus) *Stack {
	if visibility <= 0 {
		visibility = DefaultVisibility
	}
	return &Stack{visibility: visibility, bus: bus}
}

// Notify registers a listener called on every visibility transition.
func (s *Stack) Notify(fn func(visible bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// Push records an action, shows the affordance and restarts the hide timer.
func (s *Stack) Push(ctx context.Context, a Action) {
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}

	s.mu.Lock()
	s.cancelTimerLocked()
	s.actions = append(s.actions, a)
	changed := s.setVisibleLocked(true)
	s.startTimerLocked()
	depth := len(s.actions)
	notify := s.notify
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgUndoPushed,
		"kind", a.Kind,
		"depth", depth)
	if changed {
		s.announce(ctx, notify, true, depth)
	}
}

// PerformUndo runs the newest action's inverse and pops it on success. A
// failed inverse stays on the stack so the caller can retry.
func (s *Stack) PerformUndo(ctx context.Context) error {
	s.mu.Lock()
	if len(s.actions) == 0 {
		s.mu.Unlock()
		return domain.ErrNothingToUndo
	}

	s.cancelTimerLocked()
	a := s.actions[len(s.actions)-1]

	if a.Inverse != nil {
		if err := a.Inverse(ctx); err != nil {
			s.startTimerLocked()
			s.mu.Unlock()
			logger.FromContext(ctx).Warn(LogMsgUndoFailed,
				"kind", a.Kind,
				"error", err)
			return fmt.Errorf("undo %s: %w", a.Kind, err)
		}
	}

	s.actions = s.actions[:len(s.actions)-1]
	depth := len(s.actions)
	var changed bool
	if depth == 0 {
		changed = s.setVisibleLocked(false)
	} else {
		s.startTimerLocked()
	}
	notify := s.notify
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgUndoPerformed,
		"kind", a.Kind,
		"depth", depth)
	s.publish(ctx, event.NewUndoPerformedEvent(a.Kind, depth))
	if changed {
		s.announce(ctx, notify, false, depth)
	}
	return nil
}

// Clear discards all history and hides the affordance immediately.
func (s *Stack) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cancelTimerLocked()
	discarded := len(s.actions)
	s.actions = nil
	changed := s.setVisibleLocked(false)
	notify := s.notify
	s.mu.Unlock()

	if discarded > 0 {
		logger.FromContext(ctx).Info(LogMsgUndoCleared, "discarded", discarded)
	}
	if changed {
		s.announce(ctx, notify, false, 0)
	}
}

// Visible reports whether the undo affordance is currently shown.
func (s *Stack) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Len returns the number of undoable actions.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

// Peek returns the newest action's description without removing it.
func (s *Stack) Peek() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.actions) == 0 {
		return "", false
	}
	return s.actions[len(s.actions)-1].Description, true
}

func (s *Stack) setVisibleLocked(visible bool) bool {
	if s.visible == visible {
		return false
	}
	s.visible = visible
	return true
}

// cancelTimerLocked stops the pending hide and invalidates any callback that
// already fired, so a stale hide can never land after new history exists.
func (s *Stack) cancelTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Stack) startTimerLocked() {
	s.timerGen++
	gen := s.timerGen
	s.timer = time.AfterFunc(s.visibility, func() {
		s.expire(gen)
	})
}

// expire hides the affordance when the visibility window passes. History is
// kept; only the affordance goes away.
func (s *Stack) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	changed := s.setVisibleLocked(false)
	depth := len(s.actions)
	notify := s.notify
	s.mu.Unlock()

	if changed {
		logger.Info(LogMsgUndoHidden, "depth", depth)
		s.announce(context.Background(), notify, false, depth)
	}
}

func (s *Stack) announce(ctx context.Context, notify func(bool), visible bool, depth int) {
	if notify != nil {
		notify(visible)
	}
	s.publish(ctx, event.NewUndoVisibilityEvent(visible, depth))
}

func (s *Stack) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
			"event_type", evt.Type,
			"error", err)
	}
}
