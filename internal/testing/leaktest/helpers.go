// Package leaktest provides goroutine accounting for tests that spin up
// timers or background workers.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// Grace period for stragglers. Check keeps re-sampling the goroutine count
// until the overshoot clears or the deadline passes, so a Stop call racing
// its workers does not fail the test.
const (
	settlePoll    = 10 * time.Millisecond
	settleTimeout = 500 * time.Millisecond
)

// GoroutineChecker compares goroutine counts across a test body.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count as the baseline.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	// Let goroutines from previous tests settle first
	runtime.Gosched()
	time.Sleep(settlePoll)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines outlive the
// baseline.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	leaked := g.settle(g.before + tolerance)
	if leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, leaked=%d (tolerance=%d)",
			g.before, leaked, tolerance)
	}
}

// settle polls the goroutine count until it drops to target or the grace
// period runs out, returning the final overshoot past the baseline.
func (g *GoroutineChecker) settle(target int) int {
	runtime.GC()
	deadline := time.Now().Add(settleTimeout)
	for {
		runtime.Gosched()
		current := runtime.NumGoroutine()
		if current <= target || time.Now().After(deadline) {
			return current - g.before
		}
		time.Sleep(settlePoll)
	}
}

// CheckNoGoroutineLeak runs fn and fails when any goroutine it started is
// still alive afterwards.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines blocks until the process is back down to target
// goroutines or the timeout passes.
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return
		}
		time.Sleep(settlePoll)
	}

	t.Errorf("Timeout waiting for goroutines to exit: current=%d, target=%d",
		runtime.NumGoroutine(), target)
}
