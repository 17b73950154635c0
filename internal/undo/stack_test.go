package undo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/grocery"
	"github.com/bunchesapp/bunches-go/internal/storage/memory"
	"github.com/bunchesapp/bunches-go/internal/testing/leaktest"
)

// TestMain ensures no stack timer callback outlives the tests in this package.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func noopAction(kind string) Action {
	return Action{Kind: kind, Inverse: func(ctx context.Context) error { return nil }}
}

func TestPush_ShowsAffordance(t *testing.T) {
	stack := NewStack(time.Minute, nil)
	ctx := context.Background()

	assert.False(t, stack.Visible())
	stack.Push(ctx, Action{Kind: "test", Description: "Cleared checked items"})

	assert.True(t, stack.Visible())
	assert.Equal(t, 1, stack.Len())

	desc, ok := stack.Peek()
	require.True(t, ok)
	assert.Equal(t, "Cleared checked items", desc)
}

func TestTimer_HidesButKeepsHistory(t *testing.T) {
	stack := NewStack(150*time.Millisecond, nil)
	ctx := context.Background()

	stack.Push(ctx, noopAction("test"))
	assert.True(t, stack.Visible())

	time.Sleep(300 * time.Millisecond)

	assert.False(t, stack.Visible(), "affordance hides after the window")
	assert.Equal(t, 1, stack.Len(), "history survives the timer")

	// Hidden history is still undoable
	require.NoError(t, stack.PerformUndo(ctx))
	assert.Zero(t, stack.Len())
}

func TestPush_RestartsTimer(t *testing.T) {
	stack := NewStack(150*time.Millisecond, nil)
	ctx := context.Background()

	stack.Push(ctx, noopAction("first"))
	time.Sleep(100 * time.Millisecond)
	stack.Push(ctx, noopAction("second"))
	time.Sleep(100 * time.Millisecond)

	assert.True(t, stack.Visible(), "second push must reset the hide timer")

	time.Sleep(150 * time.Millisecond)
	assert.False(t, stack.Visible())
	assert.Equal(t, 2, stack.Len())
}

func TestPerformUndo_EmptyStack(t *testing.T) {
	stack := NewStack(time.Minute, nil)

	err := stack.PerformUndo(context.Background())
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)
}

func TestPerformUndo_LIFO(t *testing.T) {
	stack := NewStack(time.Minute, nil)
	ctx := context.Background()

	var order []string
	record := func(name string) Action {
		return Action{Kind: name, Inverse: func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	stack.Push(ctx, record("first"))
	stack.Push(ctx, record("second"))
	stack.Push(ctx, record("third"))

	require.NoError(t, stack.PerformUndo(ctx))
	require.NoError(t, stack.PerformUndo(ctx))
	require.NoError(t, stack.PerformUndo(ctx))

	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestPerformUndo_FailedInverseStaysUndoable(t *testing.T) {
	stack := NewStack(time.Minute, nil)
	ctx := context.Background()

	calls := 0
	stack.Push(ctx, Action{Kind: "flaky", Inverse: func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("restore failed")
		}
		return nil
	}})

	require.Error(t, stack.PerformUndo(ctx))
	assert.Equal(t, 1, stack.Len(), "failed inverse is not popped")
	assert.True(t, stack.Visible())

	require.NoError(t, stack.PerformUndo(ctx))
	assert.Zero(t, stack.Len())
}

func TestPerformUndo_HidesWhenEmptied(t *testing.T) {
	stack := NewStack(time.Minute, nil)
	ctx := context.Background()

	stack.Push(ctx, noopAction("a"))
	stack.Push(ctx, noopAction("b"))

	require.NoError(t, stack.PerformUndo(ctx))
	assert.True(t, stack.Visible(), "affordance stays up while history remains")

	require.NoError(t, stack.PerformUndo(ctx))
	assert.False(t, stack.Visible())
}

func TestClear(t *testing.T) {
	stack := NewStack(time.Minute, nil)
	ctx := context.Background()

	stack.Push(ctx, noopAction("a"))
	stack.Push(ctx, noopAction("b"))

	stack.Clear(ctx)

	assert.Zero(t, stack.Len())
	assert.False(t, stack.Visible())
	assert.ErrorIs(t, stack.PerformUndo(ctx), domain.ErrNothingToUndo)
}

func TestNotify_Transitions(t *testing.T) {
	stack := NewStack(time.Minute, nil)
	ctx := context.Background()

	var transitions []bool
	stack.Notify(func(visible bool) {
		transitions = append(transitions, visible)
	})

	stack.Push(ctx, noopAction("a"))
	stack.Push(ctx, noopAction("b")) // already visible, no transition
	require.NoError(t, stack.PerformUndo(ctx))
	require.NoError(t, stack.PerformUndo(ctx))

	assert.Equal(t, []bool{true, false}, transitions)
}

func TestStack_PublishesEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	stack := NewStack(time.Minute, bus)
	ctx := context.Background()

	var got []event.Event
	handler := func(ctx context.Context, evt event.Event) error {
		got = append(got, evt)
		return nil
	}
	bus.Subscribe(event.UndoPerformed, handler)
	bus.Subscribe(event.UndoVisibility, handler)

	stack.Push(ctx, noopAction("grocery.clear"))
	require.NoError(t, stack.PerformUndo(ctx))

	require.Len(t, got, 3)
	assert.Equal(t, event.UndoVisibility, got[0].Type)
	assert.Equal(t, event.UndoPerformed, got[1].Type)
	assert.Equal(t, event.UndoVisibility, got[2].Type)

	shown, err := event.DecodePayload[event.UndoPayloadV1](got[0].Payload)
	require.NoError(t, err)
	assert.True(t, shown.Visible)
	assert.Equal(t, 1, shown.Depth)

	performed, err := event.DecodePayload[event.UndoPayloadV1](got[1].Payload)
	require.NoError(t, err)
	assert.Equal(t, "grocery.clear", performed.Action)
	assert.Zero(t, performed.Depth)
}

// Mirrors the app flow: every grocery mutation is preceded by a whole-list
// snapshot push, and undoing walks the snapshots back in reverse order.
func TestStack_RestoresGroceryListSnapshots(t *testing.T) {
	ctx := context.Background()
	list := grocery.NewStore(memory.New(), nil)
	stack := NewStack(time.Minute, nil)

	created, err := list.AddItems(ctx, []string{"2 tortillas", "1 lb beef", "salsa"},
		domain.Recipe{ID: "r1", Title: "Tacos"}, "main")
	require.NoError(t, err)

	pushRestore := func(kind string, snapshot []domain.GroceryItem) {
		stack.Push(ctx, Action{Kind: kind, Inverse: func(ctx context.Context) error {
			return list.Replace(ctx, snapshot)
		}})
	}

	allUnchecked, err := list.Items(ctx)
	require.NoError(t, err)
	_, err = list.ToggleItemChecked(ctx, created[1].ID)
	require.NoError(t, err)
	pushRestore("grocery.toggle", allUnchecked)

	secondChecked, err := list.Items(ctx)
	require.NoError(t, err)
	_, err = list.ClearCheckedItems(ctx)
	require.NoError(t, err)
	pushRestore("grocery.clear_checked", secondChecked)

	items, err := list.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// First undo brings back the checked item
	require.NoError(t, stack.PerformUndo(ctx))
	items, err = list.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(secondChecked, items))
	assert.Equal(t, 1, stack.Len())

	// Second undo restores the pre-toggle list and hides the affordance
	require.NoError(t, stack.PerformUndo(ctx))
	items, err = list.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(allUnchecked, items))
	assert.Zero(t, stack.Len())
	assert.False(t, stack.Visible())
}

func TestStack_NoTimerGoroutineLeaks(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		ctx := context.Background()

		stack := NewStack(50*time.Millisecond, nil)
		stack.Push(ctx, noopAction("expires"))
		time.Sleep(120 * time.Millisecond)

		stack.Push(ctx, noopAction("cleared"))
		stack.Clear(ctx)
	})
}

func TestStack_ConcurrentPushes(t *testing.T) {
	stack := NewStack(time.Minute, nil)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			stack.Push(ctx, noopAction("parallel"))
		}()
	}
	wg.Wait()

	assert.Equal(t, n, stack.Len())
	assert.True(t, stack.Visible())
}
