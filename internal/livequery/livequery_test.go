package livequery

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func receive[T any](t *testing.T, q *Query[T]) Result[T] {
	t.Helper()
	select {
	case result, ok := <-q.Updates():
		if !ok {
			t.Fatal("updates channel closed unexpectedly")
		}
		return result
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for query result")
	}
	panic("unreachable")
}

func TestWatch_DeliversInitialResult(t *testing.T) {
	bus := NewBus()
	q := Watch(context.Background(), bus, []Table{TableTodos}, func(context.Context) (string, error) {
		return "initial", nil
	})
	defer q.Close()

	result := receive(t, q)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Value != "initial" {
		t.Errorf("expected %q, got %q", "initial", result.Value)
	}
}

func TestWatch_ReRunsOnDependentWrite(t *testing.T) {
	bus := NewBus()
	var runs int32
	q := Watch(context.Background(), bus, []Table{TableTodos, TableSubtasks}, func(context.Context) (int32, error) {
		return atomic.AddInt32(&runs, 1), nil
	})
	defer q.Close()

	if first := receive(t, q); first.Value != 1 {
		t.Fatalf("expected first run, got %d", first.Value)
	}

	bus.Publish(TableTodos)
	if second := receive(t, q); second.Value != 2 {
		t.Fatalf("expected second run, got %d", second.Value)
	}

	bus.Publish(TableSubtasks)
	if third := receive(t, q); third.Value != 3 {
		t.Fatalf("expected third run, got %d", third.Value)
	}
}

func TestWatch_IgnoresUnrelatedWrite(t *testing.T) {
	bus := NewBus()
	q := Watch(context.Background(), bus, []Table{TableCategories}, func(context.Context) (int, error) {
		return 0, nil
	})
	defer q.Close()

	receive(t, q)
	bus.Publish(TablePreferences)

	select {
	case result := <-q.Updates():
		t.Fatalf("unexpected re-run after unrelated write: %+v", result)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatch_CoalescesBursts(t *testing.T) {
	bus := NewBus()
	q := Watch(context.Background(), bus, []Table{TableTodos}, func(context.Context) (int, error) {
		return 0, nil
	})
	defer q.Close()

	receive(t, q)
	for i := 0; i < 10; i++ {
		bus.Publish(TableTodos)
	}

	// A burst while no re-run is in flight folds into one dirty mark,
	// so at most one more result arrives before the channel idles.
	receive(t, q)
	select {
	case <-q.Updates():
		// A second delivery is possible if a publish landed mid-run;
		// anything beyond that means coalescing is broken.
		select {
		case <-q.Updates():
			t.Fatal("burst of writes was not coalesced")
		case <-time.After(100 * time.Millisecond):
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatch_CloseWithoutReaderIsSafe(t *testing.T) {
	bus := NewBus()
	q := Watch(context.Background(), bus, []Table{TableTodos}, func(context.Context) (int, error) {
		return 0, nil
	})

	// Close before the initial result is ever consumed.
	q.Close()
	q.Close() // idempotent

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-q.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel did not close after Close")
		}
	}
}

func TestWatch_ContextCancelStopsQuery(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	q := Watch(ctx, bus, []Table{TableTodos}, func(context.Context) (int, error) {
		return 0, nil
	})

	receive(t, q)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-q.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel did not close after context cancel")
		}
	}
}

func TestBus_PublishAfterUnsubscribeDoesNotBlock(t *testing.T) {
	bus := NewBus()
	q := Watch(context.Background(), bus, []Table{TableTodos}, func(context.Context) (int, error) {
		return 0, nil
	})
	receive(t, q)
	q.Close()

	done := make(chan struct{})
	go func() {
		bus.Publish(TableTodos)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after subscriber closed")
	}
}
