// Package livequery re-runs registered read queries whenever a write
// touches one of the tables they depend on, pushing fresh results to
// subscribers. Writes publish table-scoped change events; no manual
// invalidation is needed.
package livequery

import (
	"context"
	"sync"
)

// Table identifies one of the persisted tables for change scoping.
type Table string

const (
	TableCategories  Table = "categories"
	TableTodos       Table = "todos"
	TableSubtasks    Table = "subtasks"
	TableGroups      Table = "groups"
	TableTodoTags    Table = "todo_tags"
	TablePreferences Table = "user_preferences"
)

// Bus fans table change events out to active subscriptions.
type Bus struct {
	mu   sync.Mutex
	subs map[int]*subscription
	next int
}

type subscription struct {
	tables map[Table]struct{}
	// dirty has capacity 1 so bursts of writes coalesce into a
	// single re-run.
	dirty chan struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]*subscription)}
}

// Publish notifies every subscription watching any of the given tables.
func (b *Bus) Publish(tables ...Table) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		for _, table := range tables {
			if _, ok := sub.tables[table]; ok {
				select {
				case sub.dirty <- struct{}{}:
				default:
				}
				break
			}
		}
	}
}

func (b *Bus) subscribe(tables []Table) (int, *subscription) {
	sub := &subscription{
		tables: make(map[Table]struct{}, len(tables)),
		dirty:  make(chan struct{}, 1),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = sub
	return id, sub
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Result carries one query execution outcome to a watcher.
type Result[T any] struct {
	Value T
	Err   error
}

// Query is a live read: it re-runs its query function after every
// write to a dependent table and delivers each result on Updates.
type Query[T any] struct {
	cancel  context.CancelFunc
	updates chan Result[T]
}

// Watch runs the query immediately and again after each write touching
// one of tables. It stops when ctx is cancelled or Close is called;
// stopping while a result delivery is pending is safe.
func Watch[T any](ctx context.Context, bus *Bus, tables []Table, run func(context.Context) (T, error)) *Query[T] {
	ctx, cancel := context.WithCancel(ctx)
	q := &Query[T]{
		cancel:  cancel,
		updates: make(chan Result[T]),
	}

	id, sub := bus.subscribe(tables)
	go func() {
		defer close(q.updates)
		defer bus.unsubscribe(id)
		for {
			value, err := run(ctx)
			select {
			case q.updates <- Result[T]{Value: value, Err: err}:
			case <-ctx.Done():
				return
			}
			select {
			case <-sub.dirty:
			case <-ctx.Done():
				return
			}
		}
	}()
	return q
}

// Updates delivers query results, starting with the initial read. The
// channel closes once the query stops.
func (q *Query[T]) Updates() <-chan Result[T] {
	return q.updates
}

// Close stops the query. Idempotent.
func (q *Query[T]) Close() {
	q.cancel()
}
