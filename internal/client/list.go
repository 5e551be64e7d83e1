package client

import (
	"sync"
)

// MutationState tracks where a cached list stands relative to the
// server. Renderers can use it to grey out rows or show a spinner.
type MutationState string

const (
	StateIdle        MutationState = "idle"
	StatePending     MutationState = "pending"
	StateCommitted   MutationState = "committed"
	StateRollingBack MutationState = "rolling-back"
)

// Identifiable is anything a List can cache. All entities expose their
// uuid through it.
type Identifiable interface {
	Identity() string
}

// List is a client-side cache with two update disciplines:
//
//   - deletes are optimistic: the item disappears immediately, and a
//     snapshot taken right before removal is restored if the server
//     rejects the call;
//   - creates and edits are pessimistic: the cache only changes after
//     the server confirms, so a failed create leaves nothing behind.
//
// A generation counter guards refreshes: a fetch that started before
// any later mutation or fetch is stale, and its result is dropped
// instead of clobbering newer state.
type List[T Identifiable] struct {
	mu         sync.Mutex
	items      []T
	state      MutationState
	generation uint64

	// snapshot taken immediately before an optimistic removal,
	// keyed by the removed item's id.
	snapshots map[string][]T
}

func NewList[T Identifiable]() *List[T] {
	return &List[T]{
		state:     StateIdle,
		snapshots: make(map[string][]T),
	}
}

func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) State() MutationState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// BeginFetch bumps the generation and returns a token the caller hands
// back to ApplyFetch once the response arrives.
func (l *List[T]) BeginFetch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	return l.generation
}

// ApplyFetch installs a fetched slice, unless a newer fetch or
// mutation has started since the token was issued. Returns whether the
// result was applied.
func (l *List[T]) ApplyFetch(token uint64, items []T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.generation {
		return false
	}
	l.items = items
	l.state = StateIdle
	return true
}

// Add prepends a server-confirmed item: newest first, like the feed it
// renders into. Pessimistic path: callers only invoke this after the
// create round-trips.
func (l *List[T]) Add(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.items = append([]T{item}, l.items...)
	l.state = StateCommitted
}

// Replace swaps in a server-confirmed version of an existing item.
// Unknown ids are ignored.
func (l *List[T]) Replace(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	for i := range l.items {
		if l.items[i].Identity() == item.Identity() {
			l.items[i] = item
			l.state = StateCommitted
			return
		}
	}
}

// RemoveOptimistic drops the item from the cache immediately and
// stashes the exact pre-delete slice under the removed id. The caller
// then fires the DELETE and settles with ConfirmRemove or
// RollbackRemove.
func (l *List[T]) RemoveOptimistic(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++

	snapshot := make([]T, len(l.items))
	copy(snapshot, l.items)
	l.snapshots[id] = snapshot

	kept := l.items[:0]
	for _, item := range l.items {
		if item.Identity() != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
	l.state = StatePending
}

// ConfirmRemove discards the snapshot after the server accepted the
// delete.
func (l *List[T]) ConfirmRemove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.snapshots, id)
	l.state = StateCommitted
}

// RollbackRemove restores the slice captured before the optimistic
// removal. The restore is exact: ordering and contents come back as
// they were, not re-derived from the current state.
func (l *List[T]) RollbackRemove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot, ok := l.snapshots[id]
	if !ok {
		return
	}
	delete(l.snapshots, id)

	l.state = StateRollingBack
	l.generation++
	l.items = snapshot
	l.state = StateIdle
}
