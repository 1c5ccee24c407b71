package observe

import "sort"

// Value is a single observable cell. Writes notify subscribers synchronously,
// in registration order, on the caller's goroutine. It is not safe for
// concurrent use; form assembly and interaction happen on one goroutine.
type Value[T any] struct {
	current T
	subs    map[int]func(old, next T)
	nextID  int
	// guards against re-entrant notification loops when a listener writes
	// back into the cell it observes
	notifying bool
	pending   *T
}

// NewValue constructs a cell seeded with the initial value. No notification
// fires for the seed.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.current
}

// Set replaces the value and notifies every subscriber. A write performed by
// a listener during notification is deferred until the current round
// completes, keeping delivery order consistent.
func (v *Value[T]) Set(next T) {
	if v.notifying {
		pending := next
		v.pending = &pending
		return
	}

	old := v.current
	v.current = next

	v.notifying = true
	for _, id := range v.subscriberIDs() {
		if fn, ok := v.subs[id]; ok {
			fn(old, next)
		}
	}
	v.notifying = false

	if v.pending != nil {
		deferred := *v.pending
		v.pending = nil
		v.Set(deferred)
	}
}

// Subscribe registers a listener invoked on every Set. The returned function
// removes the listener; calling it more than once is harmless.
func (v *Value[T]) Subscribe(fn func(old, next T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	if v.subs == nil {
		v.subs = make(map[int]func(old, next T))
	}
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	return func() {
		delete(v.subs, id)
	}
}

// Subscribers reports how many listeners are attached. Used by tests to
// assert rebuilds do not leak subscriptions.
func (v *Value[T]) Subscribers() int {
	return len(v.subs)
}

func (v *Value[T]) subscriberIDs() []int {
	ids := make([]int, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
