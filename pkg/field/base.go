package field

// base carries the State delegation shared by every concrete field type.
// Concrete types embed it and add their own SetValue and widget surface.
type base[T any] struct {
	kind  Kind
	state *State[T]
}

func (b *base[T]) Kind() Kind       { return b.kind }
func (b *base[T]) Valid() bool      { return b.state.Valid() }
func (b *base[T]) Required() bool   { return b.state.Required() }
func (b *base[T]) Empty() bool      { return b.state.Empty() }
func (b *base[T]) Error() string    { return b.state.Error() }
func (b *base[T]) Reset()           { b.state.Reset() }

func (b *base[T]) Value() (any, bool) {
	value, ok := b.state.Value()
	if !ok {
		return nil, false
	}
	return value, true
}

func (b *base[T]) OnValidated(fn func()) (unsubscribe func()) {
	return b.state.OnValidated(fn)
}

func (b *base[T]) OverrideError(message string) (restore func()) {
	return b.state.OverrideError(message)
}

// State exposes the typed state machine for callers that hold the concrete
// field type.
func (b *base[T]) State() *State[T] { return b.state }
