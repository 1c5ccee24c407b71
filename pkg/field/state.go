package field

import (
	"errors"
	"sort"

	"github.com/goliatone/go-formkit/pkg/observe"
)

// ErrInvalidValue is the generic error a field reports when its validation
// function panics. The panic never escapes to the caller.
var ErrInvalidValue = errors.New("field: invalid value")

// Validator checks a typed value. present is false when the input is blank or
// a conversion failed; a nil return means valid. Returning an error for an
// absent value marks the field required.
type Validator[T any] func(value T, present bool) error

// Supplier produces a default value. The boolean reports whether a default
// exists at all.
type Supplier[T any] func() (T, bool)

// State is the validation state machine backing one field. It owns the value
// cell, the derived validity and error text, and the required flag. Validity
// and error text are only ever written by a validation pass; callers cannot
// mutate them independently (OverrideError is an explicit, restorable
// exception used for cross-field display).
type State[T any] struct {
	cell         *observe.Value[T]
	validate     Validator[T]
	defaultValue Supplier[T]

	present  bool
	empty    bool
	valid    bool
	errText  string
	required bool

	listeners map[int]func()
	nextID    int

	internalWrite bool
}

// NewState builds a State, probes the validation function once with an absent
// value to fix the required flag, then applies the default supplier. The
// required flag stays fixed for the State's lifetime even if the validator is
// swapped later; ReprobeRequired re-runs the probe explicitly.
func NewState[T any](validate Validator[T], defaultValue Supplier[T]) *State[T] {
	var zero T
	s := &State[T]{
		cell:         observe.NewValue(zero),
		validate:     validate,
		defaultValue: defaultValue,
	}
	s.required = s.runValidator(zero, false) != nil

	s.cell.Subscribe(func(_, _ T) {
		if s.internalWrite {
			return
		}
		s.present = true
		s.empty = false
		s.revalidate()
	})

	s.Reset()
	return s
}

// Cell returns the live value cell. Writes through it behave exactly like
// Set: the value becomes present and a validation pass runs.
func (s *State[T]) Cell() *observe.Value[T] {
	return s.cell
}

// Set writes a present value and re-validates.
func (s *State[T]) Set(value T) {
	s.cell.Set(value)
}

// Clear marks the value absent and empty (a blank input) and re-validates.
func (s *State[T]) Clear() {
	var zero T
	s.setSilently(zero)
	s.present = false
	s.empty = true
	s.revalidate()
}

// Invalidate marks the value absent with a conversion failure: not empty,
// invalid, carrying the parse error message. The validation function is not
// consulted; there is no typed value to hand it.
func (s *State[T]) Invalidate(message string) {
	var zero T
	s.setSilently(zero)
	s.present = false
	s.empty = false
	s.valid = false
	if message == "" {
		message = ErrInvalidValue.Error()
	}
	s.errText = message
	s.notifyValidated()
}

// Value returns the current value; the boolean is false when absent.
func (s *State[T]) Value() (T, bool) {
	return s.cell.Get(), s.present
}

// Valid reports the outcome of the last validation pass.
func (s *State[T]) Valid() bool { return s.valid }

// Error returns the message from the last validation pass, or "".
func (s *State[T]) Error() string { return s.errText }

// Required reports the flag fixed at construction (or the last reprobe).
func (s *State[T]) Required() bool { return s.required }

// Empty reports whether the input is blank. A parse failure is absent but
// not empty; markers render the two differently.
func (s *State[T]) Empty() bool { return s.empty }

// Reset restores the default-supplier value, or clears when no default
// exists. Prior edits are discarded every time.
func (s *State[T]) Reset() {
	if s.defaultValue != nil {
		if value, ok := s.defaultValue(); ok {
			s.Set(value)
			return
		}
	}
	s.Clear()
}

// SetValidator swaps the validation function and re-validates the current
// value. The required flag is deliberately left untouched; call
// ReprobeRequired when the new function should redefine it.
func (s *State[T]) SetValidator(validate Validator[T]) {
	s.validate = validate
	s.revalidate()
}

// ReprobeRequired re-runs the absent-value probe against the current
// validation function.
func (s *State[T]) ReprobeRequired() {
	var zero T
	s.required = s.runValidator(zero, false) != nil
}

// OnValidated subscribes to validation transitions. Listeners run
// synchronously, in registration order, on every pass.
func (s *State[T]) OnValidated(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	if s.listeners == nil {
		s.listeners = make(map[int]func())
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

// Listeners reports the number of attached validation listeners. Layout
// rebuild tests use it to prove subscriptions do not leak.
func (s *State[T]) Listeners() int {
	return len(s.listeners)
}

// OverrideError captures the current validity and error text, replaces them
// with an invalid state carrying message, and returns a function restoring
// the captured originals exactly. The override is display-only and must be
// restored by the caller; nothing else writes the captured fields back.
func (s *State[T]) OverrideError(message string) (restore func()) {
	savedValid, savedText := s.valid, s.errText
	s.valid = false
	s.errText = message
	s.notifyValidated()
	return func() {
		s.valid = savedValid
		s.errText = savedText
		s.notifyValidated()
	}
}

func (s *State[T]) revalidate() {
	err := s.runValidator(s.cell.Get(), s.present)
	s.valid = err == nil
	if err != nil {
		s.errText = err.Error()
	} else {
		s.errText = ""
	}
	s.notifyValidated()
}

func (s *State[T]) runValidator(value T, present bool) (err error) {
	if s.validate == nil {
		return nil
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			err = ErrInvalidValue
		}
	}()
	return s.validate(value, present)
}

func (s *State[T]) setSilently(value T) {
	s.internalWrite = true
	s.cell.Set(value)
	s.internalWrite = false
}

func (s *State[T]) notifyValidated() {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn()
		}
	}
}
