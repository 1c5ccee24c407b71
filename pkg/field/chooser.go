package field

import (
	"errors"
	"fmt"
)

// ErrNoChooser is returned by Browse when no chooser function is configured.
var ErrNoChooser = errors.New("field: no chooser configured")

// ErrChooserCancelled signals that the user dismissed the chooser without
// picking anything; the field keeps its current value.
var ErrChooserCancelled = errors.New("field: chooser cancelled")

// Chooser performs the modal pick interaction for a path field. It runs
// synchronously on the event loop as a user-triggered operation, outside
// validation. Return ErrChooserCancelled to leave the field untouched.
type Chooser func() (string, error)

// Path is a file or folder chooser backed by a plain string value.
type Path struct {
	base[string]
	folder  bool
	chooser Chooser
}

// NewFile constructs a file chooser field. chooser may be nil when paths are
// only ever typed or set programmatically.
func NewFile(chooser Chooser, validate Validator[string], defaultValue Supplier[string]) *Path {
	f := &Path{base: base[string]{kind: KindFile}, chooser: chooser}
	f.state = NewState(validate, defaultValue)
	return f
}

// NewFolder constructs a directory chooser field.
func NewFolder(chooser Chooser, validate Validator[string], defaultValue Supplier[string]) *Path {
	f := NewFile(chooser, validate, defaultValue)
	f.kind = KindFolder
	f.folder = true
	return f
}

// Folder reports whether the field selects directories.
func (f *Path) Folder() bool { return f.folder }

// Path returns the current path, or "" when absent.
func (f *Path) Path() string {
	value, ok := f.state.Value()
	if !ok {
		return ""
	}
	return value
}

// SetPath writes the path. An empty string clears the field.
func (f *Path) SetPath(path string) {
	if path == "" {
		f.state.Clear()
		return
	}
	f.state.Set(path)
}

// Browse runs the configured chooser and writes the picked path. A cancelled
// chooser leaves the field untouched and returns nil.
func (f *Path) Browse() error {
	if f.chooser == nil {
		return ErrNoChooser
	}
	picked, err := f.chooser()
	if err != nil {
		if errors.Is(err, ErrChooserCancelled) {
			return nil
		}
		return fmt.Errorf("field: chooser: %w", err)
	}
	f.SetPath(picked)
	return nil
}

// SetValue accepts a string path.
func (f *Path) SetValue(value any) error {
	path, ok := value.(string)
	if !ok {
		return fmt.Errorf("field: %s expects string, got %T", f.kind, value)
	}
	f.SetPath(path)
	return nil
}

func (f *Path) Widget() Widget { return f }

// Node wraps an opaque embedded widget behind the field contract. Its value
// is whatever the caller stores; validation runs against it like any other
// field.
type Node struct {
	base[any]
	widget Widget
}

// NewNode constructs a field around an arbitrary widget handle. widget must
// not be nil; validate and defaultValue may be.
func NewNode(widget Widget, validate Validator[any], defaultValue Supplier[any]) *Node {
	f := &Node{base: base[any]{kind: KindNode}, widget: widget}
	f.state = NewState(validate, defaultValue)
	return f
}

// SetValue stores any value.
func (f *Node) SetValue(value any) error {
	if value == nil {
		f.state.Clear()
		return nil
	}
	f.state.Set(value)
	return nil
}

// Widget returns the embedded handle, not the field itself.
func (f *Node) Widget() Widget { return f.widget }

// Static is the field behind constant and hidden descriptors: a fixed or
// supplier-driven value with no user interaction. Constants reject writes;
// hidden fields accept them.
type Static struct {
	base[any]
	locked bool
}

// ErrConstant is returned when a write targets a constant field.
var ErrConstant = errors.New("field: constant value cannot be written")

// NewConstant constructs a rendered-but-disabled field holding value.
func NewConstant(value any) *Static {
	f := &Static{base: base[any]{kind: KindConstant}, locked: true}
	f.state = NewState[any](nil, func() (any, bool) { return value, value != nil })
	return f
}

// NewHidden constructs an unrendered field whose value still appears in the
// form result. supplier may return false to leave the value absent.
func NewHidden(supplier Supplier[any]) *Static {
	f := &Static{base: base[any]{kind: KindHidden}}
	f.state = NewState(nil, supplier)
	return f
}

// SetValue writes through unless the field is a constant.
func (f *Static) SetValue(value any) error {
	if f.locked {
		return ErrConstant
	}
	if value == nil {
		f.state.Clear()
		return nil
	}
	f.state.Set(value)
	return nil
}

func (f *Static) Widget() Widget { return f }
