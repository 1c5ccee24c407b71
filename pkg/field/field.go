package field

// Kind is the declared value-type tag carried by every field descriptor so
// callers and renderers can introspect a form without reflection.
type Kind string

const (
	KindString      Kind = "string"
	KindPassword    Kind = "password"
	KindInteger     Kind = "integer"
	KindDecimal     Kind = "decimal"
	KindBoolean     Kind = "boolean"
	KindChoice      Kind = "choice"
	KindMultiChoice Kind = "multi-choice"
	KindSlider      Kind = "slider"
	KindFile        Kind = "file"
	KindFolder      Kind = "folder"
	KindConstant    Kind = "constant"
	KindHidden      Kind = "hidden"
	KindNode        Kind = "node"
)

// Field is the type-erased capability contract. Every concrete widget type
// implements it by delegating to its State; the form layer stores fields
// behind this interface, tagged with their Kind.
type Field interface {
	// Kind reports the declared value-type tag.
	Kind() Kind
	// Valid reports whether the last validation pass accepted the value.
	Valid() bool
	// Required reports the flag probed at construction time.
	Required() bool
	// Empty reports whether the raw input is blank. A field can be non-empty
	// yet absent (a parse failure); the two states render differently.
	Empty() bool
	// Error returns the message produced by the last validation pass, or "".
	Error() string
	// Value returns the current typed value. The boolean is false when the
	// value is absent (blank input or conversion failure).
	Value() (any, bool)
	// SetValue writes a value of the field's declared type. A value of the
	// wrong dynamic type is rejected with an error.
	SetValue(value any) error
	// Reset restores the value captured by the default supplier.
	Reset()
	// OnValidated subscribes to validation transitions. Listeners fire
	// synchronously in registration order; the returned function removes the
	// listener.
	OnValidated(fn func()) (unsubscribe func())
	// OverrideError temporarily replaces the field's validity and error text
	// for display purposes. The returned function restores the captured
	// originals exactly. Cross-field validation relies on this being
	// non-persistent.
	OverrideError(message string) (restore func())
	// Widget returns the field's visual handle for embedding and decoration.
	Widget() Widget
}

// Widget is the visual handle a field exposes. Renderers type-switch on the
// capability interfaces below rather than on concrete types, so generic
// fields (choice lists over arbitrary value types) stay reachable.
type Widget interface {
	Kind() Kind
}

// TextWidget is satisfied by widgets edited through a raw text buffer.
type TextWidget interface {
	Widget
	Text() string
	SetText(text string)
	Placeholder() string
	Secret() bool
}

// BoolWidget is satisfied by two-state widgets.
type BoolWidget interface {
	Widget
	Checked() bool
	SetChecked(on bool)
}

// ChoiceWidget is satisfied by single-selection widgets regardless of their
// option value type.
type ChoiceWidget interface {
	Widget
	OptionLabels() []string
	SelectedIndex() int
	SelectIndex(index int) error
}

// MultiChoiceWidget is satisfied by multi-selection widgets.
type MultiChoiceWidget interface {
	Widget
	OptionLabels() []string
	SelectedIndices() []int
	SelectIndices(indices []int) error
}

// RangeWidget is satisfied by bounded numeric widgets.
type RangeWidget interface {
	Widget
	Bounds() (min, max, step float64)
	Position() float64
	SetPosition(value float64)
}

// PathWidget is satisfied by file and folder choosers. Browse performs the
// synchronous, user-triggered chooser interaction; it is never part of
// validation.
type PathWidget interface {
	Widget
	Path() string
	SetPath(path string)
	Browse() error
}

// HeightHinter lets a widget request a taller row than the layout minimum.
type HeightHinter interface {
	PreferredHeight() int
}
