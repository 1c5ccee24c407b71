package field

import (
	"fmt"
	"strconv"
	"strings"
)

// String is a single-line text input. A blank buffer is an absent, empty
// value; validators distinguish that from a present string.
type String struct {
	base[string]
	placeholder string
	secret      bool
	multiline   bool
}

// StringOption configures a String field.
type StringOption func(*String)

// WithPlaceholder sets the hint text shown while the field is blank.
func WithPlaceholder(text string) StringOption {
	return func(f *String) {
		f.placeholder = text
	}
}

// WithMultiline renders the field as a multi-line text area.
func WithMultiline() StringOption {
	return func(f *String) {
		f.multiline = true
	}
}

// NewString constructs a text field. validate and defaultValue may be nil.
func NewString(validate Validator[string], defaultValue Supplier[string], options ...StringOption) *String {
	f := &String{base: base[string]{kind: KindString}}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	f.state = NewState(validate, defaultValue)
	return f
}

// NewPassword constructs a secret text field. It shares String's mechanics;
// only the kind tag and the secret flag differ.
func NewPassword(validate Validator[string], defaultValue Supplier[string], options ...StringOption) *String {
	f := NewString(validate, defaultValue, options...)
	f.kind = KindPassword
	f.secret = true
	return f
}

// Text returns the current buffer, or "" when absent.
func (f *String) Text() string {
	value, ok := f.state.Value()
	if !ok {
		return ""
	}
	return value
}

// SetText writes the buffer. An empty string clears the field.
func (f *String) SetText(text string) {
	if text == "" {
		f.state.Clear()
		return
	}
	f.state.Set(text)
}

// SetValue accepts a string; any other dynamic type is rejected.
func (f *String) SetValue(value any) error {
	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("field: %s expects string, got %T", f.kind, value)
	}
	f.SetText(text)
	return nil
}

func (f *String) Placeholder() string { return f.placeholder }
func (f *String) Secret() bool        { return f.secret }

// Multiline reports whether the field renders as a text area.
func (f *String) Multiline() bool { return f.multiline }

func (f *String) Widget() Widget { return f }

// PreferredHeight requests extra rows for multi-line inputs.
func (f *String) PreferredHeight() int {
	if f.multiline {
		return 80
	}
	return 0
}

// Integer is a whole-number input edited through a text buffer. The buffer is
// kept so a failed parse stays visible: the typed value is absent and
// invalid, but the field is not empty.
type Integer struct {
	base[int64]
	buffer      string
	placeholder string
}

// NewInteger constructs an integer field. validate and defaultValue may be
// nil.
func NewInteger(validate Validator[int64], defaultValue Supplier[int64]) *Integer {
	f := &Integer{base: base[int64]{kind: KindInteger}}
	f.state = NewState(validate, defaultValue)
	f.state.OnValidated(f.syncBuffer)
	f.syncBuffer()
	return f
}

// Text returns the raw buffer, parse failures included.
func (f *Integer) Text() string { return f.buffer }

// syncBuffer follows state writes that bypass SetText (Reset, direct state
// or cell writes) so the displayed text never desyncs from the value. A
// failed parse is absent but not empty; its raw text stays visible.
func (f *Integer) syncBuffer() {
	value, ok := f.state.Value()
	switch {
	case ok:
		f.buffer = strconv.FormatInt(value, 10)
	case f.state.Empty():
		f.buffer = ""
	}
}

// SetText parses the buffer. Blank clears; a parse failure marks the field
// invalid with a conversion message while keeping the buffer.
func (f *Integer) SetText(text string) {
	f.buffer = text
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		f.state.Clear()
		return
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		f.state.Invalidate(fmt.Sprintf("%q is not a valid integer", trimmed))
		return
	}
	f.state.Set(parsed)
}

// Set writes a typed value directly; the buffer follows.
func (f *Integer) Set(value int64) {
	f.state.Set(value)
}

// SetValue accepts int, int64, or a numeric string.
func (f *Integer) SetValue(value any) error {
	switch v := value.(type) {
	case int:
		f.Set(int64(v))
	case int64:
		f.Set(v)
	case string:
		f.SetText(v)
	default:
		return fmt.Errorf("field: %s expects integer, got %T", f.kind, value)
	}
	return nil
}

func (f *Integer) Placeholder() string { return f.placeholder }
func (f *Integer) Secret() bool        { return false }
func (f *Integer) Widget() Widget      { return f }

// Decimal is a floating-point input edited through a text buffer, with the
// same blank/parse-failure split as Integer.
type Decimal struct {
	base[float64]
	buffer      string
	placeholder string
}

// NewDecimal constructs a decimal field. validate and defaultValue may be
// nil.
func NewDecimal(validate Validator[float64], defaultValue Supplier[float64]) *Decimal {
	f := &Decimal{base: base[float64]{kind: KindDecimal}}
	f.state = NewState(validate, defaultValue)
	f.state.OnValidated(f.syncBuffer)
	f.syncBuffer()
	return f
}

// Text returns the raw buffer.
func (f *Decimal) Text() string { return f.buffer }

// syncBuffer mirrors Integer.syncBuffer for the float buffer.
func (f *Decimal) syncBuffer() {
	value, ok := f.state.Value()
	switch {
	case ok:
		f.buffer = strconv.FormatFloat(value, 'f', -1, 64)
	case f.state.Empty():
		f.buffer = ""
	}
}

// SetText parses the buffer. Blank clears; a parse failure marks the field
// invalid without making it empty.
func (f *Decimal) SetText(text string) {
	f.buffer = text
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		f.state.Clear()
		return
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		f.state.Invalidate(fmt.Sprintf("%q is not a valid number", trimmed))
		return
	}
	f.state.Set(parsed)
}

// Set writes a typed value directly; the buffer follows.
func (f *Decimal) Set(value float64) {
	f.state.Set(value)
}

// SetValue accepts float64, int, int64, or a numeric string.
func (f *Decimal) SetValue(value any) error {
	switch v := value.(type) {
	case float64:
		f.Set(v)
	case int:
		f.Set(float64(v))
	case int64:
		f.Set(float64(v))
	case string:
		f.SetText(v)
	default:
		return fmt.Errorf("field: %s expects number, got %T", f.kind, value)
	}
	return nil
}

func (f *Decimal) Placeholder() string { return f.placeholder }
func (f *Decimal) Secret() bool        { return false }
func (f *Decimal) Widget() Widget      { return f }

// CheckBox is a two-state input. It always carries a present value, so it is
// never empty and never absent.
type CheckBox struct {
	base[bool]
}

// NewCheckBox constructs a checkbox seeded from the default supplier, or
// unchecked when no default exists.
func NewCheckBox(validate Validator[bool], defaultValue Supplier[bool]) *CheckBox {
	f := &CheckBox{base: base[bool]{kind: KindBoolean}}
	f.state = NewState(validate, defaultValue)
	if _, ok := f.state.Value(); !ok {
		f.state.Set(false)
	}
	return f
}

func (f *CheckBox) Checked() bool {
	value, _ := f.state.Value()
	return value
}

func (f *CheckBox) SetChecked(on bool) { f.state.Set(on) }

// Reset restores the default, falling back to unchecked so the checkbox
// never becomes absent.
func (f *CheckBox) Reset() {
	f.state.Reset()
	if _, ok := f.state.Value(); !ok {
		f.state.Set(false)
	}
}

// SetValue accepts a bool.
func (f *CheckBox) SetValue(value any) error {
	on, ok := value.(bool)
	if !ok {
		return fmt.Errorf("field: %s expects bool, got %T", f.kind, value)
	}
	f.SetChecked(on)
	return nil
}

func (f *CheckBox) Widget() Widget { return f }
