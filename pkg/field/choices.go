package field

import "fmt"

// ChoicePresentation hints how a single-choice field should be drawn.
type ChoicePresentation string

const (
	// PresentDropdown draws a combo box.
	PresentDropdown ChoicePresentation = "dropdown"
	// PresentRadio draws one radio button per option.
	PresentRadio ChoicePresentation = "radio"
)

// ComboBox is a single-selection field over an arbitrary option type.
// Options are labelled through a caller-supplied function; selection state is
// tracked by index so option values need not be comparable.
type ComboBox[T any] struct {
	base[T]
	options      []T
	labelFn      func(T) string
	selected     int
	presentation ChoicePresentation
}

// NewComboBox constructs a dropdown choice field. labelFn must not be nil;
// validate and defaultValue may be.
func NewComboBox[T any](options []T, labelFn func(T) string, validate Validator[T], defaultValue Supplier[T]) *ComboBox[T] {
	f := &ComboBox[T]{}
	initComboBox(f, options, labelFn, validate, defaultValue)
	return f
}

// initComboBox fills a caller-allocated ComboBox so wrapper types can embed
// one without copying it after the state subscription is attached.
func initComboBox[T any](f *ComboBox[T], options []T, labelFn func(T) string, validate Validator[T], defaultValue Supplier[T]) {
	f.base = base[T]{kind: KindChoice}
	f.options = append([]T(nil), options...)
	f.labelFn = labelFn
	f.selected = -1
	f.presentation = PresentDropdown
	f.state = NewState(validate, defaultValue)
	f.state.OnValidated(f.syncSelection)
	f.syncSelection()
}

// NewRadioList constructs the same field drawn as a radio group.
func NewRadioList[T any](options []T, labelFn func(T) string, validate Validator[T], defaultValue Supplier[T]) *ComboBox[T] {
	f := NewComboBox(options, labelFn, validate, defaultValue)
	f.presentation = PresentRadio
	return f
}

// Options returns a copy of the option values.
func (f *ComboBox[T]) Options() []T {
	return append([]T(nil), f.options...)
}

// OptionLabels returns the display label of every option, in order.
func (f *ComboBox[T]) OptionLabels() []string {
	labels := make([]string, len(f.options))
	for i, option := range f.options {
		labels[i] = f.labelFn(option)
	}
	return labels
}

// SelectedIndex returns the selected option index, or -1.
func (f *ComboBox[T]) SelectedIndex() int { return f.selected }

// SelectIndex selects an option by position and writes its value through the
// state. An out-of-range index is rejected.
func (f *ComboBox[T]) SelectIndex(index int) error {
	if index < 0 || index >= len(f.options) {
		return fmt.Errorf("field: choice index %d out of range [0,%d)", index, len(f.options))
	}
	f.selected = index
	f.state.Set(f.options[index])
	return nil
}

// ClearSelection removes the selection, leaving the field absent and empty.
func (f *ComboBox[T]) ClearSelection() {
	f.selected = -1
	f.state.Clear()
}

// SetValue accepts a value of the option type. When it matches an option
// label-wise, the selection index follows; otherwise the value is stored
// without a selection.
func (f *ComboBox[T]) SetValue(value any) error {
	typed, ok := value.(T)
	if !ok {
		return fmt.Errorf("field: %s got incompatible value %T", f.kind, value)
	}
	f.selected = f.indexOf(typed)
	f.state.Set(typed)
	return nil
}

// Presentation reports how the field should be drawn.
func (f *ComboBox[T]) Presentation() ChoicePresentation { return f.presentation }

func (f *ComboBox[T]) Widget() Widget { return f }

// syncSelection follows state writes that bypass SelectIndex (Reset, direct
// state or cell writes). A selection already matching the value label-wise
// is kept so duplicate labels do not snap to the first occurrence.
func (f *ComboBox[T]) syncSelection() {
	value, ok := f.state.Value()
	if !ok {
		f.selected = -1
		return
	}
	if f.labelFn != nil && f.selected >= 0 && f.selected < len(f.options) &&
		f.labelFn(f.options[f.selected]) == f.labelFn(value) {
		return
	}
	f.selected = f.indexOf(value)
}

func (f *ComboBox[T]) indexOf(value T) int {
	if f.labelFn == nil {
		return -1
	}
	label := f.labelFn(value)
	for i, option := range f.options {
		if f.labelFn(option) == label {
			return i
		}
	}
	return -1
}

// Extensible is a combo box whose option list can be edited at runtime
// (add/update/remove), mirroring extensible combo widgets.
type Extensible[T any] struct {
	ComboBox[T]
}

// NewExtensible constructs an editable-option combo box.
func NewExtensible[T any](options []T, labelFn func(T) string, validate Validator[T], defaultValue Supplier[T]) *Extensible[T] {
	f := &Extensible[T]{}
	initComboBox(&f.ComboBox, options, labelFn, validate, defaultValue)
	return f
}

// AddOption appends an option and returns its index.
func (f *Extensible[T]) AddOption(value T) int {
	f.options = append(f.options, value)
	return len(f.options) - 1
}

// UpdateOption replaces the option at index. Updating the selected option
// re-writes the selection through the state.
func (f *Extensible[T]) UpdateOption(index int, value T) error {
	if index < 0 || index >= len(f.options) {
		return fmt.Errorf("field: option index %d out of range [0,%d)", index, len(f.options))
	}
	f.options[index] = value
	if f.selected == index {
		f.state.Set(value)
	}
	return nil
}

// RemoveOption deletes the option at index. Removing the selected option
// clears the selection; selections past the removed index shift down.
func (f *Extensible[T]) RemoveOption(index int) error {
	if index < 0 || index >= len(f.options) {
		return fmt.Errorf("field: option index %d out of range [0,%d)", index, len(f.options))
	}
	f.options = append(f.options[:index], f.options[index+1:]...)
	switch {
	case f.selected == index:
		f.ClearSelection()
	case f.selected > index:
		f.selected--
	}
	return nil
}

func (f *Extensible[T]) Widget() Widget { return f }

// OptionsGroup is a multi-selection panel over an arbitrary option type. Its
// value is the slice of selected options in option order.
type OptionsGroup[T any] struct {
	base[[]T]
	options  []T
	labelFn  func(T) string
	selected []int
}

// NewOptionsGroup constructs a multi-select field. labelFn must not be nil.
func NewOptionsGroup[T any](options []T, labelFn func(T) string, validate Validator[[]T], defaultValue Supplier[[]T]) *OptionsGroup[T] {
	f := &OptionsGroup[T]{
		base:    base[[]T]{kind: KindMultiChoice},
		options: append([]T(nil), options...),
		labelFn: labelFn,
	}
	f.state = NewState(validate, defaultValue)
	f.state.OnValidated(f.syncSelection)
	f.syncSelection()
	return f
}

// syncSelection follows state writes that bypass SelectIndices (Reset,
// direct state or cell writes).
func (f *OptionsGroup[T]) syncSelection() {
	values, ok := f.state.Value()
	if !ok {
		f.selected = nil
		return
	}
	f.selected = f.indicesOf(values)
}

// OptionLabels returns the display label of every option, in order.
func (f *OptionsGroup[T]) OptionLabels() []string {
	labels := make([]string, len(f.options))
	for i, option := range f.options {
		labels[i] = f.labelFn(option)
	}
	return labels
}

// SelectedIndices returns the selected option positions in option order.
func (f *OptionsGroup[T]) SelectedIndices() []int {
	return append([]int(nil), f.selected...)
}

// SelectIndices replaces the selection. An empty selection clears the field;
// out-of-range indices are rejected before any state changes.
func (f *OptionsGroup[T]) SelectIndices(indices []int) error {
	for _, index := range indices {
		if index < 0 || index >= len(f.options) {
			return fmt.Errorf("field: option index %d out of range [0,%d)", index, len(f.options))
		}
	}
	if len(indices) == 0 {
		f.selected = nil
		f.state.Clear()
		return nil
	}
	seen := make(map[int]struct{}, len(indices))
	ordered := make([]int, 0, len(indices))
	for i := range f.options {
		for _, index := range indices {
			if index == i {
				if _, dup := seen[i]; !dup {
					seen[i] = struct{}{}
					ordered = append(ordered, i)
				}
			}
		}
	}
	values := make([]T, len(ordered))
	for i, index := range ordered {
		values[i] = f.options[index]
	}
	f.selected = ordered
	f.state.Set(values)
	return nil
}

// SetValue accepts a []T selection.
func (f *OptionsGroup[T]) SetValue(value any) error {
	values, ok := value.([]T)
	if !ok {
		return fmt.Errorf("field: %s got incompatible value %T", f.kind, value)
	}
	if len(values) == 0 {
		f.selected = nil
		f.state.Clear()
		return nil
	}
	f.selected = f.indicesOf(values)
	f.state.Set(append([]T(nil), values...))
	return nil
}

func (f *OptionsGroup[T]) Widget() Widget { return f }

// PreferredHeight grows with the option count so the panel never clips.
func (f *OptionsGroup[T]) PreferredHeight() int {
	return 24 * len(f.options)
}

func (f *OptionsGroup[T]) indicesOf(values []T) []int {
	if f.labelFn == nil {
		return nil
	}
	wanted := make(map[string]struct{}, len(values))
	for _, value := range values {
		wanted[f.labelFn(value)] = struct{}{}
	}
	var indices []int
	for i, option := range f.options {
		if _, ok := wanted[f.labelFn(option)]; ok {
			indices = append(indices, i)
		}
	}
	return indices
}

// Slider is a bounded numeric field. Writes clamp to [min,max] and snap to
// the step when one is set.
type Slider struct {
	base[float64]
	min, max, step float64
}

// NewSlider constructs a slider. max must exceed min; step zero disables
// snapping.
func NewSlider(min, max, step float64, validate Validator[float64], defaultValue Supplier[float64]) *Slider {
	f := &Slider{
		base: base[float64]{kind: KindSlider},
		min:  min,
		max:  max,
		step: step,
	}
	f.state = NewState(validate, defaultValue)
	if value, ok := f.state.Value(); ok {
		f.SetPosition(value)
	}
	return f
}

// Bounds returns min, max, and step.
func (f *Slider) Bounds() (min, max, step float64) {
	return f.min, f.max, f.step
}

// Position returns the current value, or min when absent.
func (f *Slider) Position() float64 {
	value, ok := f.state.Value()
	if !ok {
		return f.min
	}
	return value
}

// SetPosition clamps, snaps, and writes the value.
func (f *Slider) SetPosition(value float64) {
	if value < f.min {
		value = f.min
	}
	if value > f.max {
		value = f.max
	}
	if f.step > 0 {
		steps := float64(int64((value-f.min)/f.step + 0.5))
		value = f.min + steps*f.step
		if value > f.max {
			value = f.max
		}
	}
	f.state.Set(value)
}

// SetValue accepts float64, int, or int64.
func (f *Slider) SetValue(value any) error {
	switch v := value.(type) {
	case float64:
		f.SetPosition(v)
	case int:
		f.SetPosition(float64(v))
	case int64:
		f.SetPosition(float64(v))
	default:
		return fmt.Errorf("field: %s expects number, got %T", f.kind, value)
	}
	return nil
}

func (f *Slider) Widget() Widget { return f }
