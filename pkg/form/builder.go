package form

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/symbols"
)

// LabelPlacement selects where field labels sit relative to their controls.
type LabelPlacement string

const (
	// PlacementBefore puts the label to the left of the control; every form
	// column spans three grid cells (label, control, marker).
	PlacementBefore LabelPlacement = "before"
	// PlacementAbove puts labels on their own sub-row over the controls.
	PlacementAbove LabelPlacement = "above"
)

// CrossValidator inspects the whole result mapping and returns error
// messages keyed by field id. An empty map means the page is consistent.
type CrossValidator func(values map[string]any) map[string]string

type rowKind int

const (
	rowField rowKind = iota
	rowSection
	rowText
	rowSpacer
)

// Descriptor is one entry in the form's ordered field list.
type Descriptor struct {
	kind rowKind

	// ID is unique within the form; anonymous ids are synthesized and never
	// appear in the result mapping.
	ID        string
	anonymous bool

	Label    string
	Type     field.Kind
	Field    field.Field
	Visible  bool
	Disabled bool

	// SpaceBefore inserts a blank row of this height before the field and
	// forces a new logical row.
	SpaceBefore int

	// Section/text/spacer rows.
	Level  int
	Text   string
	Height int
}

// IsField reports whether the descriptor holds a field rather than a
// section, text, or spacer row.
func (d Descriptor) IsField() bool { return d.kind == rowField }

// IsSection reports whether the descriptor is a heading row.
func (d Descriptor) IsSection() bool { return d.kind == rowSection }

// IsText reports whether the descriptor is a plain text row.
func (d Descriptor) IsText() bool { return d.kind == rowText }

// IsSpacer reports whether the descriptor is a blank spacing row.
func (d Descriptor) IsSpacer() bool { return d.kind == rowSpacer }

// Anonymous reports whether the field id was synthesized; anonymous fields
// never appear in the result mapping.
func (d Descriptor) Anonymous() bool { return d.anonymous }

const defaultMinRowHeight = 28

// Builder accumulates descriptors and layout configuration. It is not safe
// for concurrent use; assemble the form from one goroutine, then Build.
//
// The first failure (duplicate id, bad column count) sticks: every later
// call is a no-op and Build returns the recorded error, leaving no partial
// state behind for the rejected addition.
type Builder struct {
	descriptors  []Descriptor
	ids          map[string]struct{}
	anonSeq      int
	columns      int
	placement    LabelPlacement
	minRowHeight int
	glyphs       symbols.Set
	styles       symbols.StyleTable
	cross        CrossValidator
	err          error
}

// New constructs an empty Builder with a single column, labels before
// controls, and the stock glyph and style tables.
func New() *Builder {
	return &Builder{
		ids:          make(map[string]struct{}),
		columns:      1,
		placement:    PlacementBefore,
		minRowHeight: defaultMinRowHeight,
		glyphs:       symbols.Default(),
		styles:       symbols.DefaultStyles(),
	}
}

// Err returns the sticky build error, if any.
func (b *Builder) Err() error { return b.err }

// Add appends a pre-built field under the given id. An empty id is
// anonymous: the field participates in layout and validity but never in the
// result mapping.
func (b *Builder) Add(id, label string, f field.Field) *Builder {
	if b.err != nil {
		return b
	}
	if f == nil {
		b.err = fmt.Errorf("form: field %q is nil", id)
		return b
	}
	return b.addRow(Descriptor{
		kind:    rowField,
		ID:      id,
		Label:   label,
		Type:    f.Kind(),
		Field:   f,
		Visible: true,
	})
}

// String adds a text field.
func (b *Builder) String(id, label string, defaultValue field.Supplier[string], validate field.Validator[string], options ...field.StringOption) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewString(validate, defaultValue, options...))
}

// Password adds a secret text field.
func (b *Builder) Password(id, label string, defaultValue field.Supplier[string], validate field.Validator[string]) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewPassword(validate, defaultValue))
}

// Integer adds a whole-number field.
func (b *Builder) Integer(id, label string, defaultValue field.Supplier[int64], validate field.Validator[int64]) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewInteger(validate, defaultValue))
}

// Decimal adds a floating-point field.
func (b *Builder) Decimal(id, label string, defaultValue field.Supplier[float64], validate field.Validator[float64]) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewDecimal(validate, defaultValue))
}

// CheckBox adds a two-state field.
func (b *Builder) CheckBox(id, label string, defaultValue field.Supplier[bool], validate field.Validator[bool]) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewCheckBox(validate, defaultValue))
}

// Slider adds a bounded numeric field.
func (b *Builder) Slider(id, label string, min, max, step float64, defaultValue field.Supplier[float64], validate field.Validator[float64]) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewSlider(min, max, step, validate, defaultValue))
}

// File adds a file chooser field.
func (b *Builder) File(id, label string, chooser field.Chooser, defaultValue field.Supplier[string], validate field.Validator[string]) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewFile(chooser, validate, defaultValue))
}

// Folder adds a directory chooser field.
func (b *Builder) Folder(id, label string, chooser field.Chooser, defaultValue field.Supplier[string], validate field.Validator[string]) *Builder {
	if b.err != nil {
		return b
	}
	return b.Add(id, label, field.NewFolder(chooser, validate, defaultValue))
}

// Node embeds an opaque widget as a field. An empty id keeps it out of the
// result mapping.
func (b *Builder) Node(id, label string, widget field.Widget) *Builder {
	if b.err != nil {
		return b
	}
	if widget == nil {
		b.err = fmt.Errorf("form: node %q widget is nil", id)
		return b
	}
	return b.Add(id, label, field.NewNode(widget, nil, nil))
}

// Constant adds a disabled but rendered field holding a fixed value.
func (b *Builder) Constant(id, label string, value any) *Builder {
	if b.err != nil {
		return b
	}
	return b.addRow(Descriptor{
		kind:     rowField,
		ID:       id,
		Label:    label,
		Type:     field.KindConstant,
		Field:    field.NewConstant(value),
		Visible:  true,
		Disabled: true,
	})
}

// Hidden adds an unrendered field whose value still appears in the result.
func (b *Builder) Hidden(id string, value any) *Builder {
	return b.HiddenFunc(id, func() (any, bool) { return value, value != nil })
}

// HiddenFunc is Hidden with a supplier evaluated at build and reset time.
func (b *Builder) HiddenFunc(id string, supplier field.Supplier[any]) *Builder {
	if b.err != nil {
		return b
	}
	return b.addRow(Descriptor{
		kind:    rowField,
		ID:      id,
		Type:    field.KindHidden,
		Field:   field.NewHidden(supplier),
		Visible: false,
	})
}

// Section inserts a styled heading row. level indexes the style table;
// levels past the configured depth share a flat fallback style.
func (b *Builder) Section(level int, text string) *Builder {
	if b.err != nil {
		return b
	}
	b.descriptors = append(b.descriptors, Descriptor{
		kind:  rowSection,
		Level: level,
		Text:  text,
	})
	return b
}

// Text inserts a plain label row spanning the full grid width.
func (b *Builder) Text(text string) *Builder {
	if b.err != nil {
		return b
	}
	b.descriptors = append(b.descriptors, Descriptor{kind: rowText, Text: text})
	return b
}

// VerticalSpace inserts a blank row of the given height and forces the next
// field onto a new logical row.
func (b *Builder) VerticalSpace(height int) *Builder {
	if b.err != nil {
		return b
	}
	if height < 0 {
		height = 0
	}
	b.descriptors = append(b.descriptors, Descriptor{kind: rowSpacer, Height: height})
	return b
}

// SpaceBefore attaches fixed vertical spacing to the most recently added
// field.
func (b *Builder) SpaceBefore(height int) *Builder {
	if b.err != nil {
		return b
	}
	for i := len(b.descriptors) - 1; i >= 0; i-- {
		if b.descriptors[i].kind == rowField {
			b.descriptors[i].SpaceBefore = height
			return b
		}
	}
	b.err = fmt.Errorf("form: SpaceBefore requires a preceding field")
	return b
}

// Columns sets the number of form columns; it must be at least one.
func (b *Builder) Columns(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = fmt.Errorf("form: columns must be >= 1, got %d", n)
		return b
	}
	b.columns = n
	return b
}

// LabelPlacement selects the placement mode applied on build.
func (b *Builder) LabelPlacement(placement LabelPlacement) *Builder {
	if b.err != nil {
		return b
	}
	switch placement {
	case PlacementBefore, PlacementAbove:
		b.placement = placement
	default:
		b.err = fmt.Errorf("form: unknown label placement %q", placement)
	}
	return b
}

// MinRowHeight sets the minimum control-row height in layout units.
func (b *Builder) MinRowHeight(height int) *Builder {
	if b.err != nil {
		return b
	}
	if height < 1 {
		b.err = fmt.Errorf("form: min row height must be >= 1, got %d", height)
		return b
	}
	b.minRowHeight = height
	return b
}

// Glyphs replaces the marker symbol set.
func (b *Builder) Glyphs(set symbols.Set) *Builder {
	if b.err != nil {
		return b
	}
	b.glyphs = set
	return b
}

// SectionStyles replaces the heading style table.
func (b *Builder) SectionStyles(table symbols.StyleTable) *Builder {
	if b.err != nil {
		return b
	}
	b.styles = table
	return b
}

// CrossValidate installs a whole-form validation function consulted by the
// layout's validity aggregation.
func (b *Builder) CrossValidate(fn CrossValidator) *Builder {
	if b.err != nil {
		return b
	}
	b.cross = fn
	return b
}

// Build freezes the descriptor sequence into a Layout and runs the initial
// layout pass. A sticky builder error surfaces here.
func (b *Builder) Build() (*Layout, error) {
	if b.err != nil {
		return nil, b.err
	}
	layout := newLayout(b)
	layout.Init()
	return layout, nil
}

// MustBuild panics on build failure. Useful in tests and init-time wiring.
func (b *Builder) MustBuild() *Layout {
	layout, err := b.Build()
	if err != nil {
		panic(err)
	}
	return layout
}

func (b *Builder) addRow(d Descriptor) *Builder {
	if d.ID == "" {
		d.ID = fmt.Sprintf("__anon%d", b.anonSeq)
		d.anonymous = true
		b.anonSeq++
	} else if _, exists := b.ids[d.ID]; exists {
		b.err = fmt.Errorf("form: duplicate field id %q", d.ID)
		return b
	}
	b.ids[d.ID] = struct{}{}
	b.descriptors = append(b.descriptors, d)
	return b
}

// ComboBox adds a single-selection field over an arbitrary option type. It
// is a package function because Go methods cannot introduce type
// parameters.
func ComboBox[T any](b *Builder, id, label string, options []T, labelFn func(T) string, defaultValue field.Supplier[T], validate field.Validator[T]) *Builder {
	if b.Err() != nil {
		return b
	}
	return b.Add(id, label, field.NewComboBox(options, labelFn, validate, defaultValue))
}

// ComboBoxEx adds a combo box whose option list can be edited at runtime.
func ComboBoxEx[T any](b *Builder, id, label string, options []T, labelFn func(T) string, defaultValue field.Supplier[T], validate field.Validator[T]) *Builder {
	if b.Err() != nil {
		return b
	}
	return b.Add(id, label, field.NewExtensible(options, labelFn, validate, defaultValue))
}

// RadioList adds a single-selection field drawn as a radio group.
func RadioList[T any](b *Builder, id, label string, options []T, labelFn func(T) string, defaultValue field.Supplier[T], validate field.Validator[T]) *Builder {
	if b.Err() != nil {
		return b
	}
	return b.Add(id, label, field.NewRadioList(options, labelFn, validate, defaultValue))
}

// OptionsGroup adds a multi-selection panel.
func OptionsGroup[T any](b *Builder, id, label string, options []T, labelFn func(T) string, defaultValue field.Supplier[[]T], validate field.Validator[[]T]) *Builder {
	if b.Err() != nil {
		return b
	}
	return b.Add(id, label, field.NewOptionsGroup(options, labelFn, validate, defaultValue))
}
