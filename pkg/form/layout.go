package form

import (
	"sort"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/observe"
	"github.com/goliatone/go-formkit/pkg/symbols"
)

// CellKind tags what a grid cell holds.
type CellKind string

const (
	CellLabel   CellKind = "label"
	CellControl CellKind = "control"
	CellMarker  CellKind = "marker"
	CellSection CellKind = "section"
	CellText    CellKind = "text"
	CellSpacer  CellKind = "spacer"
	CellLegend  CellKind = "legend"
)

// Cell is one positioned grid entry. Label and marker cells carry the field
// id they belong to so renderers can pair them with their control.
type Cell struct {
	Kind    CellKind
	Row     int
	Col     int
	ColSpan int

	FieldID string
	Text    string
	Tooltip string

	Level    int
	Style    symbols.SectionStyle
	Disabled bool
}

// Grid is the positioned result of a layout pass. Columns counts grid
// columns, not form columns; in before-placement every form column spans
// three grid columns, in above-placement two.
type Grid struct {
	Columns    int
	Rows       int
	RowHeights []int
	Cells      []Cell
}

// Layout owns the built form: the descriptor sequence, the positioned grid,
// per-field validity subscriptions, and the aggregate validity flag.
type Layout struct {
	descriptors  []Descriptor
	columns      int
	placement    LabelPlacement
	minRowHeight int
	glyphs       symbols.Set
	styles       symbols.StyleTable
	cross        CrossValidator

	fields      map[string]field.Field
	grid        Grid
	valid       *observe.Value[bool]
	crossErrors map[string]string

	unsubscribe []func()
	rebuilds    int
	silent      bool
}

func newLayout(b *Builder) *Layout {
	l := &Layout{
		descriptors:  append([]Descriptor(nil), b.descriptors...),
		columns:      b.columns,
		placement:    b.placement,
		minRowHeight: b.minRowHeight,
		glyphs:       b.glyphs,
		styles:       b.styles,
		cross:        b.cross,
		fields:       make(map[string]field.Field),
		valid:        observe.NewValue(false),
	}
	for _, d := range l.descriptors {
		if d.kind == rowField {
			l.fields[d.ID] = d.Field
		}
	}
	return l
}

// Init runs a full layout pass: it drops every previous field subscription,
// re-places all cells, and re-subscribes. Calling it repeatedly never leaks
// listeners; the subscription count stays flat.
func (l *Layout) Init() {
	for _, cancel := range l.unsubscribe {
		cancel()
	}
	l.unsubscribe = l.unsubscribe[:0]

	l.grid = l.place()

	for _, d := range l.descriptors {
		if d.kind != rowField {
			continue
		}
		l.unsubscribe = append(l.unsubscribe, d.Field.OnValidated(l.refresh))
	}
	l.rebuilds++
	l.refresh()
}

// Rebuilds reports how many full layout passes have run.
func (l *Layout) Rebuilds() int { return l.rebuilds }

// Grid returns the structural grid from the last layout pass. Marker and
// label cells carry positions only; Snapshot resolves their live text.
func (l *Layout) Grid() Grid { return l.grid }

// Descriptors returns the ordered field list, hidden entries included.
func (l *Layout) Descriptors() []Descriptor {
	return append([]Descriptor(nil), l.descriptors...)
}

// Field returns the field registered under id.
func (l *Layout) Field(id string) (field.Field, bool) {
	f, ok := l.fields[id]
	return f, ok
}

// Glyphs returns the marker symbol set in effect.
func (l *Layout) Glyphs() symbols.Set { return l.glyphs }

// Placement returns the current label placement mode.
func (l *Layout) Placement() LabelPlacement { return l.placement }

// SetLabelPlacement switches placement mode and triggers exactly one full
// rebuild.
func (l *Layout) SetLabelPlacement(placement LabelPlacement) {
	switch placement {
	case PlacementBefore, PlacementAbove:
	default:
		return
	}
	l.placement = placement
	l.Init()
}

// Valid reports the aggregate validity: every field valid, visible or
// hidden, and no cross-field errors outstanding.
func (l *Layout) Valid() bool { return l.valid.Get() }

// ValidCell exposes aggregate validity as an observable flag so callers can
// bind submit buttons to it.
func (l *Layout) ValidCell() *observe.Value[bool] { return l.valid }

// CrossErrors returns the outstanding cross-field error messages by field
// id.
func (l *Layout) CrossErrors() map[string]string {
	out := make(map[string]string, len(l.crossErrors))
	for id, msg := range l.crossErrors {
		out[id] = msg
	}
	return out
}

// Values collects the result mapping: one entry per non-anonymous field,
// hidden fields included, nil for absent values.
func (l *Layout) Values() map[string]any {
	out := make(map[string]any)
	for _, d := range l.descriptors {
		if d.kind != rowField || d.anonymous {
			continue
		}
		if value, ok := d.Field.Value(); ok {
			out[d.ID] = value
		} else {
			out[d.ID] = nil
		}
	}
	return out
}

// Reset restores every field to its default and recomputes validity once.
func (l *Layout) Reset() {
	l.silent = true
	for _, d := range l.descriptors {
		if d.kind == rowField {
			d.Field.Reset()
		}
	}
	l.silent = false
	l.refresh()
}

// refresh recomputes cross-field errors and the aggregate flag. It is the
// single listener attached to every field, so it must tolerate re-entrant
// notifications; the silent flag suppresses the passes Snapshot and Reset
// trigger themselves.
func (l *Layout) refresh() {
	if l.silent {
		return
	}
	if l.cross != nil {
		l.crossErrors = normalizeErrors(l.cross(l.Values()))
	} else {
		l.crossErrors = nil
	}

	valid := len(l.crossErrors) == 0
	for _, d := range l.descriptors {
		if d.kind != rowField {
			continue
		}
		if !d.Field.Valid() {
			valid = false
			break
		}
	}
	l.valid.Set(valid)
}

func normalizeErrors(raw map[string]string) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for id, msg := range raw {
		if msg != "" {
			out[id] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Snapshot returns a copy of the grid with live presentation resolved:
// required labels get their suffix, marker cells get the glyph and tooltip
// for the field's current condition, and cross-field errors are overlaid on
// their target fields for the duration of the read.
func (l *Layout) Snapshot() Grid {
	l.silent = true
	defer func() { l.silent = false }()

	var restores []func()
	for _, id := range sortedKeys(l.crossErrors) {
		if f, ok := l.fields[id]; ok {
			restores = append(restores, f.OverrideError(l.crossErrors[id]))
		}
	}

	out := cloneGrid(l.grid)
	for i := range out.Cells {
		cell := &out.Cells[i]
		f, ok := l.fields[cell.FieldID]
		if !ok {
			continue
		}
		switch cell.Kind {
		case CellLabel:
			if f.Required() && cell.Text != "" {
				cell.Text += l.glyphs.LabelSuffix
			}
		case CellMarker:
			cell.Text, cell.Tooltip = l.markerFor(f)
		}
	}

	for i := len(restores) - 1; i >= 0; i-- {
		restores[i]()
	}
	return out
}

// markerFor picks the glyph for a field's current condition. A required
// blank field shows the empty marker even though it is also invalid; the
// error glyphs cover values that were entered and rejected.
func (l *Layout) markerFor(f field.Field) (glyph, tooltip string) {
	switch {
	case f.Required() && f.Empty():
		return l.glyphs.RequiredEmpty, f.Error()
	case !f.Valid() && f.Required():
		return l.glyphs.RequiredError, f.Error()
	case !f.Valid():
		return l.glyphs.OptionalError, f.Error()
	case f.Required():
		return l.glyphs.RequiredFilled, ""
	default:
		return "", ""
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func cloneGrid(g Grid) Grid {
	out := g
	out.RowHeights = append([]int(nil), g.RowHeights...)
	out.Cells = append([]Cell(nil), g.Cells...)
	return out
}

// placer accumulates cells row by row during a layout pass.
type placer struct {
	layout  *Layout
	grid    Grid
	row     int
	pending []Descriptor
}

// place positions every visible descriptor. Fields fill logical rows left
// to right up to the column count; spacers, sections, and text rows flush
// the current logical row and span the full grid width. A trailing legend
// row appears when any field, visible or hidden, is required.
func (l *Layout) place() Grid {
	cols := l.columns * 3
	if l.placement == PlacementAbove {
		cols = l.columns * 2
	}
	p := &placer{layout: l, grid: Grid{Columns: cols}}

	for _, d := range l.descriptors {
		switch d.kind {
		case rowSpacer:
			p.flush()
			p.spacerRow(d.Height)
		case rowSection:
			p.flush()
			p.sectionRow(d)
		case rowText:
			p.flush()
			p.fullRow(Cell{Kind: CellText, Text: d.Text}, p.layout.minRowHeight)
		case rowField:
			if !d.Visible {
				continue
			}
			if d.SpaceBefore > 0 {
				p.flush()
				p.spacerRow(d.SpaceBefore)
			}
			p.pending = append(p.pending, d)
			if len(p.pending) == l.columns {
				p.flush()
			}
		}
	}
	p.flush()

	if l.anyRequired() {
		p.fullRow(Cell{Kind: CellLegend, Text: l.glyphs.Legend}, p.layout.minRowHeight)
	}

	p.grid.Rows = p.row
	return p.grid
}

func (l *Layout) anyRequired() bool {
	for _, d := range l.descriptors {
		if d.kind == rowField && d.Field.Required() {
			return true
		}
	}
	return false
}

func (p *placer) spacerRow(height int) {
	p.grid.Cells = append(p.grid.Cells, Cell{
		Kind:    CellSpacer,
		Row:     p.row,
		ColSpan: p.grid.Columns,
	})
	p.grid.RowHeights = append(p.grid.RowHeights, height)
	p.row++
}

func (p *placer) fullRow(cell Cell, height int) {
	cell.Row = p.row
	cell.ColSpan = p.grid.Columns
	p.grid.Cells = append(p.grid.Cells, cell)
	p.grid.RowHeights = append(p.grid.RowHeights, height)
	p.row++
}

func (p *placer) sectionRow(d Descriptor) {
	style := p.layout.styles.Level(d.Level)
	if style.SpaceBefore > 0 {
		p.spacerRow(style.SpaceBefore)
	}
	height := int(float64(p.layout.minRowHeight) * style.FontScale)
	if height < p.layout.minRowHeight {
		height = p.layout.minRowHeight
	}
	p.fullRow(Cell{
		Kind:  CellSection,
		Text:  d.Text,
		Level: d.Level,
		Style: style,
	}, height)
	if style.SpaceAfter > 0 {
		p.spacerRow(style.SpaceAfter)
	}
}

// flush emits the buffered logical row. Before-placement packs label,
// control, and marker side by side; above-placement emits an optional label
// sub-row over a control-plus-marker row.
func (p *placer) flush() {
	if len(p.pending) == 0 {
		return
	}
	row := p.pending
	p.pending = nil

	if p.layout.placement == PlacementBefore {
		for i, d := range row {
			base := i * 3
			p.grid.Cells = append(p.grid.Cells,
				Cell{Kind: CellLabel, Row: p.row, Col: base, ColSpan: 1, FieldID: d.ID, Text: d.Label, Disabled: d.Disabled},
				Cell{Kind: CellControl, Row: p.row, Col: base + 1, ColSpan: 1, FieldID: d.ID, Disabled: d.Disabled},
				Cell{Kind: CellMarker, Row: p.row, Col: base + 2, ColSpan: 1, FieldID: d.ID},
			)
		}
		p.grid.RowHeights = append(p.grid.RowHeights, p.controlHeight(row))
		p.row++
		return
	}

	labelled := false
	for _, d := range row {
		if d.Label != "" {
			labelled = true
			break
		}
	}
	if labelled {
		for i, d := range row {
			p.grid.Cells = append(p.grid.Cells, Cell{
				Kind:     CellLabel,
				Row:      p.row,
				Col:      i * 2,
				ColSpan:  2,
				FieldID:  d.ID,
				Text:     d.Label,
				Disabled: d.Disabled,
			})
		}
		p.grid.RowHeights = append(p.grid.RowHeights, p.layout.minRowHeight)
		p.row++
	}
	for i, d := range row {
		base := i * 2
		p.grid.Cells = append(p.grid.Cells,
			Cell{Kind: CellControl, Row: p.row, Col: base, ColSpan: 1, FieldID: d.ID, Disabled: d.Disabled},
			Cell{Kind: CellMarker, Row: p.row, Col: base + 1, ColSpan: 1, FieldID: d.ID},
		)
	}
	p.grid.RowHeights = append(p.grid.RowHeights, p.controlHeight(row))
	p.row++
}

// controlHeight picks the tallest preferred height on the row, floored at
// the configured minimum.
func (p *placer) controlHeight(row []Descriptor) int {
	height := p.layout.minRowHeight
	for _, d := range row {
		if hinter, ok := d.Field.Widget().(field.HeightHinter); ok {
			if preferred := hinter.PreferredHeight(); preferred > height {
				height = preferred
			}
		}
	}
	return height
}
