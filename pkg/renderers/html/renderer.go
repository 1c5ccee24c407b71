// Package html renders built layouts as standalone CSS-grid markup. The
// template is pongo2-based and swappable; all human text passes through a
// bluemonday policy first.
package html

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const defaultTemplate = "form.html"

// Renderer emits HTML for a built layout.
type Renderer struct {
	engine       TemplateRenderer
	templateName string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the renderer.
type Option func(*Renderer)

// WithTemplateEngine swaps the template engine.
func WithTemplateEngine(engine TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTemplateName selects a template other than the embedded default.
func WithTemplateName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.templateName = name
		}
	}
}

// New constructs the renderer with the embedded template unless options say
// otherwise.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{templateName: defaultTemplate}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		sub, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("html: embedded templates: %w", err)
		}
		engine, err := NewEngine(WithFS(sub))
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

func (r *Renderer) Name() string { return "html" }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render applies option values, overlays any server error payload,
// snapshots the layout, and executes the template over the positioned
// grid.
func (r *Renderer) Render(ctx context.Context, layout *form.Layout, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, fmt.Errorf("html: layout is required")
	}

	for id, value := range options.Values {
		f, ok := layout.Field(id)
		if !ok {
			return nil, fmt.Errorf("html: value for unknown field %q", id)
		}
		if err := f.SetValue(value); err != nil {
			return nil, fmt.Errorf("html: apply value %q: %w", id, err)
		}
	}

	mapping := render.MapErrorPayload(layout, options.Errors)
	ids := make([]string, 0, len(mapping.Fields))
	for id := range mapping.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var restores []func()
	for _, id := range ids {
		if f, ok := layout.Field(id); ok {
			restores = append(restores, f.OverrideError(strings.Join(mapping.Fields[id], "; ")))
		}
	}

	out, err := r.engine.RenderTemplate(r.templateName, r.viewData(layout, options, mapping.Form))

	for i := len(restores) - 1; i >= 0; i-- {
		restores[i]()
	}
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) viewData(layout *form.Layout, options render.RenderOptions, formErrors []string) map[string]any {
	snapshot := layout.Snapshot()

	rows := make([]map[string]any, snapshot.Rows)
	for i := range rows {
		height := 0
		if i < len(snapshot.RowHeights) {
			height = snapshot.RowHeights[i]
		}
		rows[i] = map[string]any{
			"height": height,
			"cells":  []map[string]any{},
		}
	}
	for _, cell := range snapshot.Cells {
		if cell.Row < 0 || cell.Row >= len(rows) {
			continue
		}
		if cell.FieldID != "" && !options.Fields.Includes(cell.FieldID) {
			continue
		}
		cells := rows[cell.Row]["cells"].([]map[string]any)
		rows[cell.Row]["cells"] = append(cells, r.cellData(layout, cell, options))
	}

	attrs := make(map[string]any, len(options.Attributes))
	for key, value := range options.Attributes {
		attrs[sanitizeText(key)] = sanitizeText(value)
	}

	var hidden []map[string]any
	for _, f := range render.SortedHiddenFields(options.HiddenFields) {
		hidden = append(hidden, map[string]any{
			"name":  sanitizeText(f.Name),
			"value": sanitizeText(f.Value),
		})
	}

	errorList := make([]string, 0, len(formErrors))
	for _, message := range formErrors {
		errorList = append(errorList, sanitizeText(message))
	}

	return map[string]any{
		"title":      sanitizeText(options.Localize(options.Title)),
		"columns":    snapshot.Columns,
		"placement":  string(layout.Placement()),
		"valid":      layout.Valid(),
		"rows":       rows,
		"attributes": attrs,
		"hidden":     hidden,
		"formErrors": errorList,
	}
}

func (r *Renderer) cellData(layout *form.Layout, cell form.Cell, options render.RenderOptions) map[string]any {
	data := map[string]any{
		"kind":     string(cell.Kind),
		"col":      cell.Col,
		"colSpan":  cell.ColSpan,
		"fieldId":  cell.FieldID,
		"text":     sanitizeText(cell.Text),
		"tooltip":  sanitizeText(cell.Tooltip),
		"disabled": cell.Disabled,
	}
	switch cell.Kind {
	case form.CellLabel:
		data["text"] = sanitizeText(options.Localize(cell.Text))
	case form.CellLegend:
		data["text"] = sanitizeText(options.Localize(cell.Text))
	case form.CellSection, form.CellText:
		data["text"] = sanitizeMarkup(options.Localize(cell.Text))
		data["level"] = cell.Level
		data["fontScale"] = cell.Style.FontScale
		data["bold"] = cell.Style.Bold
	case form.CellControl:
		if f, ok := layout.Field(cell.FieldID); ok {
			data["control"] = controlData(f)
			data["valid"] = f.Valid()
			data["required"] = f.Required()
			data["empty"] = f.Empty()
			data["error"] = sanitizeText(f.Error())
		}
	}
	return data
}

// controlData shapes widget state for the template by capability rather
// than by concrete type.
func controlData(f field.Field) map[string]any {
	data := map[string]any{"kind": string(f.Kind())}

	switch w := f.Widget().(type) {
	case field.ChoiceWidget:
		data["input"] = "select"
		data["options"] = sanitizeAll(w.OptionLabels())
		data["selected"] = w.SelectedIndex()
		if p, ok := w.(interface{ Presentation() field.ChoicePresentation }); ok && p.Presentation() == field.PresentRadio {
			data["input"] = "radio"
		}
	case field.MultiChoiceWidget:
		data["input"] = "checkbox-group"
		data["options"] = sanitizeAll(w.OptionLabels())
		data["selected"] = w.SelectedIndices()
	case field.BoolWidget:
		data["input"] = "checkbox"
		data["checked"] = w.Checked()
	case field.RangeWidget:
		min, max, step := w.Bounds()
		data["input"] = "range"
		data["min"] = min
		data["max"] = max
		data["step"] = step
		data["value"] = w.Position()
	case field.PathWidget:
		data["input"] = "text"
		data["value"] = sanitizeText(w.Path())
	case field.TextWidget:
		data["input"] = "text"
		data["value"] = sanitizeText(w.Text())
		data["placeholder"] = sanitizeText(w.Placeholder())
		if w.Secret() {
			data["input"] = "password"
			data["value"] = ""
		}
		if m, ok := w.(interface{ Multiline() bool }); ok && m.Multiline() {
			data["input"] = "textarea"
		}
	default:
		data["input"] = "static"
		if value, ok := f.Value(); ok {
			data["value"] = sanitizeText(fmt.Sprint(value))
		}
	}
	return data
}

func sanitizeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = sanitizeText(s)
	}
	return out
}
