// Package tui drives a built layout as an interactive terminal session:
// every visible field becomes a prompt, invalid answers re-prompt with the
// field's error message, and the collected values serialize as JSON,
// form-urlencoded, or pretty text.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (render.Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       driver,
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver, err = newSurveyDriver()
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render walks the layout in declaration order, prompting for every visible
// field until it validates, then re-prompts fields flagged by cross-field
// validation and serializes the result mapping.
func (r *Renderer) Render(ctx context.Context, layout *form.Layout, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, errors.New("tui: layout is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	for id, value := range opts.Values {
		f, ok := layout.Field(id)
		if !ok {
			return nil, fmt.Errorf("tui: value for unknown field %q", id)
		}
		if err := f.SetValue(value); err != nil {
			return nil, fmt.Errorf("tui: apply value %q: %w", id, err)
		}
	}

	if opts.Title != "" {
		if err := r.driver.Info(ctx, r.theme.SectionPrefix+opts.Localize(opts.Title)); err != nil {
			return nil, err
		}
	}

	descriptors := layout.Descriptors()
	for _, d := range descriptors {
		switch {
		case d.IsSection():
			if err := r.driver.Info(ctx, r.theme.SectionPrefix+opts.Localize(d.Text)); err != nil {
				return nil, err
			}
		case d.IsText():
			if err := r.driver.Info(ctx, r.theme.InfoPrefix+opts.Localize(d.Text)); err != nil {
				return nil, err
			}
		case d.IsField():
			if !d.Visible || !opts.Fields.Includes(d.ID) {
				continue
			}
			if err := r.promptField(ctx, d, opts); err != nil {
				return nil, err
			}
		}
	}

	for !layout.Valid() {
		crossErrs := layout.CrossErrors()
		if len(crossErrs) == 0 {
			break
		}
		ids := make([]string, 0, len(crossErrs))
		for id := range crossErrs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		prompted := false
		for _, id := range ids {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+crossErrs[id]); err != nil {
				return nil, err
			}
			for _, d := range descriptors {
				if d.IsField() && d.Visible && d.ID == id && opts.Fields.Includes(id) {
					if err := r.promptField(ctx, d, opts); err != nil {
						return nil, err
					}
					prompted = true
					break
				}
			}
		}
		if !prompted {
			break
		}
	}

	values := layout.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values)
}

// promptField runs one field's prompt loop: ask, apply, and repeat until
// the field validates or the driver errors out.
func (r *Renderer) promptField(ctx context.Context, d form.Descriptor, opts render.RenderOptions) error {
	f := d.Field
	label := d.Label
	if label == "" {
		label = form.DefaultLabeler(d.ID)
	}
	label = opts.Localize(label)

	for {
		applied, err := r.askOnce(ctx, f, label, d.Disabled)
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}
		if f.Valid() {
			return nil
		}
		msg := fmt.Sprintf("%sInvalid %s: %s", r.theme.ErrorPrefix, label, f.Error())
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
}

// askOnce issues a single prompt for the field's widget capability. It
// reports false when the field was displayed rather than asked (constants,
// disabled rows).
func (r *Renderer) askOnce(ctx context.Context, f field.Field, label string, disabled bool) (bool, error) {
	if disabled || f.Kind() == field.KindConstant {
		value, _ := f.Value()
		return false, r.driver.Info(ctx, fmt.Sprintf("%s%s: %v", r.theme.InfoPrefix, label, value))
	}

	switch w := f.Widget().(type) {
	case field.ChoiceWidget:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      w.OptionLabels(),
			DefaultIndex: w.SelectedIndex(),
		})
		if err != nil {
			return false, err
		}
		if err := w.SelectIndex(idx); err != nil {
			return false, err
		}
		return true, nil

	case field.MultiChoiceWidget:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  w.OptionLabels(),
			Defaults: w.SelectedIndices(),
		})
		if err != nil {
			return false, err
		}
		if err := w.SelectIndices(indices); err != nil {
			return false, err
		}
		return true, nil

	case field.BoolWidget:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: w.Checked(),
		})
		if err != nil {
			return false, err
		}
		w.SetChecked(checked)
		return true, nil

	case field.RangeWidget:
		min, max, step := w.Bounds()
		help := fmt.Sprintf("between %v and %v", min, max)
		if step > 0 {
			help += fmt.Sprintf(", step %v", step)
		}
		input, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: strconv.FormatFloat(w.Position(), 'f', -1, 64),
			Help:    help,
		})
		if err != nil {
			return false, err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			return false, r.driver.Info(ctx, fmt.Sprintf("%s%q is not a number", r.theme.ErrorPrefix, input))
		}
		w.SetPosition(parsed)
		return true, nil

	case field.PathWidget:
		path, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: w.Path(),
		})
		if err != nil {
			return false, err
		}
		w.SetPath(strings.TrimSpace(path))
		return true, nil

	case field.TextWidget:
		cfg := InputConfig{
			Message: label,
			Default: w.Text(),
			Help:    w.Placeholder(),
		}
		var response string
		var err error
		switch {
		case w.Secret():
			response, err = r.driver.Password(ctx, cfg)
		case isMultiline(w):
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: cfg.Message,
				Default: cfg.Default,
				Help:    cfg.Help,
			})
		default:
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return false, err
		}
		w.SetText(response)
		return true, nil

	default:
		return false, fmt.Errorf("%w: %s (%s)", ErrUnsupportedField, label, f.Kind())
	}
}

func isMultiline(w field.TextWidget) bool {
	m, ok := w.(interface{ Multiline() bool })
	return ok && m.Multiline()
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case nil:
			flattened.Set(key, "")
		case []any:
			for _, item := range v {
				flattened.Add(key+"[]", fmt.Sprint(item))
			}
		default:
			flattened.Set(key, fmt.Sprint(v))
		}
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		switch v := values[key].(type) {
		case nil:
			fmt.Fprintf(&b, "%s=\n", key)
		case []any:
			for i, item := range v {
				fmt.Fprintf(&b, "%s[%d]=%v\n", key, i, item)
			}
		default:
			fmt.Fprintf(&b, "%s=%v\n", key, v)
		}
	}
	return b.String()
}
