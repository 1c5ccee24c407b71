// Package formkit assembles typed input forms: a builder produces a
// positioned grid layout with per-field validation state, and renderers
// turn that layout into HTML or an interactive terminal session. This root
// package re-exports the common entry points; the pkg tree holds the parts.
package formkit

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

// Builder aliases the form builder for root-level callers.
type Builder = form.Builder

// Layout aliases the built form layout.
type Layout = form.Layout

// LabelPlacement selects where labels sit relative to controls.
type LabelPlacement = form.LabelPlacement

const (
	// PlacementBefore puts labels to the left of controls.
	PlacementBefore = form.PlacementBefore
	// PlacementAbove puts labels on their own row over controls.
	PlacementAbove = form.PlacementAbove
)

// RenderOptions describes per-request overrides renderers can use to
// prefill values or decorate their output.
type RenderOptions = render.RenderOptions

// New returns an empty form builder with default configuration.
func New() *form.Builder {
	return form.New()
}

// DefaultRegistry returns a renderer registry with the stock HTML and TUI
// renderers registered under their names.
func DefaultRegistry(tuiOptions ...tui.Option) (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}

	tuiRenderer, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(tuiRenderer); err != nil {
		return nil, err
	}

	return registry, nil
}

// GenerateHTML loads an OpenAPI document, builds a form for the requested
// operation, and renders it as HTML. It is the simplest entry point for
// callers that just want markup from a spec.
func GenerateHTML(ctx context.Context, spec []byte, operationID string, options ...openapi.BuildOption) ([]byte, error) {
	doc, err := openapi.LoadFromData(ctx, spec)
	if err != nil {
		return nil, err
	}
	layout, err := openapi.BuildForm(doc, operationID, options...)
	if err != nil {
		return nil, err
	}
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, layout, render.RenderOptions{})
}

// RunTUI drives a built layout as an interactive terminal session and
// returns the serialized result.
func RunTUI(ctx context.Context, layout *form.Layout, options ...tui.Option) ([]byte, error) {
	renderer, err := tui.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, layout, render.RenderOptions{})
}
