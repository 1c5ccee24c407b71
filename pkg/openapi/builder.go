package openapi

import (
	"fmt"
	"math"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
)

// BuildOption configures schema-driven form construction.
type BuildOption func(*buildConfig)

type buildConfig struct {
	labeler   func(id string) string
	columns   int
	placement form.LabelPlacement
}

// WithLabeler overrides how field labels derive from property names when a
// schema carries no title.
func WithLabeler(fn func(id string) string) BuildOption {
	return func(cfg *buildConfig) {
		if fn != nil {
			cfg.labeler = fn
		}
	}
}

// WithColumns sets the form column count.
func WithColumns(n int) BuildOption {
	return func(cfg *buildConfig) {
		if n >= 1 {
			cfg.columns = n
		}
	}
}

// WithLabelPlacement sets the label placement mode.
func WithLabelPlacement(placement form.LabelPlacement) BuildOption {
	return func(cfg *buildConfig) {
		if placement != "" {
			cfg.placement = placement
		}
	}
}

// BuildForm constructs a built layout for an operation's request body.
func BuildForm(doc *openapi3.T, operationID string, options ...BuildOption) (*form.Layout, error) {
	builder, err := FormBuilder(doc, operationID, options...)
	if err != nil {
		return nil, err
	}
	return builder.Build()
}

// FormBuilder constructs a form builder for an operation's request body and
// returns it unbuilt so callers can attach cross-field validation or extra
// rows before Build.
func FormBuilder(doc *openapi3.T, operationID string, options ...BuildOption) (*form.Builder, error) {
	if doc == nil {
		return nil, fmt.Errorf("openapi: document is required")
	}
	cfg := &buildConfig{
		labeler:   form.DefaultLabeler,
		columns:   1,
		placement: form.PlacementBefore,
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	op, err := findOperation(doc, operationID)
	if err != nil {
		return nil, err
	}
	schema, err := requestSchema(op, operationID)
	if err != nil {
		return nil, err
	}

	builder := form.New().
		Columns(cfg.columns).
		LabelPlacement(cfg.placement)

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[name]
		if err := addField(builder, cfg, name, ref.Value, isRequired); err != nil {
			return nil, err
		}
	}

	if err := builder.Err(); err != nil {
		return nil, err
	}
	return builder, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc.Paths == nil {
		return nil, fmt.Errorf("openapi: document has no paths")
	}
	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for path := range pathMap {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := pathMap[path]
		if item == nil {
			continue
		}
		operations := item.Operations()
		methods := make([]string, 0, len(operations))
		for method := range operations {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			op := operations[method]
			if op != nil && op.OperationID == operationID {
				return op, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestSchema(op *openapi3.Operation, operationID string) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body", operationID)
	}
	content := op.RequestBody.Value.Content
	media := content.Get("application/json")
	if media == nil {
		// fall back to the first media type, deterministically
		types := make([]string, 0, len(content))
		for name := range content {
			types = append(types, name)
		}
		sort.Strings(types)
		for _, name := range types {
			if content[name] != nil {
				media = content[name]
				break
			}
		}
	}
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("openapi: operation %q request body has no schema", operationID)
	}
	schema := media.Schema.Value
	if !typeIs(schema.Type, openapi3.TypeObject) && len(schema.Properties) == 0 {
		return nil, fmt.Errorf("openapi: operation %q request schema is not an object", operationID)
	}
	return schema, nil
}

func addField(builder *form.Builder, cfg *buildConfig, name string, prop *openapi3.Schema, required bool) error {
	label := prop.Title
	if label == "" {
		label = cfg.labeler(name)
	}

	switch {
	case typeIs(prop.Type, openapi3.TypeBoolean):
		builder.CheckBox(name, label, boolSupplier(prop.Default), nil)

	case typeIs(prop.Type, openapi3.TypeInteger):
		builder.Integer(name, label, intSupplier(prop.Default), integerValidator(prop, required))

	case typeIs(prop.Type, openapi3.TypeNumber):
		builder.Decimal(name, label, floatSupplier(prop.Default), numberValidator(prop, required))

	case typeIs(prop.Type, openapi3.TypeArray):
		options := itemEnum(prop)
		if len(options) == 0 {
			return fmt.Errorf("openapi: array property %q needs enum items", name)
		}
		var validate field.Validator[[]string]
		if required {
			validate = field.Present[[]string]("required")
		}
		form.OptionsGroup(builder, name, label, options, identity, stringSliceSupplier(prop.Default), validate)

	case prop.Type == nil || typeIs(prop.Type, openapi3.TypeString):
		if len(prop.Enum) > 0 {
			var validate field.Validator[string]
			if required {
				validate = field.NotEmpty("required")
			}
			form.ComboBox(builder, name, label, enumStrings(prop.Enum), identity, stringSupplier(prop.Default), validate)
			return nil
		}
		validate, err := stringValidator(prop, required)
		if err != nil {
			return err
		}
		if prop.Format == "password" {
			builder.Password(name, label, stringSupplier(prop.Default), validate)
			return nil
		}
		var opts []field.StringOption
		if prop.Description != "" {
			opts = append(opts, field.WithPlaceholder(prop.Description))
		}
		builder.String(name, label, stringSupplier(prop.Default), validate, opts...)

	default:
		return fmt.Errorf("openapi: property %q has unsupported type", name)
	}
	return nil
}

func stringValidator(prop *openapi3.Schema, required bool) (field.Validator[string], error) {
	var chain []field.Validator[string]
	if required {
		chain = append(chain, field.NotEmpty("required"))
	}
	if prop.MinLength > 0 {
		chain = append(chain, field.MinLength(int(prop.MinLength)))
	}
	if prop.MaxLength != nil {
		chain = append(chain, field.MaxLength(int(*prop.MaxLength)))
	}
	if prop.Pattern != "" {
		pattern, err := field.Pattern(prop.Pattern, "")
		if err != nil {
			return nil, fmt.Errorf("openapi: %w", err)
		}
		chain = append(chain, pattern)
	}
	if len(chain) == 0 {
		return nil, nil
	}
	return field.All(chain...), nil
}

func integerValidator(prop *openapi3.Schema, required bool) field.Validator[int64] {
	var chain []field.Validator[int64]
	if required {
		chain = append(chain, field.Present[int64]("required"))
	}
	if prop.Min != nil {
		// a fractional bound tightens to the nearest admissible integer;
		// the exclusivity flag only survives an already-integral bound
		min := int64(math.Ceil(*prop.Min))
		chain = append(chain, field.Min(min, prop.ExclusiveMin && isIntegral(*prop.Min)))
	}
	if prop.Max != nil {
		max := int64(math.Floor(*prop.Max))
		chain = append(chain, field.Max(max, prop.ExclusiveMax && isIntegral(*prop.Max)))
	}
	if len(chain) == 0 {
		return nil
	}
	return field.All(chain...)
}

func isIntegral(v float64) bool {
	return math.Trunc(v) == v
}

func numberValidator(prop *openapi3.Schema, required bool) field.Validator[float64] {
	var chain []field.Validator[float64]
	if required {
		chain = append(chain, field.Present[float64]("required"))
	}
	if prop.Min != nil {
		chain = append(chain, field.Min(*prop.Min, prop.ExclusiveMin))
	}
	if prop.Max != nil {
		chain = append(chain, field.Max(*prop.Max, prop.ExclusiveMax))
	}
	if len(chain) == 0 {
		return nil
	}
	return field.All(chain...)
}

func typeIs(types *openapi3.Types, typ string) bool {
	return types != nil && types.Is(typ)
}

func identity(s string) string { return s }

func enumStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func itemEnum(prop *openapi3.Schema) []string {
	if prop.Items == nil || prop.Items.Value == nil {
		return nil
	}
	return enumStrings(prop.Items.Value.Enum)
}

func stringSupplier(def any) field.Supplier[string] {
	s, ok := def.(string)
	if !ok || s == "" {
		return nil
	}
	return func() (string, bool) { return s, true }
}

func boolSupplier(def any) field.Supplier[bool] {
	b, ok := def.(bool)
	if !ok {
		return nil
	}
	return func() (bool, bool) { return b, true }
}

func intSupplier(def any) field.Supplier[int64] {
	switch v := def.(type) {
	case float64:
		n := int64(v)
		return func() (int64, bool) { return n, true }
	case int64:
		return func() (int64, bool) { return v, true }
	case int:
		n := int64(v)
		return func() (int64, bool) { return n, true }
	default:
		return nil
	}
}

func floatSupplier(def any) field.Supplier[float64] {
	switch v := def.(type) {
	case float64:
		return func() (float64, bool) { return v, true }
	case int:
		f := float64(v)
		return func() (float64, bool) { return f, true }
	default:
		return nil
	}
}

func stringSliceSupplier(def any) field.Supplier[[]string] {
	raw, ok := def.([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	values := enumStrings(raw)
	return func() ([]string, bool) { return values, true }
}
