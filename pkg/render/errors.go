package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
)

// ErrorMapping splits a server error payload into field-level messages
// keyed by field id and form-level messages with no field to attach to.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level error slices, trimming
// whitespace and dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload resolves a server payload against the layout's field
// ids. Keys may be plain ids, JSON pointers ("#/body/username"), or dotted
// paths ("request.items[0].name"); wrapper segments and array indices are
// ignored during matching. Paths that resolve to no field become
// form-level messages so nothing is silently dropped.
func MapErrorPayload(layout *form.Layout, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	ids := make(map[string]string)
	if layout != nil {
		for _, d := range layout.Descriptors() {
			if d.IsField() && !d.Anonymous() {
				ids[strings.ToLower(d.ID)] = d.ID
			}
		}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		if id, ok := resolveErrorPath(rawPath, ids); ok {
			mapping.Fields[id] = append(mapping.Fields[id], normalized...)
			continue
		}
		mapping.Form = append(mapping.Form, normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// resolveErrorPath walks the path's segments from the end, skipping array
// indices, and returns the first segment naming a known field id.
func resolveErrorPath(raw string, ids map[string]string) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := parseErrorPath(raw)
	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if id, ok := ids[strings.ToLower(segment)]; ok {
			return id, true
		}
	}
	return "", false
}

func parseErrorPath(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") ||
		strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		// JSON pointer escapes
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
