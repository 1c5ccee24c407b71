package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// sanitizeText strips all markup from labels, tooltips, and glyphs before
// they reach the template. Field text comes from application code, but
// schema-driven forms carry strings from documents the host did not write.
func sanitizeText(raw string) string {
	return strings.TrimSpace(textSanitizer().Sanitize(raw))
}

// sanitizeMarkup keeps inline formatting for section and text rows while
// dropping scripts, event handlers, and anything structural.
func sanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(markupSanitizer().Sanitize(trimmed))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "code", "small", "sub", "sup", "br")
		markupPolicy = policy
	})
	return markupPolicy
}
