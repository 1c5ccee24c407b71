package render

// RenderOptions describe per-request data that renderers can use to
// customise their output without mutating the layout.
type RenderOptions struct {
	// Title is an optional heading rendered above the form.
	Title string
	// Values pre-populates controls by field id before rendering. Fields
	// reject incompatible values; those errors surface from Render.
	Values map[string]any
	// Errors is a server-side validation payload overlaid on the rendered
	// form. Keys may be plain field ids or structured paths (JSON
	// pointers, dotted paths); MapErrorPayload resolves them against the
	// layout and routes unknown paths to form level.
	Errors map[string][]string
	// Fields restricts rendering to the named fields when non-empty.
	// Section and text rows still render; hidden fields still serialize.
	Fields FieldSubset
	// HiddenFields emit as transport-level hidden inputs (CSRF tokens,
	// version stamps) alongside the form. They are not layout fields and
	// never validate.
	HiddenFields map[string]string
	// Attributes are extra key/value pairs renderers may attach to their
	// outermost element (CSS classes, data attributes).
	Attributes map[string]string
	// Locale and Translator localize user-facing text (title, labels,
	// section headings). A nil Translator renders text unchanged.
	Locale     string
	Translator Translator
	// OnMissing handles failed translation lookups; nil keeps the
	// untranslated text.
	OnMissing MissingTranslationHandler
}
