// Package symbols holds the pluggable glyph sets used by form markers and
// the style table applied to section headings. Sets can come from code, from
// YAML/JSON documents on an fs.FS, or from a go-theme manifest.
package symbols

// Set maps every marker condition to the glyph drawn for it. Glyphs are
// plain strings; renderers decide typography.
type Set struct {
	// RequiredEmpty marks a required field with a blank input.
	RequiredEmpty string `json:"requiredEmpty" yaml:"requiredEmpty"`
	// RequiredFilled marks a required field holding a valid value.
	RequiredFilled string `json:"requiredFilled" yaml:"requiredFilled"`
	// RequiredError marks a required field holding an invalid value.
	RequiredError string `json:"requiredError" yaml:"requiredError"`
	// OptionalError marks an optional field holding an invalid value.
	OptionalError string `json:"optionalError" yaml:"optionalError"`
	// LabelSuffix is appended to the label of every required field.
	LabelSuffix string `json:"labelSuffix" yaml:"labelSuffix"`
	// Legend is the trailing full-width note shown when any field is
	// required.
	Legend string `json:"legend" yaml:"legend"`
}

// Default returns the stock glyph set.
func Default() Set {
	return Set{
		RequiredEmpty:  "●",
		RequiredFilled: "",
		RequiredError:  "!",
		OptionalError:  "!",
		LabelSuffix:    "*",
		Legend:         "* Required field",
	}
}

// SectionStyle describes one heading level: a font scale relative to body
// text plus the vertical space inserted around the heading row.
type SectionStyle struct {
	FontScale   float64 `json:"fontScale" yaml:"fontScale"`
	Bold        bool    `json:"bold" yaml:"bold"`
	SpaceBefore int     `json:"spaceBefore" yaml:"spaceBefore"`
	SpaceAfter  int     `json:"spaceAfter" yaml:"spaceAfter"`
}

// StyleTable resolves a section nesting level to its style. Levels beyond
// the configured ones fall back to a flat style.
type StyleTable struct {
	Levels   []SectionStyle `json:"levels" yaml:"levels"`
	Fallback SectionStyle   `json:"fallback" yaml:"fallback"`
}

// DefaultStyles returns the stock table: three heading levels plus a flat
// fallback.
func DefaultStyles() StyleTable {
	return StyleTable{
		Levels: []SectionStyle{
			{FontScale: 1.6, Bold: true, SpaceBefore: 16, SpaceAfter: 8},
			{FontScale: 1.3, Bold: true, SpaceBefore: 12, SpaceAfter: 6},
			{FontScale: 1.1, Bold: true, SpaceBefore: 8, SpaceAfter: 4},
		},
		Fallback: SectionStyle{FontScale: 1.0, SpaceBefore: 4, SpaceAfter: 2},
	}
}

// Level returns the style for a nesting level, falling back past the
// configured depth.
func (t StyleTable) Level(level int) SectionStyle {
	if level >= 0 && level < len(t.Levels) {
		return t.Levels[level]
	}
	return t.Fallback
}

// merge overlays non-empty glyphs from other onto s.
func (s Set) merge(other Set) Set {
	if other.RequiredEmpty != "" {
		s.RequiredEmpty = other.RequiredEmpty
	}
	if other.RequiredFilled != "" {
		s.RequiredFilled = other.RequiredFilled
	}
	if other.RequiredError != "" {
		s.RequiredError = other.RequiredError
	}
	if other.OptionalError != "" {
		s.OptionalError = other.OptionalError
	}
	if other.LabelSuffix != "" {
		s.LabelSuffix = other.LabelSuffix
	}
	if other.Legend != "" {
		s.Legend = other.Legend
	}
	return s
}
