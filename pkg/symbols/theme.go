package symbols

import (
	"fmt"
	"strconv"

	theme "github.com/goliatone/go-theme"
)

// Manifest token keys a theme can define to override marker glyphs. Missing
// tokens keep the stock glyph.
const (
	TokenRequiredEmpty  = "markers.requiredEmpty"
	TokenRequiredFilled = "markers.requiredFilled"
	TokenRequiredError  = "markers.requiredError"
	TokenOptionalError  = "markers.optionalError"
	TokenLabelSuffix    = "markers.labelSuffix"
	TokenLegend         = "markers.legend"
	TokenSectionScale   = "sections.level%d.fontScale"
)

// FromTheme resolves a glyph set through a go-theme selector. Tokens the
// manifest does not define fall back to Default; a selector error surfaces
// so callers can decide whether to fall back wholesale.
func FromTheme(selector theme.ThemeSelector, name, variant string) (Set, error) {
	set := Default()
	if selector == nil {
		return set, nil
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return set, fmt.Errorf("symbols: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return set, nil
	}

	tokens := selection.Manifest.Tokens
	return set.merge(Set{
		RequiredEmpty:  tokens[TokenRequiredEmpty],
		RequiredFilled: tokens[TokenRequiredFilled],
		RequiredError:  tokens[TokenRequiredError],
		OptionalError:  tokens[TokenOptionalError],
		LabelSuffix:    tokens[TokenLabelSuffix],
		Legend:         tokens[TokenLegend],
	}), nil
}

// StylesFromTheme overlays section font scales defined by a theme manifest
// onto the default style table.
func StylesFromTheme(selector theme.ThemeSelector, name, variant string) (StyleTable, error) {
	table := DefaultStyles()
	if selector == nil {
		return table, nil
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return table, fmt.Errorf("symbols: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return table, nil
	}

	for level := range table.Levels {
		raw, ok := selection.Manifest.Tokens[fmt.Sprintf(TokenSectionScale, level)]
		if !ok {
			continue
		}
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 {
			continue
		}
		table.Levels[level].FontScale = scale
	}
	return table, nil
}
