package render

import "strings"

// FieldSubset restricts a render to the named field ids. Matching is
// case-insensitive and ignores surrounding whitespace; an empty subset
// matches everything.
type FieldSubset []string

// Empty reports whether the subset places no restriction.
func (s FieldSubset) Empty() bool {
	for _, id := range s {
		if strings.TrimSpace(id) != "" {
			return false
		}
	}
	return true
}

// Includes reports whether the field id should render under this subset.
func (s FieldSubset) Includes(id string) bool {
	if s.Empty() {
		return true
	}
	want := strings.ToLower(strings.TrimSpace(id))
	if want == "" {
		return false
	}
	for _, candidate := range s {
		if strings.ToLower(strings.TrimSpace(candidate)) == want {
			return true
		}
	}
	return false
}
