// Package timezones ships a curated IANA zone list plus a picker field that
// drops into any form builder.
package timezones

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
)

// canonical holds the zones most deployments actually offer. The slice stays
// sorted so pickers render deterministically.
var canonical = []string{
	"Africa/Cairo",
	"Africa/Johannesburg",
	"Africa/Lagos",
	"Africa/Nairobi",
	"America/Anchorage",
	"America/Argentina/Buenos_Aires",
	"America/Bogota",
	"America/Chicago",
	"America/Denver",
	"America/Halifax",
	"America/Lima",
	"America/Los_Angeles",
	"America/Mexico_City",
	"America/New_York",
	"America/Phoenix",
	"America/Santiago",
	"America/Sao_Paulo",
	"America/St_Johns",
	"America/Toronto",
	"America/Vancouver",
	"Asia/Bangkok",
	"Asia/Dhaka",
	"Asia/Dubai",
	"Asia/Hong_Kong",
	"Asia/Jakarta",
	"Asia/Jerusalem",
	"Asia/Karachi",
	"Asia/Kathmandu",
	"Asia/Kolkata",
	"Asia/Kuala_Lumpur",
	"Asia/Manila",
	"Asia/Riyadh",
	"Asia/Seoul",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Taipei",
	"Asia/Tehran",
	"Asia/Tokyo",
	"Atlantic/Azores",
	"Atlantic/Reykjavik",
	"Australia/Adelaide",
	"Australia/Brisbane",
	"Australia/Darwin",
	"Australia/Melbourne",
	"Australia/Perth",
	"Australia/Sydney",
	"Europe/Amsterdam",
	"Europe/Athens",
	"Europe/Berlin",
	"Europe/Brussels",
	"Europe/Bucharest",
	"Europe/Dublin",
	"Europe/Helsinki",
	"Europe/Istanbul",
	"Europe/Kyiv",
	"Europe/Lisbon",
	"Europe/London",
	"Europe/Madrid",
	"Europe/Moscow",
	"Europe/Oslo",
	"Europe/Paris",
	"Europe/Prague",
	"Europe/Rome",
	"Europe/Stockholm",
	"Europe/Vienna",
	"Europe/Warsaw",
	"Europe/Zurich",
	"Pacific/Auckland",
	"Pacific/Fiji",
	"Pacific/Honolulu",
	"UTC",
}

// Zones returns the curated list in sorted order. Callers get a copy.
func Zones() []string {
	return append([]string(nil), canonical...)
}

// Contains reports whether name is part of the curated list.
func Contains(name string) bool {
	i := sort.SearchStrings(canonical, name)
	return i < len(canonical) && canonical[i] == name
}

// Search filters the curated list by a case-insensitive substring match.
// Prefix matches sort ahead of interior matches; within each group results
// stay alphabetical. limit <= 0 means no limit.
func Search(query string, limit int) []string {
	return SearchIn(canonical, query, limit)
}

// SearchIn is Search over a caller-supplied zone list.
func SearchIn(zones []string, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := append([]string(nil), zones...)
		return truncate(out, limit)
	}

	type match struct {
		name   string
		prefix bool
	}
	matches := make([]match, 0, 16)
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if !strings.Contains(lower, query) {
			continue
		}
		matches = append(matches, match{name: zone, prefix: strings.HasPrefix(lower, query)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return truncate(out, limit)
}

func truncate(zones []string, limit int) []string {
	if limit > 0 && len(zones) > limit {
		return zones[:limit]
	}
	return zones
}

// Field registers a timezone picker on the builder. An unknown or blank
// defaultZone leaves the picker unselected.
func Field(b *form.Builder, id, label, defaultZone string) *form.Builder {
	var supplier field.Supplier[string]
	if Contains(defaultZone) {
		supplier = func() (string, bool) { return defaultZone, true }
	}
	return form.ComboBox(b, id, label, Zones(),
		func(zone string) string { return zone }, supplier, nil)
}
