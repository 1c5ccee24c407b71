package timezones

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
)

func TestZonesAreSortedAndCopied(t *testing.T) {
	zones := Zones()
	if !sort.StringsAreSorted(zones) {
		t.Fatal("zone list must stay sorted")
	}
	zones[0] = "mutated"
	if Zones()[0] == "mutated" {
		t.Fatal("Zones must return a copy")
	}
}

func TestContains(t *testing.T) {
	if !Contains("Europe/Berlin") {
		t.Fatal("expected Europe/Berlin in the curated list")
	}
	if Contains("Mars/Olympus_Mons") {
		t.Fatal("unknown zone reported as present")
	}
}

func TestSearchPrefersPrefixMatches(t *testing.T) {
	got := SearchIn([]string{
		"America/Managua",
		"Asia/Amman",
		"Europe/Amsterdam",
	}, "am", 0)
	want := []string{"America/Managua", "Asia/Amman", "Europe/Amsterdam"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchIsCaseInsensitiveAndLimited(t *testing.T) {
	got := Search("EUROPE/", 3)
	if len(got) != 3 {
		t.Fatalf("limit ignored, got %d results", len(got))
	}
	for _, zone := range got {
		if zone[:7] != "Europe/" {
			t.Fatalf("unexpected match %q", zone)
		}
	}
}

func TestSearchEmptyQueryReturnsHead(t *testing.T) {
	got := Search("", 5)
	if diff := cmp.Diff(Zones()[:5], got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchNoMatches(t *testing.T) {
	if got := Search("zzzz", 0); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestFieldRegistersPickerWithDefault(t *testing.T) {
	layout := Field(form.New(), "tz", "Timezone", "Europe/Berlin").MustBuild()

	f, ok := layout.Field("tz")
	if !ok {
		t.Fatal("picker field missing")
	}
	w, ok := f.Widget().(field.ChoiceWidget)
	if !ok {
		t.Fatalf("expected choice widget, got %T", f.Widget())
	}
	if w.SelectedIndex() < 0 {
		t.Fatal("default zone not selected")
	}
	if got := w.OptionLabels()[w.SelectedIndex()]; got != "Europe/Berlin" {
		t.Fatalf("selected %q", got)
	}
}

func TestFieldIgnoresUnknownDefault(t *testing.T) {
	layout := Field(form.New(), "tz", "Timezone", "Nowhere/Else").MustBuild()

	f, _ := layout.Field("tz")
	w := f.Widget().(field.ChoiceWidget)
	if w.SelectedIndex() >= 0 {
		t.Fatalf("unknown default selected index %d", w.SelectedIndex())
	}
}
