package symbols

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func TestLoadFSMergesOverDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"markers.yaml": &fstest.MapFile{Data: []byte(`
sets:
  dense:
    requiredEmpty: "•"
    legend: "• marks a required field"
`)},
		"styles.json": &fstest.MapFile{Data: []byte(`{
  "styles": {
    "compact": {
      "levels": [{"fontScale": 1.2, "bold": true}],
      "fallback": {"fontScale": 1.0}
    }
  }
}`)},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if store.Empty() {
		t.Fatal("expected populated store")
	}

	set, ok := store.Set("dense")
	if !ok {
		t.Fatal("missing set dense")
	}
	want := Default()
	want.RequiredEmpty = "•"
	want.Legend = "• marks a required field"
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	table, ok := store.Styles("compact")
	if !ok {
		t.Fatal("missing style compact")
	}
	if table.Level(0).FontScale != 1.2 || !table.Level(0).Bold {
		t.Fatalf("unexpected level 0 style %+v", table.Level(0))
	}
}

func TestLoadFSRejectsDuplicateSetNames(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte("sets:\n  dense:\n    legend: a\n")},
		"b.yaml": &fstest.MapFile{Data: []byte("sets:\n  dense:\n    legend: b\n")},
	}

	_, err := LoadFS(fsys)
	if err == nil {
		t.Fatal("expected duplicate set error")
	}
	if !strings.Contains(err.Error(), `duplicate set "dense"`) {
		t.Fatalf("error should name the set, got %v", err)
	}
}

func TestLoadFSNilFilesystem(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("LoadFS(nil): %v", err)
	}
	if !store.Empty() {
		t.Fatal("expected empty store")
	}
}

func TestStyleTableLevelFallback(t *testing.T) {
	table := StyleTable{
		Levels:   []SectionStyle{{FontScale: 1.6}, {FontScale: 1.3}},
		Fallback: SectionStyle{FontScale: 1.0},
	}

	if got := table.Level(1).FontScale; got != 1.3 {
		t.Fatalf("Level(1) = %v", got)
	}
	if got := table.Level(5).FontScale; got != 1.0 {
		t.Fatalf("Level(5) = %v, want fallback", got)
	}
	if got := table.Level(-1).FontScale; got != 1.0 {
		t.Fatalf("Level(-1) = %v, want fallback", got)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestFromThemeOverlaysTokens(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme: "acme",
		Manifest: &theme.Manifest{
			Name: "acme",
			Tokens: map[string]string{
				TokenRequiredEmpty: "◦",
				TokenLegend:        "◦ required",
			},
		},
	}}

	set, err := FromTheme(selector, "acme", "")
	if err != nil {
		t.Fatalf("FromTheme: %v", err)
	}
	if set.RequiredEmpty != "◦" || set.Legend != "◦ required" {
		t.Fatalf("tokens not applied: %+v", set)
	}
	if set.LabelSuffix != Default().LabelSuffix {
		t.Fatal("undefined tokens keep the stock glyph")
	}
}

func TestFromThemeNilSelector(t *testing.T) {
	set, err := FromTheme(nil, "acme", "")
	if err != nil {
		t.Fatalf("FromTheme(nil): %v", err)
	}
	if diff := cmp.Diff(Default(), set); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromThemeSelectorError(t *testing.T) {
	boom := errors.New("manifest missing")
	selector := &stubSelector{err: boom}

	set, err := FromTheme(selector, "acme", "dark")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped selector error, got %v", err)
	}
	if diff := cmp.Diff(Default(), set); diff != "" {
		t.Fatalf("errors still return usable defaults (-want +got):\n%s", diff)
	}
}

func TestStylesFromThemeOverridesScales(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme: "acme",
		Manifest: &theme.Manifest{
			Name: "acme",
			Tokens: map[string]string{
				"sections.level0.fontScale": "2.0",
				"sections.level1.fontScale": "bogus",
			},
		},
	}}

	table, err := StylesFromTheme(selector, "acme", "")
	if err != nil {
		t.Fatalf("StylesFromTheme: %v", err)
	}
	if got := table.Level(0).FontScale; got != 2.0 {
		t.Fatalf("Level(0) = %v, want 2.0", got)
	}
	if got := table.Level(1).FontScale; got != DefaultStyles().Level(1).FontScale {
		t.Fatalf("unparsable token must not change the scale, got %v", got)
	}
}
