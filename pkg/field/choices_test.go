package field

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type plan struct {
	Name  string
	Price int
}

func planLabel(p plan) string { return p.Name }

func TestComboBoxSelection(t *testing.T) {
	options := []plan{{"Free", 0}, {"Pro", 10}, {"Team", 25}}
	f := NewComboBox(options, planLabel, nil, nil)

	if got := f.SelectedIndex(); got != -1 {
		t.Fatalf("expected no selection, got %d", got)
	}
	if _, ok := f.Value(); ok {
		t.Fatal("expected absent value before selection")
	}

	if err := f.SelectIndex(1); err != nil {
		t.Fatalf("SelectIndex: %v", err)
	}
	value, ok := f.Value()
	if !ok {
		t.Fatal("expected present value")
	}
	if diff := cmp.Diff(plan{"Pro", 10}, value); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if err := f.SelectIndex(3); err == nil {
		t.Fatal("expected out-of-range rejection")
	}
	if got := f.SelectedIndex(); got != 1 {
		t.Fatalf("failed select must not move selection, got %d", got)
	}

	f.ClearSelection()
	if _, ok := f.Value(); ok {
		t.Fatal("expected absent after ClearSelection")
	}
	if !f.Empty() {
		t.Fatal("cleared selection is empty")
	}
}

func TestComboBoxLabels(t *testing.T) {
	f := NewComboBox([]plan{{"Free", 0}, {"Pro", 10}}, planLabel, nil, nil)
	want := []string{"Free", "Pro"}
	if diff := cmp.Diff(want, f.OptionLabels()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRadioListPresentation(t *testing.T) {
	f := NewRadioList([]plan{{"Free", 0}}, planLabel, nil, nil)
	if got := f.Presentation(); got != PresentRadio {
		t.Fatalf("Presentation() = %s", got)
	}
}

func TestComboBoxDefaultSeedsSelection(t *testing.T) {
	options := []plan{{"Free", 0}, {"Pro", 10}}
	f := NewComboBox(options, planLabel, nil, func() (plan, bool) {
		return plan{"Pro", 10}, true
	})
	if got := f.SelectedIndex(); got != 1 {
		t.Fatalf("expected default selection 1, got %d", got)
	}
}

func TestComboBoxResetRestoresSelection(t *testing.T) {
	options := []plan{{"Free", 0}, {"Pro", 10}, {"Team", 25}}
	f := NewComboBox(options, planLabel, nil, func() (plan, bool) {
		return plan{"Free", 0}, true
	})

	if err := f.SelectIndex(2); err != nil {
		t.Fatalf("SelectIndex: %v", err)
	}
	f.Reset()
	if got := f.SelectedIndex(); got != 0 {
		t.Fatalf("SelectedIndex() = %d after Reset, want 0", got)
	}

	bare := NewComboBox(options, planLabel, nil, nil)
	if err := bare.SelectIndex(1); err != nil {
		t.Fatalf("SelectIndex: %v", err)
	}
	bare.Reset()
	if got := bare.SelectedIndex(); got != -1 {
		t.Fatalf("SelectedIndex() = %d after Reset without a default", got)
	}
}

func TestComboBoxSelectionFollowsStateWrites(t *testing.T) {
	options := []plan{{"Free", 0}, {"Pro", 10}}
	f := NewComboBox(options, planLabel, nil, nil)

	f.State().Set(plan{"Pro", 10})
	if got := f.SelectedIndex(); got != 1 {
		t.Fatalf("SelectedIndex() = %d after state write, want 1", got)
	}
	f.State().Clear()
	if got := f.SelectedIndex(); got != -1 {
		t.Fatalf("SelectedIndex() = %d after state clear, want -1", got)
	}
}

func TestExtensibleResetRestoresSelection(t *testing.T) {
	f := NewExtensible([]string{"a", "b", "c"}, func(s string) string { return s }, nil,
		func() (string, bool) { return "a", true })

	if err := f.SelectIndex(2); err != nil {
		t.Fatalf("SelectIndex: %v", err)
	}
	f.Reset()
	if got := f.SelectedIndex(); got != 0 {
		t.Fatalf("SelectedIndex() = %d after Reset, want 0", got)
	}
}

func TestExtensibleOptionEditing(t *testing.T) {
	f := NewExtensible([]string{"a", "b", "c"}, func(s string) string { return s }, nil, nil)

	idx := f.AddOption("d")
	if idx != 3 {
		t.Fatalf("AddOption index = %d", idx)
	}

	if err := f.SelectIndex(2); err != nil {
		t.Fatalf("SelectIndex: %v", err)
	}

	// removing before the selection shifts it down
	if err := f.RemoveOption(0); err != nil {
		t.Fatalf("RemoveOption: %v", err)
	}
	if got := f.SelectedIndex(); got != 1 {
		t.Fatalf("expected shifted selection 1, got %d", got)
	}
	value, _ := f.Value()
	if value != "c" {
		t.Fatalf("selection should still point at %q, got %v", "c", value)
	}

	// removing the selection clears it
	if err := f.RemoveOption(1); err != nil {
		t.Fatalf("RemoveOption: %v", err)
	}
	if got := f.SelectedIndex(); got != -1 {
		t.Fatalf("expected cleared selection, got %d", got)
	}

	if err := f.UpdateOption(9, "x"); err == nil {
		t.Fatal("expected out-of-range rejection")
	}
}

func TestOptionsGroupOrdersAndDeduplicates(t *testing.T) {
	f := NewOptionsGroup([]string{"red", "green", "blue"}, func(s string) string { return s }, nil, nil)

	if err := f.SelectIndices([]int{2, 0, 2}); err != nil {
		t.Fatalf("SelectIndices: %v", err)
	}
	if diff := cmp.Diff([]int{0, 2}, f.SelectedIndices()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	value, ok := f.Value()
	if !ok {
		t.Fatal("expected present value")
	}
	if diff := cmp.Diff([]string{"red", "blue"}, value); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if err := f.SelectIndices([]int{5}); err == nil {
		t.Fatal("expected out-of-range rejection")
	}
	if diff := cmp.Diff([]int{0, 2}, f.SelectedIndices()); diff != "" {
		t.Fatalf("failed write must not change selection (-want +got):\n%s", diff)
	}

	if err := f.SelectIndices(nil); err != nil {
		t.Fatalf("SelectIndices(nil): %v", err)
	}
	if _, ok := f.Value(); ok {
		t.Fatal("empty selection clears the field")
	}
	if !f.Empty() {
		t.Fatal("empty selection is an empty input")
	}
}

func TestOptionsGroupResetRestoresSelection(t *testing.T) {
	f := NewOptionsGroup([]string{"red", "green", "blue"}, func(s string) string { return s }, nil,
		func() ([]string, bool) { return []string{"green"}, true })

	if err := f.SelectIndices([]int{0, 2}); err != nil {
		t.Fatalf("SelectIndices: %v", err)
	}
	f.Reset()
	if diff := cmp.Diff([]int{1}, f.SelectedIndices()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	bare := NewOptionsGroup([]string{"red", "green"}, func(s string) string { return s }, nil, nil)
	if err := bare.SelectIndices([]int{0}); err != nil {
		t.Fatalf("SelectIndices: %v", err)
	}
	bare.Reset()
	if got := bare.SelectedIndices(); got != nil {
		t.Fatalf("SelectedIndices() = %v after Reset without a default", got)
	}
}

func TestOptionsGroupHeightGrowsWithOptions(t *testing.T) {
	small := NewOptionsGroup([]string{"a"}, func(s string) string { return s }, nil, nil)
	large := NewOptionsGroup([]string{"a", "b", "c", "d"}, func(s string) string { return s }, nil, nil)
	if small.PreferredHeight() >= large.PreferredHeight() {
		t.Fatal("expected taller panel for more options")
	}
}
