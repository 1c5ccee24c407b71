package form

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/field"
)

func TestDuplicateIDIsStickyAndLeavesNoPartialState(t *testing.T) {
	b := New().
		String("email", "Email", nil, nil).
		String("email", "Email again", nil, nil)

	if b.Err() == nil {
		t.Fatal("expected duplicate id error")
	}
	if !strings.Contains(b.Err().Error(), `"email"`) {
		t.Fatalf("error should name the id, got %v", b.Err())
	}
	if got := len(b.descriptors); got != 1 {
		t.Fatalf("rejected field must not leave a row behind, got %d descriptors", got)
	}

	// every later call is a no-op
	b.Integer("age", "Age", nil, nil)
	if got := len(b.descriptors); got != 1 {
		t.Fatalf("sticky error must freeze the builder, got %d descriptors", got)
	}

	if _, err := b.Build(); err == nil {
		t.Fatal("Build should surface the sticky error")
	}
}

func TestAnonymousFieldsGetSyntheticIDs(t *testing.T) {
	b := New().
		Add("", "First", field.NewString(nil, nil)).
		Add("", "Second", field.NewString(nil, nil))

	if err := b.Err(); err != nil {
		t.Fatalf("anonymous fields must not collide: %v", err)
	}
	if b.descriptors[0].ID == b.descriptors[1].ID {
		t.Fatal("synthetic ids must be unique")
	}
	if !b.descriptors[0].Anonymous() || !b.descriptors[1].Anonymous() {
		t.Fatal("expected anonymous descriptors")
	}
}

func TestBuilderConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
	}{
		{"zero columns", func() *Builder { return New().Columns(0) }},
		{"unknown placement", func() *Builder { return New().LabelPlacement("sideways") }},
		{"zero row height", func() *Builder { return New().MinRowHeight(0) }},
		{"space before without field", func() *Builder { return New().SpaceBefore(8) }},
		{"nil field", func() *Builder { return New().Add("x", "X", nil) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.build().Err() == nil {
				t.Fatal("expected builder error")
			}
		})
	}
}

func TestMustBuildPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New().Columns(0).MustBuild()
}

func TestSpaceBeforeAttachesToLastField(t *testing.T) {
	b := New().
		String("a", "A", nil, nil).
		String("b", "B", nil, nil).
		SpaceBefore(12)

	if err := b.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.descriptors[1].SpaceBefore; got != 12 {
		t.Fatalf("SpaceBefore = %d, want 12", got)
	}
	if got := b.descriptors[0].SpaceBefore; got != 0 {
		t.Fatalf("first field SpaceBefore = %d, want 0", got)
	}
}

func TestDefaultLabeler(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"firstName", "First Name"},
		{"first_name", "First Name"},
		{"api-key", "Api Key"},
		{"port8080", "Port 8080"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := DefaultLabeler(tc.in); got != tc.want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
