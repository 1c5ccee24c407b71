package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *form.Layout, RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "html"})
	registry.MustRegister(stubRenderer{name: "tui"})

	renderer, err := registry.Get("html")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("Name() = %q", renderer.Name())
	}

	if diff := cmp.Diff([]string{"html", "tui"}, registry.List()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("tui") || registry.Has("pdf") {
		t.Fatal("Has() disagrees with registrations")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "html"})

	err := registry.Register(stubRenderer{name: "html"})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !strings.Contains(err.Error(), `"html"`) {
		t.Fatalf("error should name the renderer, got %v", err)
	}
}

func TestRegistryRejectsNilAndUnnamed(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestRegistryGetMissing(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected not-found error")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	registry.MustGet("missing")
}
