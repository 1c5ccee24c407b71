// Package render defines the renderer contract over built layouts and a
// registry for discovering renderers by name.
package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Renderer converts a built Layout into a byte representation (HTML, plain
// text, etc.). Renderers may write option values through fields and overlay
// server errors, but overlays are restored before Render returns.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, layout *form.Layout, options RenderOptions) ([]byte, error)
}
