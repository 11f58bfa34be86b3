package render

import (
	"context"
)

// Renderer turns a Page into an output representation (HTML, terminal
// session transcript, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
