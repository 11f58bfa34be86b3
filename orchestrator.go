package folio

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-folio/pkg/model"
	pkgopenapi "github.com/goliatone/go-folio/pkg/openapi"
	"github.com/goliatone/go-folio/pkg/orchestrator"
	"github.com/goliatone/go-folio/pkg/render"
	"github.com/goliatone/go-folio/pkg/validation"
)

// RenderOptions describes per-request state renderers layer over the page:
// prefilled values, inline errors, notification and theme.
type RenderOptions = render.RenderOptions

// FormFields is the flat name to value map the contact form works with.
type FormFields = model.FormFields

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the portfolio page. A nil source uses the embedded
// contact contract.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Source: source})
}

// Validate checks fields against the built-in contact form.
func Validate(fields FormFields) validation.Result {
	return validation.Validate(fields)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
