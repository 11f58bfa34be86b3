package contact

import "net/http"

// Component bundles one contact Handler with its configuration and routing
// helpers. The handler is stateful (rate limits, pending forms), so the
// component hands out the same instance every time.
type Component struct {
	opts    Options
	handler *Handler
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	h := NewHandler(fns...)
	return &Component{opts: h.opts, handler: h}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Handler returns the JSON endpoint handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return NewHandler()
	}
	return c.handler
}

// FormHandler returns the non-JavaScript form page handler.
func (c *Component) FormHandler() http.Handler {
	if c == nil {
		return NewHandler().FormHandler()
	}
	return c.handler.FormHandler()
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return registerHandler(mux, basePath, c.handler)
}
