package contact

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the JSON endpoint under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the contact handler under basePath on mux and
// returns the mounted patterns.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	return registerHandler(mux, basePath, NewHandler(fns...))
}

// RegisterRoutesWithOptions registers a handler built from opts.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	return registerHandler(mux, basePath, HandlerWithOptions(opts))
}

func registerHandler(mux Mux, basePath string, h *Handler) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("contact: missing mux")
	}
	patterns := []string{mountPath(basePath, h.opts.RoutePath)}
	mux.Handle(patterns[0], h)
	if h.opts.Page != nil {
		formPattern := mountPath(basePath, h.opts.FormPath)
		if formPattern == patterns[0] {
			return nil, fmt.Errorf("contact: form path %q collides with route path", formPattern)
		}
		mux.Handle(formPattern, h.FormHandler())
		patterns = append(patterns, formPattern)
	}
	return patterns, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
