// Package server wires the portfolio page, the contact endpoint and the
// operational routes into one chi router and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-folio/components/contact"
	"github.com/goliatone/go-folio/internal/config"
	"github.com/goliatone/go-folio/internal/metrics"
	"github.com/goliatone/go-folio/pkg/notify"
	pkgopenapi "github.com/goliatone/go-folio/pkg/openapi"
	"github.com/goliatone/go-folio/pkg/orchestrator"
	"github.com/goliatone/go-folio/pkg/render"
	"github.com/goliatone/go-folio/pkg/renderers/vanilla"
	"github.com/goliatone/go-folio/pkg/submit"
)

// VariantParam selects a theme variant for one page view, e.g. ?variant=light.
const VariantParam = "variant"

// Deps are the collaborators the server does not build itself.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	// Source overrides the embedded contact contract.
	Source pkgopenapi.Source
	Sender submit.Sender
	// Metrics is optional; nil disables /metrics and submission counters.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Assets overrides the embedded stylesheet, script and images.
	Assets fs.FS
	// Version is attached to every request log line.
	Version string
}

// Server is the HTTP front of the site.
type Server struct {
	cfg     config.Config
	router  chi.Router
	http    *http.Server
	logger  *slog.Logger
	page    render.Page
	orch    *orchestrator.Orchestrator
	contact *contact.Component
}

// New builds the router. The form model is resolved once here so a broken
// contract fails at startup instead of on the first request.
func New(ctx context.Context, cfg config.Config, deps Deps) (*Server, error) {
	if deps.Orchestrator == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if deps.Sender == nil {
		return nil, errors.New("server: sender is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	page, err := deps.Orchestrator.Page(ctx, orchestrator.Request{Source: deps.Source})
	if err != nil {
		return nil, fmt.Errorf("server: build page: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		page:   page,
		orch:   deps.Orchestrator,
	}

	contactOpts := []contact.OptionFn{
		contact.WithForm(page.Form),
		contact.WithSender(deps.Sender),
		contact.WithNotifier(notify.Log(logger)),
		contact.WithPageRenderer(contact.PageRendererFunc(s.renderPage)),
		contact.WithLogger(logger),
		contact.WithRateLimit(cfg.Contact.RatePerMinute, cfg.Contact.Burst),
		contact.WithMaxBodyBytes(cfg.Contact.MaxBodyBytes),
	}
	if deps.Metrics != nil {
		contactOpts = append(contactOpts, contact.WithMetrics(deps.Metrics))
	}
	s.contact = contact.New(contactOpts...)

	router, err := s.routes(deps)
	if err != nil {
		return nil, err
	}
	s.router = router
	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Std(),
	}
	return s, nil
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(deps Deps) (chi.Router, error) {
	r := chi.NewRouter()

	level, err := s.cfg.Log.SlogLevel()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	tags := map[string]string{}
	if deps.Version != "" {
		tags["version"] = deps.Version
	}
	requestLogger := httplog.NewLogger("folio", httplog.Options{
		LogLevel:         level,
		JSON:             strings.EqualFold(s.cfg.Log.Format, "json"),
		Concise:          true,
		MessageFieldName: "message",
		Tags:             tags,
	})

	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	if len(s.cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/", s.contact.FormHandler().ServeHTTP)
	if _, err := s.contact.RegisterRoutes(r, "/"); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	assets := deps.Assets
	if assets == nil {
		assets = vanilla.AssetsFS()
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))

	if s.cfg.Server.CVPath != "" {
		r.Get("/cv", s.serveCV)
	}
	if s.cfg.Server.Metrics && deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
	return r, nil
}

// renderPage renders the site page with per-request contact state. An unknown
// ?variant falls back to the configured one.
func (s *Server) renderPage(r *http.Request, options render.RenderOptions) ([]byte, error) {
	req := orchestrator.Request{
		ThemeName:     s.cfg.Theme.Name,
		ThemeVariant:  s.cfg.Theme.Variant,
		RenderOptions: options,
	}
	if variant := strings.TrimSpace(r.URL.Query().Get(VariantParam)); variant != "" {
		req.ThemeVariant = variant
	}

	body, err := s.orch.RenderPage(r.Context(), s.page, req)
	if errors.Is(err, orchestrator.ErrVariantNotFound) && req.ThemeVariant != s.cfg.Theme.Variant {
		httplog.LogEntry(r.Context()).DebugContext(r.Context(), "unknown theme variant", "variant", req.ThemeVariant)
		req.ThemeVariant = s.cfg.Theme.Variant
		body, err = s.orch.RenderPage(r.Context(), s.page, req)
	}
	return body, err
}

func (s *Server) serveCV(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(s.cfg.Server.CVPath)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, s.cfg.Server.CVPath)
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("folio listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.Server.ShutdownTimeout.Std()
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		s.logger.Info("folio shutting down")
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
