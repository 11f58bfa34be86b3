package contact

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/render"
	"github.com/goliatone/go-folio/pkg/submit"
	"github.com/goliatone/go-folio/pkg/validation"
)

type GuardFunc func(r *http.Request) error

// Metrics receives per-request counters. *metrics.Metrics satisfies it.
type Metrics interface {
	submit.Observer
	ObserveValidation(result validation.Result)
	ObserveRejection(code string)
}

// PageRenderer renders the full page for the form endpoint.
type PageRenderer interface {
	RenderPage(r *http.Request, options render.RenderOptions) ([]byte, error)
}

// PageRendererFunc adapts a function into a PageRenderer.
type PageRendererFunc func(r *http.Request, options render.RenderOptions) ([]byte, error)

func (fn PageRendererFunc) RenderPage(r *http.Request, options render.RenderOptions) ([]byte, error) {
	return fn(r, options)
}

type Options struct {
	RoutePath string
	// FormPath serves non-JavaScript posts. It is only mounted when Page is
	// set.
	FormPath string

	Form      model.FormModel
	Validator *validation.Validator
	Sender    submit.Sender
	Notifier  notify.Notifier
	Page      PageRenderer
	Metrics   Metrics
	Logger    *slog.Logger
	Guard     GuardFunc

	// RatePerMinute limits accepted submissions per client; 0 disables it.
	RatePerMinute float64
	Burst         int
	MaxBodyBytes  int64
	// ClientKey identifies the client for rate limiting.
	ClientKey func(r *http.Request) string
	// NewFormID issues ids for forms rendered by the form endpoint and for
	// JSON posts without one.
	NewFormID func() string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     "/api/contact",
		FormPath:      "/contact",
		Form:          model.ContactForm(),
		RatePerMinute: 6,
		Burst:         3,
		MaxBodyBytes:  64 << 10,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/contact"
	}
	if opts.FormPath == "" {
		opts.FormPath = "/contact"
	}
	if len(opts.Form.Fields) == 0 {
		opts.Form = model.ContactForm()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New(opts.Form)
	}
	if opts.Sender == nil {
		opts.Sender = submit.NewDelaySender(submit.DefaultDelay)
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RatePerMinute < 0 {
		opts.RatePerMinute = 0
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 64 << 10
	}
	if opts.ClientKey == nil {
		opts.ClientKey = remoteHost
	}
	if opts.NewFormID == nil {
		opts.NewFormID = newFormID
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithFormPath(path string) OptionFn {
	return func(o *Options) {
		o.FormPath = path
	}
}

func WithForm(form model.FormModel) OptionFn {
	return func(o *Options) {
		o.Form = form
		o.Validator = nil
	}
}

func WithValidator(v *validation.Validator) OptionFn {
	return func(o *Options) {
		o.Validator = v
	}
}

func WithSender(sender submit.Sender) OptionFn {
	return func(o *Options) {
		o.Sender = sender
	}
}

// WithDelay uses the mock sender with the given delay.
func WithDelay(delay time.Duration) OptionFn {
	return func(o *Options) {
		o.Sender = submit.NewDelaySender(delay)
	}
}

func WithNotifier(n notify.Notifier) OptionFn {
	return func(o *Options) {
		o.Notifier = n
	}
}

func WithPageRenderer(page PageRenderer) OptionFn {
	return func(o *Options) {
		o.Page = page
	}
}

func WithMetrics(m Metrics) OptionFn {
	return func(o *Options) {
		o.Metrics = m
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func WithRateLimit(perMinute float64, burst int) OptionFn {
	return func(o *Options) {
		o.RatePerMinute = perMinute
		o.Burst = burst
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		o.MaxBodyBytes = n
	}
}

func WithClientKey(fn func(r *http.Request) string) OptionFn {
	return func(o *Options) {
		o.ClientKey = fn
	}
}

func WithFormIDGenerator(fn func() string) OptionFn {
	return func(o *Options) {
		o.NewFormID = fn
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type nopMetrics struct{}

func (nopMetrics) ObserveSubmission(submit.Outcome, time.Duration) {}
func (nopMetrics) ObserveValidation(validation.Result)             {}
func (nopMetrics) ObserveRejection(string)                         {}
