package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/portfolio"
	"github.com/goliatone/go-folio/pkg/render"
	rendertemplate "github.com/goliatone/go-folio/pkg/render/template"
	gotemplate "github.com/goliatone/go-folio/pkg/render/template/gotemplate"
)

// Name is the registry name of the HTML renderer.
const Name = "vanilla"

const (
	defaultSubmitLabel  = "Enviar Mensagem"
	defaultPendingLabel = "Enviando..."
	pageTemplate        = "templates/page.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetPrefix      string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetPrefix sets the URL prefix the embedded assets are served under.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		if prefix = strings.TrimRight(strings.TrimSpace(prefix), "/"); prefix != "" {
			cfg.assetPrefix = prefix
		}
	}
}

// Renderer renders the full page as HTML using pongo2 templates.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	assetPrefix string
}

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetPrefix: "/assets"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithFilters(map[string]pongo2.FilterFunction{
				"icon": filterIcon,
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, assetPrefix: cfg.assetPrefix}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full HTML document.
func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(pageTemplate, r.buildContext(page, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type fieldView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Control     string `json:"control"`
	InputType   string `json:"inputType"`
	Rows        int    `json:"rows"`
	Required    bool   `json:"required"`
	Value       string `json:"value"`
	Error       string `json:"error"`
	ErrorID     string `json:"errorId"`
}

type themeView struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"cssVarsStyle"`
}

type submitView struct {
	Label        string `json:"label"`
	PendingLabel string `json:"pendingLabel"`
	Pending      bool   `json:"pending"`
}

func (r *Renderer) buildContext(page render.Page, options render.RenderOptions) map[string]any {
	mapping := render.MapErrorPayload(page.Form, options.Errors)

	fields := make([]fieldView, 0, len(page.Form.Fields))
	for _, field := range page.Form.Fields {
		fields = append(fields, fieldView{
			Name:        field.Name,
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Control:     string(controlOf(field)),
			InputType:   field.InputType,
			Rows:        field.Rows,
			Required:    field.Constraint.Required,
			Value:       options.Values.Get(field.Name),
			Error:       mapping.Fields[field.Name],
			ErrorID:     "contact-" + field.Name + "-error",
		})
	}

	contact := page.Content.Contact
	submit := submitView{
		Label:        firstNonEmpty(contact.SubmitLabel, defaultSubmitLabel),
		PendingLabel: firstNonEmpty(contact.PendingLabel, defaultPendingLabel),
		Pending:      options.Pending,
	}

	partials := DefaultPartials()
	var themeCtx themeView
	stylesheet := r.assetPrefix + "/" + StylesheetName
	script := r.assetPrefix + "/" + ScriptName
	if cfg := options.Theme; cfg != nil {
		themeCtx = themeView{Name: cfg.Theme, Variant: cfg.Variant, CSSVarsStyle: cssVarsStyle(cfg.CSSVars)}
		for key, path := range cfg.Partials {
			if _, known := partials[key]; known && strings.TrimSpace(path) != "" {
				partials[key] = path
			}
		}
		if cfg.AssetURL != nil {
			if url := cfg.AssetURL(StylesheetAssetKey); url != "" {
				stylesheet = url
			}
			if url := cfg.AssetURL(ScriptAssetKey); url != "" {
				script = url
			}
		}
	}
	partialCtx := make(map[string]string, len(partials))
	for key, path := range partials {
		partialCtx[templateKey(key)] = path
	}

	var notification *notify.Notification
	if options.Notification != nil {
		n := *options.Notification
		notification = &n
	}

	return map[string]any{
		"form":         page.Form,
		"fields":       fields,
		"content":      page.Content,
		"hidden":       render.SortedHiddenFields(options.Hidden),
		"formErrors":   render.MergeFormErrors(options.FormErrors, mapping.Form...),
		"notification": notification,
		"action":       firstNonEmpty(options.Action, page.Form.Endpoint),
		"endpoint":     firstNonEmpty(options.Endpoint, page.Form.Endpoint),
		"submit":       submit,
		"theme":        themeCtx,
		"partials":     partialCtx,
		"assets": map[string]string{
			"stylesheet": stylesheet,
			"script":     script,
			"prefix":     r.assetPrefix,
		},
	}
}

func controlOf(field model.Field) model.Control {
	if field.Control == "" {
		return model.ControlInput
	}
	return field.Control
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		fmt.Fprintf(&b, "%s: %s; ", name, vars[key])
	}
	return strings.TrimSpace(b.String())
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// filterIcon renders a built-in icon name as inline SVG.
func filterIcon(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(portfolio.Icon(strings.TrimSpace(in.String()))), nil
}
