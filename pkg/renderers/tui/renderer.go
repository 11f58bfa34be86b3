package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/render"
	"github.com/goliatone/go-folio/pkg/validation"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal sessions: it prompts for
// every field and returns the collected values serialized.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	confirm      bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for each field of page.Form, seeded with options.Values, and
// serializes the answers. Inline errors in options.Errors are printed before
// the matching prompt.
func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	validator := validation.New(page.Form)
	values, err := r.collect(ctx, page.Form, validator, options.Values, options.Errors)
	if err != nil {
		return nil, err
	}
	return r.serialize(page.Form, values)
}

// Notifier prints notifications through the driver.
func (r *Renderer) Notifier() notify.Notifier {
	return notify.Func(func(ctx context.Context, n notify.Notification) {
		prefix := r.theme.SuccessPrefix
		if n.Kind == notify.KindError {
			prefix = r.theme.ErrorPrefix
		}
		_ = r.driver.Info(ctx, joinPrefix(prefix, n.Title))
		_ = r.driver.Info(ctx, "  "+n.Body)
	})
}

func (r *Renderer) collect(ctx context.Context, form model.FormModel, validator *validation.Validator, seed model.FormFields, errs map[string]string) (model.FormFields, error) {
	values := form.Empty()
	for _, field := range form.Fields {
		if msg := strings.TrimSpace(errs[field.Name]); msg != "" {
			if err := r.driver.Info(ctx, joinPrefix(r.theme.ErrorPrefix, msg)); err != nil {
				return nil, err
			}
		}
		value, err := r.promptField(ctx, field, validator, seed.Get(field.Name))
		if err != nil {
			return nil, err
		}
		values[field.Name] = value
	}
	return values, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, validator *validation.Validator, current string) (string, error) {
	check := func(value string) error {
		if issue, _ := validator.ValidateField(field.Name, value); issue != nil {
			return errors.New(issue.Message)
		}
		return nil
	}

	if field.Control == model.ControlTextarea {
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message:   field.Label,
			Default:   current,
			Help:      field.Placeholder,
			Validator: check,
		})
	}
	return r.driver.Input(ctx, InputConfig{
		Message:   field.Label,
		Default:   current,
		Help:      field.Placeholder,
		Validator: check,
	})
}

func (r *Renderer) serialize(form model.FormModel, values model.FormFields) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", field.Label, values.Get(field.Name))
		}
		return []byte(b.String()), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

func joinPrefix(prefix, msg string) string {
	if prefix == "" {
		return msg
	}
	return prefix + " " + msg
}
