package vanilla

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/portfolio"
	"github.com/goliatone/go-folio/pkg/render"
)

func defaultPage() render.Page {
	return render.Page{
		Form:    model.ContactForm(),
		Content: portfolio.Default().View(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)),
	}
}

func renderDefault(t *testing.T, options render.RenderOptions) string {
	t.Helper()
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), defaultPage(), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_RendersDefaultPage(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{
		Hidden: render.MergeHiddenFields(nil, render.FormInstance("form-1")),
	})

	content := portfolio.Default()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`id="contact-name"`,
		`id="contact-email"`,
		`<textarea id="contact-message"`,
		`type="email"`,
		`data-endpoint="/api/contact"`,
		`action="/api/contact"`,
		`name="_form_id" value="form-1"`,
		`data-pending-label="Enviando..."`,
		"Enviar Mensagem",
		`href="/assets/folio.css"`,
		`src="/assets/folio.js"`,
		content.Owner,
		"<svg",
		"2026",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
	if strings.Contains(html, `aria-invalid="true"`) {
		t.Fatalf("expected no invalid fields on a clean render")
	}
}

func TestRenderer_RendersValuesAndInlineErrors(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{
		Values: model.FormFields{model.FieldName: "Ana", model.FieldEmail: "ana@"},
		Errors: map[string]string{
			model.FieldEmail:   "Email inválido",
			model.FieldMessage: "Mensagem é obrigatória",
			"$.captcha":        "Captcha expirado",
		},
	})

	for _, want := range []string{
		`value="Ana"`,
		`value="ana@"`,
		"Email inválido",
		"Mensagem é obrigatória",
		`id="contact-email-error"`,
		"field--invalid",
		"Captcha expirado",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_EscapesValues(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{
		Values: model.FormFields{model.FieldMessage: "<script>alert(1)</script>"},
	})
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("expected field value to be escaped")
	}
}

func TestRenderer_PendingAndNotification(t *testing.T) {
	success := notify.Success()
	html := renderDefault(t, render.RenderOptions{Pending: true, Notification: &success})

	if !strings.Contains(html, `aria-busy="true"`) {
		t.Fatalf("expected pending submit button")
	}
	if !strings.Contains(html, `data-submit-icon hidden`) || !strings.Contains(html, `<span data-submit-label>Enviando...</span>`) {
		t.Fatalf("expected pending label with the icon kept but hidden")
	}
	for _, want := range []string{notify.SuccessTitle, notify.SuccessBody, "toast--success"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected notification text %q", want)
		}
	}
}

func TestRenderer_AppliesThemeConfig(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "folio",
			Variant: "light",
			CSSVars: map[string]string{"--primary": "#123456", "background": "#fff"},
			AssetURL: func(key string) string {
				if key == StylesheetAssetKey {
					return "/static/light.css"
				}
				return ""
			},
		},
	})

	for _, want := range []string{
		`data-theme="folio"`,
		`data-variant="light"`,
		"--background: #fff; --primary: #123456;",
		`href="/static/light.css"`,
		`src="/assets/folio.js"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_ThemePartialOverride(t *testing.T) {
	files := fstest.MapFS{}
	err := fs.WalkDir(TemplatesFS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(TemplatesFS(), path)
		if err != nil {
			return err
		}
		files[path] = &fstest.MapFile{Data: data}
		return nil
	})
	if err != nil {
		t.Fatalf("copy templates: %v", err)
	}
	files["custom/footer.tmpl"] = &fstest.MapFile{Data: []byte(`<footer>custom {{ content.owner }}</footer>`)}

	renderer, err := New(WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), defaultPage(), render.RenderOptions{
		Theme: &theme.RendererConfig{Partials: map[string]string{
			PartialFooter:  "custom/footer.tmpl",
			"unknown.slot": "custom/missing.tmpl",
		}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<footer>custom "+portfolio.Default().Owner) {
		t.Fatalf("expected footer override to render")
	}
}

func TestRenderer_HonoursCancelledContext(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, defaultPage(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestAssetsFS_ContainsBundle(t *testing.T) {
	for _, name := range []string{StylesheetName, ScriptName, "placeholder.svg"} {
		if _, err := fs.Stat(AssetsFS(), name); err != nil {
			t.Fatalf("expected asset %s: %v", name, err)
		}
	}
}

func TestRenderer_SubmitButtonKeepsIconAndLabelSpans(t *testing.T) {
	html := renderDefault(t, render.RenderOptions{})

	start := strings.Index(html, `<button class="button button--block" type="submit"`)
	if start < 0 {
		t.Fatalf("expected submit button")
	}
	button := html[start:]
	button = button[:strings.Index(button, "</button>")]
	for _, want := range []string{`data-submit-icon>`, "<svg", `<span data-submit-label>Enviar Mensagem</span>`} {
		if !strings.Contains(button, want) {
			t.Fatalf("expected submit button to contain %q:\n%s", want, button)
		}
	}
	if strings.Contains(button, "disabled") {
		t.Fatalf("idle submit button must not be disabled")
	}
}

func TestAssetsFS_ScriptHandlesEnvelope(t *testing.T) {
	script, err := fs.ReadFile(AssetsFS(), ScriptName)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	for _, want := range []string{
		"[data-submit-label]",
		"[data-submit-icon]",
		"body.message",
		"body.formId",
		"form.elements._form_id",
	} {
		if !strings.Contains(string(script), want) {
			t.Fatalf("expected script to reference %q", want)
		}
	}
}

func TestTemplateKey(t *testing.T) {
	if got := templateKey("sections.hero-alt"); got != "sections_hero_alt" {
		t.Fatalf("unexpected key %q", got)
	}
}
