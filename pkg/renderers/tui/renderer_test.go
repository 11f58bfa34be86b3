package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-folio/pkg/form"
	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/portfolio"
	"github.com/goliatone/go-folio/pkg/render"
	"github.com/goliatone/go-folio/pkg/submit"
	"github.com/goliatone/go-folio/pkg/validation"
)

type stubDriver struct {
	inputs    []string
	textAreas []string
	confirm   []bool

	inputPos   int
	textPos    int
	confirmPos int

	defaults  []string
	validated []string
	info      []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	s.record(cfg.Default, cfg.Validator, val)
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	s.record(cfg.Default, cfg.Validator, val)
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

// record keeps what a real prompt would have shown: the default and the
// validator verdict for the scripted answer.
func (s *stubDriver) record(def string, validator func(string) error, answer string) {
	s.defaults = append(s.defaults, def)
	if validator == nil {
		return
	}
	if err := validator(answer); err != nil {
		s.validated = append(s.validated, err.Error())
	}
}

func (s *stubDriver) printed(fragment string) bool {
	for _, line := range s.info {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

func contactPage() render.Page {
	return render.Page{Form: model.ContactForm(), Content: portfolio.Default().View(time.Now())}
}

func TestRenderer_RenderCollectsJSON(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ana", "ana@example.com"},
		textAreas: []string{"Olá!"},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), contactPage(), render.RenderOptions{
		Values: model.FormFields{model.FieldName: "Seed"},
		Errors: map[string]string{model.FieldEmail: "Email inválido"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]string{"name": "Ana", "email": "ana@example.com", "message": "Olá!"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}
	if driver.defaults[0] != "Seed" {
		t.Fatalf("expected seeded default, got %q", driver.defaults[0])
	}
	if !driver.printed("Email inválido") {
		t.Fatalf("expected inline error to be printed, got %v", driver.info)
	}
	if renderer.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %s", renderer.ContentType())
	}
}

func TestRenderer_PromptValidatorUsesFieldRules(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "ana@"},
		textAreas: []string{"  "},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(context.Background(), contactPage(), render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"Nome é obrigatório", "Email inválido", "Mensagem é obrigatória"}
	if diff := cmp.Diff(want, driver.validated); diff != "" {
		t.Fatalf("validator messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_OutputFormats(t *testing.T) {
	cases := []struct {
		format      OutputFormat
		contentType string
		want        string
	}{
		{OutputFormatFormURLEncoded, "application/x-www-form-urlencoded", "email=ana%40example.com&message=Oi&name=Ana"},
		{OutputFormatPrettyText, "text/plain; charset=utf-8", "Nome: Ana\nEmail: ana@example.com\nMensagem: Oi\n"},
	}
	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			driver := &stubDriver{inputs: []string{"Ana", "ana@example.com"}, textAreas: []string{"Oi"}}
			renderer, err := New(WithPromptDriver(driver), WithOutputFormat(tc.format))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			out, err := renderer.Render(context.Background(), contactPage(), render.RenderOptions{})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if string(out) != tc.want {
				t.Fatalf("unexpected output %q", out)
			}
			if renderer.ContentType() != tc.contentType {
				t.Fatalf("unexpected content type %s", renderer.ContentType())
			}
		})
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func newSessionState(renderer *Renderer, send submit.SenderFunc) *form.State {
	return form.New(model.ContactForm(),
		form.WithController(submit.NewController(send)),
		form.WithNotifier(renderer.Notifier()),
	)
}

func TestSession_SubmitsAndNotifies(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{" Ana ", "ana@example.com"},
		textAreas: []string{"Olá, tudo bem?"},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	var sent model.FormFields
	state := newSessionState(renderer, func(_ context.Context, payload model.FormFields) error {
		sent = payload
		return nil
	})

	attempt, err := renderer.Session(state).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if attempt.Outcome == nil || !attempt.Outcome.OK() {
		t.Fatalf("expected success outcome, got %+v", attempt)
	}
	if sent.Get(model.FieldName) != "Ana" {
		t.Fatalf("expected trimmed payload, got %v", sent)
	}
	if diff := cmp.Diff(model.ContactForm().Empty(), state.Fields()); diff != "" {
		t.Fatalf("expected cleared fields (-want +got):\n%s", diff)
	}
	for _, want := range []string{"Enviando...", notify.SuccessTitle, notify.SuccessBody} {
		if !driver.printed(want) {
			t.Fatalf("expected %q to be printed, got %v", want, driver.info)
		}
	}
}

func TestSession_PromptsUseStateValidator(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ana", "ana@example.com", "Ana", "ana@ana.dev"},
		textAreas: []string{"Oi", "Oi"},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	var sent model.FormFields
	onlyOwnDomain := validation.New(model.ContactForm(), validation.WithFormatChecker(model.FormatEmail, func(value string) bool {
		return strings.HasSuffix(value, "@ana.dev")
	}))
	state := form.New(model.ContactForm(),
		form.WithValidator(onlyOwnDomain),
		form.WithController(submit.NewController(submit.SenderFunc(func(_ context.Context, payload model.FormFields) error {
			sent = payload
			return nil
		}))),
		form.WithNotifier(renderer.Notifier()),
	)

	if _, err := renderer.Session(state).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"Email inválido"}, driver.validated); diff != "" {
		t.Fatalf("prompt verdicts mismatch (-want +got):\n%s", diff)
	}
	if sent.Get(model.FieldEmail) != "ana@ana.dev" {
		t.Fatalf("expected the accepted address to be sent, got %v", sent)
	}
}

func TestSession_RepromptsAfterValidationFailure(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ana", "ana@", "Ana", "ana@example.com"},
		textAreas: []string{"Oi", "Oi"},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	calls := 0
	state := newSessionState(renderer, func(context.Context, model.FormFields) error {
		calls++
		return nil
	})

	attempt, err := renderer.Session(state).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !attempt.Submitted() || calls != 1 {
		t.Fatalf("expected exactly one submission, got %d", calls)
	}
	if !driver.printed("Email inválido") {
		t.Fatalf("expected email error before re-prompt, got %v", driver.info)
	}
	if driver.defaults[4] != "ana@" {
		t.Fatalf("expected re-prompt seeded with previous email, got %q", driver.defaults[4])
	}
}

func TestSession_FailureKeepsValues(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ana", "ana@example.com"}, textAreas: []string{"Oi"}}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	state := newSessionState(renderer, func(context.Context, model.FormFields) error {
		return &submit.SubmissionError{Reason: submit.ReasonServer, Err: errors.New("boom")}
	})

	attempt, err := renderer.Session(state).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if attempt.Outcome.OK() {
		t.Fatalf("expected failure outcome")
	}
	if state.Fields().Get(model.FieldName) != "Ana" {
		t.Fatalf("expected values kept after failure")
	}
	if !driver.printed(notify.FailureTitle) {
		t.Fatalf("expected failure notification, got %v", driver.info)
	}
}

func TestSession_DeclinedConfirm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ana", "ana@example.com"},
		textAreas: []string{"Oi"},
		confirm:   []bool{false},
	}
	renderer, err := New(WithPromptDriver(driver), WithConfirm(true))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	state := newSessionState(renderer, func(context.Context, model.FormFields) error {
		t.Fatalf("sender must not be called")
		return nil
	})

	if _, err := renderer.Session(state).Run(context.Background()); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if !errors.Is(translateSurveyErr(terminal.InterruptErr), ErrAborted) {
		t.Fatalf("expected interrupt to map to ErrAborted")
	}
	other := errors.New("eof")
	if translateSurveyErr(other) != other {
		t.Fatalf("expected other errors to pass through")
	}
}
