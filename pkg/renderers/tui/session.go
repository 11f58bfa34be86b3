package tui

import (
	"context"

	"github.com/goliatone/go-folio/pkg/form"
)

const confirmMessage = "Enviar mensagem?"

// Session drives a form.State from the terminal: prompt, submit, report.
type Session struct {
	renderer *Renderer
	state    *form.State
	// SubmitLabel is printed while the submission is in flight.
	SubmitLabel string
}

// Session binds the renderer to state. Build the State with
// form.WithNotifier(r.Notifier()) to have outcomes printed.
func (r *Renderer) Session(state *form.State) *Session {
	return &Session{renderer: r, state: state, SubmitLabel: "Enviando..."}
}

// Run prompts until the values pass validation, then submits once and
// returns the attempt. Validation failures re-prompt with the current values
// and errors.
func (s *Session) Run(ctx context.Context) (form.Attempt, error) {
	r := s.renderer
	validator := s.state.Validator()
	for {
		values, err := r.collect(ctx, s.state.Form(), validator, s.state.Fields(), s.state.Errors())
		if err != nil {
			return form.Attempt{}, err
		}
		for name, value := range values {
			if err := s.state.Change(name, value); err != nil {
				return form.Attempt{}, err
			}
		}

		if r.confirm {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: confirmMessage, Default: true})
			if err != nil {
				return form.Attempt{}, err
			}
			if !ok {
				return form.Attempt{}, ErrDeclined
			}
		}

		if err := r.driver.Info(ctx, joinPrefix(r.theme.InfoPrefix, s.SubmitLabel)); err != nil {
			return form.Attempt{}, err
		}
		attempt, err := s.state.Submit(ctx)
		if err != nil {
			return attempt, err
		}
		if !attempt.Result.Valid() {
			continue
		}
		return attempt, nil
	}
}
