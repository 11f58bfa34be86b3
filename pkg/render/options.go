package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
)

// RenderOptions carry per-request state layered over the Page.
type RenderOptions struct {
	// Values pre-populates the contact form controls.
	Values model.FormFields
	// Errors maps a field name to its inline message. Keys that are not
	// declared fields are shown as form-level errors.
	Errors map[string]string
	// FormErrors are messages not tied to a field.
	FormErrors []string
	// Notification is shown once, e.g. after a non-JS submission.
	Notification *notify.Notification
	// Hidden fields emitted inside the form.
	Hidden map[string]string
	// Action is the URL the form posts to without JavaScript.
	Action string
	// Endpoint is the JSON endpoint the page script submits to.
	Endpoint string
	// Pending renders the submit button in its in-flight state.
	Pending bool
	// Theme carries resolved theme tokens and asset URLs.
	Theme *theme.RendererConfig
}
