package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-folio/pkg/form"
	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/render"
	"github.com/goliatone/go-folio/pkg/submit"
	"github.com/goliatone/go-folio/pkg/validation"
)

const (
	msgInvalidPayload   = "Não foi possível ler a mensagem enviada."
	msgValidationFailed = "Verifique os campos destacados."
	msgPending          = "Sua mensagem já está sendo enviada."
	msgRateLimited      = "Muitas mensagens em pouco tempo. Aguarde um instante e tente novamente."
	msgInternal         = "Algo deu errado. Tente novamente mais tarde."
)

var errInvalidPayload = errors.New("contact: invalid payload")

func newFormID() string {
	return uuid.NewString()
}

// Handler serves the contact endpoint. It keeps the per-client rate limiters
// and the in-flight controllers, so one Handler must back every route of a
// component.
type Handler struct {
	opts        Options
	limiters    *limiters
	controllers *controllers
}

func NewHandler(fns ...OptionFn) *Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a Handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) *Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return &Handler{
		opts:        opts,
		limiters:    newLimiters(opts.RatePerMinute, opts.Burst),
		controllers: newControllers(opts.Sender, submit.WithObserver(opts.Metrics)),
	}
}

// submission is the result of processing one post, independent of how it is
// written back.
type submission struct {
	status       int
	code         string
	message      string
	formID       string
	values       model.FormFields
	errors       validation.FieldErrors
	notification *notify.Notification
}

func (s submission) ok() bool {
	return s.status == http.StatusOK
}

// ServeHTTP handles JSON and form-encoded posts and answers with the JSON
// envelope.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.opts.Metrics.ObserveRejection(CodeMethodNotAllowed)
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			h.opts.Metrics.ObserveRejection(CodeForbidden)
			status := guardStatus(err)
			writeError(w, status, CodeForbidden, http.StatusText(status))
			return
		}
	}

	values, formID, err := h.decode(w, r)
	if err != nil {
		h.logger(r).DebugContext(r.Context(), "contact payload rejected", "error", err)
		h.opts.Metrics.ObserveRejection(CodeInvalidPayload)
		writeError(w, http.StatusBadRequest, CodeInvalidPayload, msgInvalidPayload)
		return
	}

	result := h.process(r, values, formID)
	resp := Response{
		Code:         result.code,
		Message:      result.message,
		FormID:       result.formID,
		Errors:       result.errors,
		Notification: result.notification,
	}
	if result.ok() {
		resp.Status = statusSuccess
		resp.Data = SuccessData{Reset: true}
	} else {
		resp.Status = statusError
	}
	writeJSON(w, result.status, resp)
}

// FormHandler serves the page at FormPath: GET renders an empty form and POST
// processes a plain form submission and re-renders the page with its result.
func (h *Handler) FormHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.opts.Page == nil {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			h.writePage(w, r, submission{status: http.StatusOK, formID: h.opts.NewFormID()})
		case http.MethodPost:
			if h.opts.Guard != nil {
				if err := h.opts.Guard(r); err != nil {
					h.opts.Metrics.ObserveRejection(CodeForbidden)
					status := guardStatus(err)
					http.Error(w, http.StatusText(status), status)
					return
				}
			}
			r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
			if err := r.ParseForm(); err != nil {
				h.opts.Metrics.ObserveRejection(CodeInvalidPayload)
				h.writePage(w, r, submission{
					status:  http.StatusBadRequest,
					code:    CodeInvalidPayload,
					message: msgInvalidPayload,
					formID:  h.opts.NewFormID(),
				})
				return
			}
			values, formID := h.fromValues(r.PostForm)
			h.writePage(w, r, h.process(r, values, formID))
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, result submission) {
	options := render.RenderOptions{
		Values:       result.values,
		Errors:       result.errors,
		Notification: result.notification,
		Hidden:       render.MergeHiddenFields(nil, render.FormInstance(result.formID)),
		Action:       h.opts.FormPath,
		Endpoint:     h.opts.RoutePath,
	}
	if !result.ok() && result.notification == nil && len(result.errors) == 0 && result.message != "" {
		options.FormErrors = []string{result.message}
	}

	body, err := h.opts.Page.RenderPage(r, options)
	if err != nil {
		h.logger(r).ErrorContext(r.Context(), "contact page render failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(result.status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// process validates, rate limits and submits one post. Posts for a form
// that is still pending are answered with 409 before the limiter is asked.
func (h *Handler) process(r *http.Request, values model.FormFields, formID string) submission {
	ctx := r.Context()
	log := h.logger(r).With("form_id", formID)

	result := h.opts.Validator.Validate(values)
	h.opts.Metrics.ObserveValidation(result)
	if !result.Valid() {
		log.DebugContext(ctx, "contact validation failed", "fields", result.Errors().Fields())
		return submission{
			status:  http.StatusUnprocessableEntity,
			code:    CodeValidationFailed,
			message: msgValidationFailed,
			formID:  formID,
			values:  values,
			errors:  result.Errors(),
		}
	}

	controller, release := h.controllers.acquire(formID)
	defer release()

	// A duplicate post for a pending form must not spend a rate limit token.
	if controller.Pending() {
		return h.pending(values, formID)
	}

	if !h.limiters.Allow(h.opts.ClientKey(r)) {
		h.opts.Metrics.ObserveRejection(CodeRateLimited)
		log.InfoContext(ctx, "contact submission rate limited")
		return submission{
			status:  http.StatusTooManyRequests,
			code:    CodeRateLimited,
			message: msgRateLimited,
			formID:  formID,
			values:  values,
		}
	}

	state := form.New(h.opts.Form,
		form.WithController(controller),
		form.WithValidator(h.opts.Validator),
		form.WithValues(values),
		form.WithNotifier(h.opts.Notifier),
		form.WithLogger(log),
	)
	defer state.Close()

	attempt, err := state.Submit(ctx)
	switch {
	case errors.Is(err, submit.ErrPending):
		return h.pending(values, formID)
	case err != nil:
		log.ErrorContext(ctx, "contact submission error", "error", err)
		return submission{
			status:  http.StatusInternalServerError,
			code:    CodeInternal,
			message: msgInternal,
			formID:  formID,
			values:  values,
		}
	case !attempt.Submitted():
		return submission{
			status:  http.StatusUnprocessableEntity,
			code:    CodeValidationFailed,
			message: msgValidationFailed,
			formID:  formID,
			values:  values,
			errors:  attempt.Result.Errors(),
		}
	}

	outcome := *attempt.Outcome
	notification := outcome.Notification()
	if outcome.OK() {
		log.InfoContext(ctx, "contact message sent")
		return submission{
			status:       http.StatusOK,
			formID:       h.opts.NewFormID(),
			values:       state.Fields(),
			notification: &notification,
		}
	}

	status := http.StatusBadGateway
	if outcome.Reason == submit.ReasonTimeout {
		status = http.StatusGatewayTimeout
	}
	return submission{
		status:       status,
		code:         CodeSubmissionFailed,
		message:      notification.Body,
		formID:       formID,
		values:       values,
		notification: &notification,
	}
}

func (h *Handler) pending(values model.FormFields, formID string) submission {
	h.opts.Metrics.ObserveRejection(CodeSubmissionPending)
	return submission{
		status:  http.StatusConflict,
		code:    CodeSubmissionPending,
		message: msgPending,
		formID:  formID,
		values:  values,
	}
}

// decode reads a JSON object or a form-encoded body into field values and the
// form instance id.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (model.FormFields, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	mediaType := "application/json"
	if raw := r.Header.Get("Content-Type"); raw != "" {
		parsed, _, err := mime.ParseMediaType(raw)
		if err != nil {
			return nil, "", fmt.Errorf("%w: content type: %v", errInvalidPayload, err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, "", fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		values, formID := h.fromValues(r.PostForm)
		return values, formID, nil
	case "application/json":
		var payload map[string]any
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&payload); err != nil {
			return nil, "", fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("%w: trailing data", errInvalidPayload)
		}
		if payload == nil {
			return nil, "", fmt.Errorf("%w: expected object", errInvalidPayload)
		}
		values := make(model.FormFields, len(payload))
		for key, raw := range payload {
			if raw == nil {
				continue
			}
			value, ok := raw.(string)
			if !ok {
				return nil, "", fmt.Errorf("%w: %s must be a string", errInvalidPayload, key)
			}
			values[key] = value
		}
		formID := strings.TrimSpace(values[render.FormInstanceField])
		delete(values, render.FormInstanceField)
		if formID == "" {
			formID = h.opts.NewFormID()
		}
		return values, formID, nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported content type %q", errInvalidPayload, mediaType)
	}
}

func (h *Handler) fromValues(posted map[string][]string) (model.FormFields, string) {
	values := make(model.FormFields, len(h.opts.Form.Fields))
	for _, name := range h.opts.Form.Names() {
		if v, ok := posted[name]; ok && len(v) > 0 {
			values[name] = v[0]
		}
	}
	formID := ""
	if v := posted[render.FormInstanceField]; len(v) > 0 {
		formID = strings.TrimSpace(v[0])
	}
	if formID == "" {
		formID = h.opts.NewFormID()
	}
	return values, formID
}

// logger prefers the request logger installed by httplog.
func (h *Handler) logger(r *http.Request) *slog.Logger {
	if middleware.GetLogEntry(r) != nil {
		return httplog.LogEntry(r.Context())
	}
	return h.opts.Logger
}
