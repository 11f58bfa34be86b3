// Package notify delivers short user-facing notifications (toasts) about
// submission outcomes.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Kind distinguishes success from failure notifications.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

const (
	SuccessTitle = "Mensagem enviada!"
	SuccessBody  = "Obrigado pelo contato. Retornarei em breve!"
	FailureTitle = "Erro ao enviar mensagem"
)

var failureBodies = map[string]string{
	"network": "Não foi possível conectar. Verifique sua conexão e tente novamente.",
	"timeout": "O envio demorou demais. Tente novamente em instantes.",
	"server":  "O servidor não conseguiu processar sua mensagem. Tente novamente mais tarde.",
}

const genericFailureBody = "Algo deu errado. Tente novamente mais tarde."

// Notification is a titled message shown once to the user.
type Notification struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Success returns the notification shown after a message was sent.
func Success() Notification {
	return Notification{Kind: KindSuccess, Title: SuccessTitle, Body: SuccessBody}
}

// Failure returns the notification for a failed submission. reason is one of
// network, timeout or server; other values get a generic body.
func Failure(reason string) Notification {
	body, ok := failureBodies[reason]
	if !ok {
		body = genericFailureBody
	}
	return Notification{Kind: KindError, Title: FailureTitle, Body: body}
}

// Notifier receives notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function into a Notifier.
type Func func(ctx context.Context, n Notification)

// Notify calls fn.
func (fn Func) Notify(ctx context.Context, n Notification) {
	if fn != nil {
		fn(ctx, n)
	}
}

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) {})

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// All returns the recorded notifications in arrival order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Log returns a Notifier that writes notifications to logger.
func Log(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return Func(func(ctx context.Context, n Notification) {
		level := slog.LevelInfo
		if n.Kind == KindError {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "notification", "kind", n.Kind, "title", n.Title, "body", n.Body)
	})
}
