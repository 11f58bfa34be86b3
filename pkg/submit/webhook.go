package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-folio/pkg/model"
)

// DefaultWebhookTimeout bounds a single webhook delivery.
const DefaultWebhookTimeout = 10 * time.Second

// WebhookOption configures a WebhookSender.
type WebhookOption func(*WebhookSender)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(s *WebhookSender) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout overrides the per-delivery timeout.
func WithTimeout(timeout time.Duration) WebhookOption {
	return func(s *WebhookSender) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) WebhookOption {
	return func(s *WebhookSender) {
		s.headers.Set(key, value)
	}
}

// WebhookSender POSTs the payload as JSON to a URL.
type WebhookSender struct {
	url     string
	client  *http.Client
	timeout time.Duration
	headers http.Header
}

// NewWebhookSender constructs a sender for url.
func NewWebhookSender(url string, options ...WebhookOption) (*WebhookSender, error) {
	if url == "" {
		return nil, errors.New("submit: webhook url is required")
	}
	s := &WebhookSender{
		url:     url,
		client:  http.DefaultClient,
		timeout: DefaultWebhookTimeout,
		headers: make(http.Header),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Send delivers the payload. Non-2xx responses are server failures.
func (s *WebhookSender) Send(ctx context.Context, payload model.FormFields) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit: encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &SubmissionError{Reason: Classify(err), Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmissionError{Reason: ReasonServer, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}
