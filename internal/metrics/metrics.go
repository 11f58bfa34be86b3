// Package metrics exposes prometheus counters for contact submissions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-folio/pkg/submit"
	"github.com/goliatone/go-folio/pkg/validation"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	Submissions        *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
	ValidationFailures *prometheus.CounterVec
	Rejections         *prometheus.CounterVec
	Deliveries         *prometheus.CounterVec
	DeliveryDuration   prometheus.Histogram
}

var _ submit.Observer = (*Metrics)(nil)

// New registers the folio collectors plus the Go runtime collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_submissions_total",
			Help: "Contact submissions handed to the sender, by outcome",
		}, []string{"status", "reason"}),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "folio_contact_submission_duration_seconds",
			Help:    "Time from accepted submit to outcome",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2.5, 5, 10},
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_validation_failures_total",
			Help: "Field validation failures, by field and rule",
		}, []string{"field", "rule"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_rejections_total",
			Help: "Requests rejected before reaching the sender, by error code",
		}, []string{"code"}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_deliveries_total",
			Help: "Sender delivery attempts, by outcome",
		}, []string{"status", "reason"}),
		DeliveryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "folio_contact_delivery_duration_seconds",
			Help:    "Time spent inside the sender",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2.5, 5, 10},
		}),
	}
}

// ObserveSubmission implements submit.Observer.
func (m *Metrics) ObserveSubmission(outcome submit.Outcome, elapsed time.Duration) {
	m.Submissions.WithLabelValues(string(outcome.Status), string(outcome.Reason)).Inc()
	m.SubmissionDuration.Observe(elapsed.Seconds())
}

// ObserveValidation counts each failing field of an invalid result.
func (m *Metrics) ObserveValidation(result validation.Result) {
	for _, issue := range result.Issues() {
		m.ValidationFailures.WithLabelValues(issue.Field, string(issue.Rule)).Inc()
	}
}

// ObserveRejection counts a request refused with code.
func (m *Metrics) ObserveRejection(code string) {
	m.Rejections.WithLabelValues(code).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
