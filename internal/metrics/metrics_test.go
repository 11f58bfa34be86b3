package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/submit"
	"github.com/goliatone/go-folio/pkg/validation"
)

func TestMetrics_ObserveSubmission(t *testing.T) {
	m := New()
	m.ObserveSubmission(submit.Success(), time.Second)
	m.ObserveSubmission(submit.Failure(submit.ReasonTimeout), 2*time.Second)
	m.ObserveSubmission(submit.Failure(submit.ReasonTimeout), 2*time.Second)

	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("success", "")); got != 1 {
		t.Fatalf("success count = %v", got)
	}
	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("failure", "timeout")); got != 2 {
		t.Fatalf("timeout count = %v", got)
	}
	if got := testutil.CollectAndCount(m.SubmissionDuration); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
}

func TestMetrics_ObserveValidation(t *testing.T) {
	m := New()
	m.ObserveValidation(validation.Validate(model.FormFields{"email": "nope"}))

	cases := map[[2]string]float64{
		{"name", "required"}:    1,
		{"email", "format"}:     1,
		{"message", "required"}: 1,
	}
	for labels, want := range cases {
		if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues(labels[0], labels[1])); got != want {
			t.Fatalf("%v = %v, want %v", labels, got, want)
		}
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRejection("rate_limited")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `folio_contact_rejections_total{code="rate_limited"} 1`) {
		t.Fatalf("expected rejection counter in exposition, got:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("expected runtime collectors")
	}
}
