package notify

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSuccess(t *testing.T) {
	want := Notification{Kind: KindSuccess, Title: "Mensagem enviada!", Body: "Obrigado pelo contato. Retornarei em breve!"}
	if diff := cmp.Diff(want, Success()); diff != "" {
		t.Fatalf("success mismatch (-want +got):\n%s", diff)
	}
}

func TestFailureBodies(t *testing.T) {
	seen := map[string]bool{}
	for _, reason := range []string{"network", "timeout", "server"} {
		n := Failure(reason)
		if n.Kind != KindError || n.Title != FailureTitle {
			t.Fatalf("unexpected failure notification %+v", n)
		}
		if seen[n.Body] {
			t.Fatalf("expected distinct body for %s", reason)
		}
		seen[n.Body] = true
	}
	if Failure("other").Body != genericFailureBody {
		t.Fatalf("expected generic body for unknown reason")
	}
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	if _, ok := rec.Last(); ok {
		t.Fatalf("expected empty recorder")
	}
	rec.Notify(context.Background(), Success())
	rec.Notify(context.Background(), Failure("network"))
	if got := len(rec.All()); got != 2 {
		t.Fatalf("expected two notifications, got %d", got)
	}
	last, _ := rec.Last()
	if last.Kind != KindError {
		t.Fatalf("expected last to be error, got %s", last.Kind)
	}
}
