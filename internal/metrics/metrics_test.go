package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInit(t *testing.T) {
	// Call Init multiple times to test idempotency.
	Init()
	Init()

	if assessmentsTotal == nil || assessmentDurationSeconds == nil ||
		resolverFailuresTotal == nil || chatRequestsTotal == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}

	ObserveAssessment("url", "completed", 1200*time.Millisecond)
	if val := testutil.ToFloat64(assessmentsTotal.WithLabelValues("url", "completed")); val != 1 {
		t.Errorf("expected assessments counter to be 1, got %f", val)
	}

	ObserveResolverFailure("blocked_host")
	ObserveResolverFailure("blocked_host")
	if val := testutil.ToFloat64(resolverFailuresTotal.WithLabelValues("blocked_host")); val != 2 {
		t.Errorf("expected resolver failure counter to be 2, got %f", val)
	}

	ObserveChat("ok")
	if val := testutil.ToFloat64(chatRequestsTotal.WithLabelValues("ok")); val != 1 {
		t.Errorf("expected chat counter to be 1, got %f", val)
	}
}

func TestHandler(t *testing.T) {
	Init()
	if Handler() == nil {
		t.Fatal("expected a metrics handler")
	}
}
