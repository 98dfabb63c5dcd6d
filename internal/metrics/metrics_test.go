// file: internal/metrics/metrics_test.go
// version: 2.0.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f9a0b1c2d

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()
}

func TestIncUpstreamLookup(t *testing.T) {
	before := testutil.ToFloat64(upstreamLookups.WithLabelValues("summary", "gemini", OutcomeTimeout))
	IncUpstreamLookup("summary", "gemini", OutcomeTimeout)
	after := testutil.ToFloat64(upstreamLookups.WithLabelValues("summary", "gemini", OutcomeTimeout))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestIncAutofillRequest(t *testing.T) {
	before := testutil.ToFloat64(autofillRequests.WithLabelValues("200"))
	IncAutofillRequest("200")
	if got := testutil.ToFloat64(autofillRequests.WithLabelValues("200")); got-before != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", got-before)
	}
}

func TestObserveDurations(t *testing.T) {
	ObserveAutofillDuration(120 * time.Millisecond)
	ObserveUpstreamDuration("cover", 80*time.Millisecond)
	if n := testutil.CollectAndCount(upstreamDuration); n == 0 {
		t.Error("expected at least one upstream duration series")
	}
}
