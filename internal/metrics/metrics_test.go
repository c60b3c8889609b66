package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRegistration(t *testing.T) {
	if EventsRegistered == nil {
		t.Error("EventsRegistered metric is nil")
	}
	if RegistrationErrors == nil {
		t.Error("RegistrationErrors metric is nil")
	}
	if ProofsGenerated == nil {
		t.Error("ProofsGenerated metric is nil")
	}
	if VerificationsTotal == nil {
		t.Error("VerificationsTotal metric is nil")
	}
	if VerificationDuration == nil {
		t.Error("VerificationDuration metric is nil")
	}
	if LightChecksTotal == nil {
		t.Error("LightChecksTotal metric is nil")
	}
	if DeferredFullVerifications == nil {
		t.Error("DeferredFullVerifications metric is nil")
	}
}

func TestMetricsIncrement(t *testing.T) {
	EventsRegistered.WithLabelValues("request").Inc()
	RegistrationErrors.WithLabelValues("agent_mismatch").Inc()
	ProofsGenerated.Inc()
	VerificationsTotal.WithLabelValues("valid").Inc()
	VerificationDuration.Observe(0.001)
	LightChecksTotal.WithLabelValues("passed").Inc()
	DeferredFullVerifications.Inc()

	if count := testutil.CollectAndCount(EventsRegistered); count == 0 {
		t.Error("EventsRegistered has no metrics collected")
	}
	if count := testutil.CollectAndCount(VerificationsTotal); count == 0 {
		t.Error("VerificationsTotal has no metrics collected")
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	h := Handler()
	if h == nil {
		t.Fatal("Handler returned nil")
	}
}
