package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDecision(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "reservation-service")

	m.RecordDecision("accepted")
	m.RecordDecision("accepted")
	m.RecordDecision("waitlisted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationDecisions.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationDecisions.WithLabelValues("waitlisted")))
}

func TestRecordDecision_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.RecordDecision("rejected") })
}
