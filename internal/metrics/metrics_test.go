package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordResponse("fallback")
	m.RecordResponse("fallback")
	m.RecordGeneratorFailure("ollama", "fatal")
	m.RecordQuery("success", 20*time.Millisecond, 3)
	m.RecordOwnerContact(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResponsesTotal.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeneratorFailures.WithLabelValues("ollama", "fatal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OwnerContacts.WithLabelValues("true")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.QueryDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordResponse("ollama")
		m.RecordGeneratorFailure("ollama", "transient")
		m.RecordQuery("error", time.Second, 0)
		m.RecordOwnerContact(false)
	})
}
