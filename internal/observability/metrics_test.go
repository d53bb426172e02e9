package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/servicelink/admin-service/internal/config"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordTransition("provider_verified")
	m.RecordTransition("provider_verified")
	m.RecordSideEffectFailure("email")
	m.RecordError("/admin/providers/verify", "POST", "NOT_FOUND")
	m.RecordRequest("/admin/providers", "GET", 200, 15*time.Millisecond)
	m.RecordDroppedEvent()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("provider_verified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sideEffectFailures.WithLabelValues("email")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/admin/providers/verify", "POST", "NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/admin/providers", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.droppedEvents))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTransition("x")
		m.RecordSideEffectFailure("x")
		m.RecordError("/", "GET", "X")
		m.RecordRequest("/", "GET", 200, time.Second)
		m.RecordDroppedEvent()
	})
}

func TestNewMetricsUsesIsolatedRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}

func TestNewLoggerLevels(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "WARN"}, config.AppConfig{Name: "admin"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "chatty", Development: true}, config.AppConfig{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
