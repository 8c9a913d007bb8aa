package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitor_RecordSuccessAndFailure(t *testing.T) {
	monitor := NewHealthMonitor()
	assert.True(t, monitor.IsHealthy())

	monitor.RecordSuccess()
	monitor.RecordSuccess()
	monitor.RecordSuccess()
	monitor.RecordFailure("branding", "emailjs returned status 500")

	status := monitor.GetHealthStatus()
	assert.Equal(t, int64(4), status.TotalAttempts)
	assert.Equal(t, int64(3), status.Delivered)
	assert.Equal(t, int64(1), status.Failed)
	assert.Equal(t, 0.75, status.SuccessRate)
	assert.Len(t, status.RecentFailures, 1)
	assert.Equal(t, "branding", status.RecentFailures[0].InterestArea)
	assert.NotNil(t, status.LastFailureTime)
	assert.NotNil(t, status.LastSuccessTime)
	assert.True(t, status.IsHealthy)
}

func TestHealthMonitor_ConsecutiveFailures(t *testing.T) {
	monitor := NewHealthMonitor()
	for i := 0; i < 3; i++ {
		monitor.RecordFailure("digital", "dial tcp: connection refused")
	}

	status := monitor.GetHealthStatus()
	assert.False(t, status.IsHealthy)
	assert.Equal(t, int64(3), status.ConsecutiveFailures)
	assert.Contains(t, status.HealthIssues, "Multiple consecutive failures detected")
	assert.Contains(t, status.HealthIssues, "Network connectivity issues detected")

	monitor.RecordSuccess()
	status = monitor.GetHealthStatus()
	assert.Equal(t, int64(0), status.ConsecutiveFailures)
}

func TestHealthMonitor_RecentFailuresBounded(t *testing.T) {
	monitor := NewHealthMonitor()
	for i := 0; i < 30; i++ {
		monitor.RecordFailure("content", ErrNotConfigured.Error())
	}

	status := monitor.GetHealthStatus()
	assert.Len(t, status.RecentFailures, 20)
	assert.Contains(t, status.HealthIssues, "Relay is not configured")
	assert.Contains(t, status.HealthIssues, "High failure rate detected (>20%)")

	monitor.Reset()
	assert.True(t, monitor.IsHealthy())
	assert.Empty(t, monitor.GetHealthStatus().RecentFailures)
}

func TestCategorizeError(t *testing.T) {
	assert.Equal(t, "timeout", categorizeError("context deadline exceeded"))
	assert.Equal(t, "rate_limit", categorizeError("emailjs returned status 429"))
	assert.Equal(t, "authentication", categorizeError("emailjs returned status 403"))
	assert.Equal(t, "network", categorizeError("no such host: dns failure"))
	assert.Equal(t, "not_configured", categorizeError("email relay not configured"))
	assert.Equal(t, "other", categorizeError("template params invalid"))
}
