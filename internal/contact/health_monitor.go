package contact

import (
	"strings"
	"sync"
	"time"
)

// HealthMonitor tracks relay delivery outcomes
type HealthMonitor struct {
	mu                   sync.RWMutex
	totalAttempts        int64
	delivered            int64
	failed               int64
	consecutiveFailures  int64
	lastFailureTime      time.Time
	lastSuccessTime      time.Time
	recentFailures       []FailureRecord
	maxRecentFailures    int
	failureThreshold     float64
	consecutiveThreshold int64
	now                  func() time.Time
}

// FailureRecord represents a single failed delivery
type FailureRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	InterestArea string    `json:"interest_area"`
	Error        string    `json:"error"`
}

// HealthStatus represents the current health of the relay
type HealthStatus struct {
	IsHealthy           bool            `json:"is_healthy"`
	Configured          bool            `json:"configured"`
	TotalAttempts       int64           `json:"total_attempts"`
	Delivered           int64           `json:"delivered"`
	Failed              int64           `json:"failed"`
	SuccessRate         float64         `json:"success_rate"`
	ConsecutiveFailures int64           `json:"consecutive_failures"`
	LastFailureTime     *time.Time      `json:"last_failure_time,omitempty"`
	LastSuccessTime     *time.Time      `json:"last_success_time,omitempty"`
	RecentFailures      []FailureRecord `json:"recent_failures"`
	HealthIssues        []string        `json:"health_issues"`
	RecommendedActions  []string        `json:"recommended_actions"`
}

// NewHealthMonitor creates a new health monitor
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		maxRecentFailures:    20,
		failureThreshold:     0.2,
		consecutiveThreshold: 3,
		recentFailures:       make([]FailureRecord, 0, 20),
		now:                  time.Now,
	}
}

// RecordSuccess records a delivered message
func (h *HealthMonitor) RecordSuccess() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalAttempts++
	h.delivered++
	h.consecutiveFailures = 0
	h.lastSuccessTime = h.now()
}

// RecordFailure records a failed delivery
func (h *HealthMonitor) RecordFailure(interestArea, errorMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalAttempts++
	h.failed++
	h.consecutiveFailures++
	h.lastFailureTime = h.now()

	h.recentFailures = append(h.recentFailures, FailureRecord{
		Timestamp:    h.lastFailureTime,
		InterestArea: interestArea,
		Error:        errorMsg,
	})
	if len(h.recentFailures) > h.maxRecentFailures {
		h.recentFailures = h.recentFailures[1:]
	}
}

// GetHealthStatus returns the current health status
func (h *HealthMonitor) GetHealthStatus() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := HealthStatus{
		TotalAttempts:       h.totalAttempts,
		Delivered:           h.delivered,
		Failed:              h.failed,
		ConsecutiveFailures: h.consecutiveFailures,
		RecentFailures:      make([]FailureRecord, len(h.recentFailures)),
		HealthIssues:        []string{},
		RecommendedActions:  []string{},
		IsHealthy:           true,
	}
	copy(status.RecentFailures, h.recentFailures)

	if h.totalAttempts > 0 {
		status.SuccessRate = float64(h.delivered) / float64(h.totalAttempts)
	} else {
		status.SuccessRate = 1.0
	}

	if !h.lastFailureTime.IsZero() {
		t := h.lastFailureTime
		status.LastFailureTime = &t
	}
	if !h.lastSuccessTime.IsZero() {
		t := h.lastSuccessTime
		status.LastSuccessTime = &t
	}

	if h.totalAttempts >= 10 && status.SuccessRate < (1.0-h.failureThreshold) {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "High failure rate detected (>20%)")
		status.RecommendedActions = append(status.RecommendedActions, "Check EmailJS service status and quota")
	}

	if h.consecutiveFailures >= h.consecutiveThreshold {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "Multiple consecutive failures detected")
		status.RecommendedActions = append(status.RecommendedActions, "Verify EmailJS service and template IDs")
	}

	h.analyzeFailurePatterns(&status)

	return status
}

// analyzeFailurePatterns reports an error category behind most recent failures
func (h *HealthMonitor) analyzeFailurePatterns(status *HealthStatus) {
	if len(h.recentFailures) < 3 {
		return
	}

	errorCounts := make(map[string]int)
	for _, failure := range h.recentFailures {
		errorCounts[categorizeError(failure.Error)]++
	}

	total := len(h.recentFailures)
	for _, errorType := range []string{"timeout", "rate_limit", "authentication", "network", "not_configured"} {
		if float64(errorCounts[errorType])/float64(total) <= 0.5 {
			continue
		}
		switch errorType {
		case "timeout":
			status.HealthIssues = append(status.HealthIssues, "Frequent timeout errors detected")
			status.RecommendedActions = append(status.RecommendedActions, "Consider increasing the relay timeout")
		case "rate_limit":
			status.HealthIssues = append(status.HealthIssues, "Upstream rate limiting detected")
			status.RecommendedActions = append(status.RecommendedActions, "Lower RELAY_PER_MINUTE or upgrade the EmailJS plan")
		case "authentication":
			status.HealthIssues = append(status.HealthIssues, "Authentication errors detected")
			status.RecommendedActions = append(status.RecommendedActions, "Verify the EmailJS public and private keys")
		case "network":
			status.HealthIssues = append(status.HealthIssues, "Network connectivity issues detected")
			status.RecommendedActions = append(status.RecommendedActions, "Check outbound connectivity and DNS resolution")
		case "not_configured":
			status.HealthIssues = append(status.HealthIssues, "Relay is not configured")
			status.RecommendedActions = append(status.RecommendedActions, "Set EMAILJS_PUBLIC_KEY, EMAILJS_SERVICE_ID and EMAILJS_TEMPLATE_ID")
		}
	}
}

// categorizeError categorizes an error message into a type
func categorizeError(errorMsg string) string {
	errorMsg = strings.ToLower(errorMsg)

	switch {
	case strings.Contains(errorMsg, "not configured"):
		return "not_configured"
	case strings.Contains(errorMsg, "timeout") || strings.Contains(errorMsg, "deadline"):
		return "timeout"
	case strings.Contains(errorMsg, "rate limit") || strings.Contains(errorMsg, "429"):
		return "rate_limit"
	case strings.Contains(errorMsg, "unauthorized") || strings.Contains(errorMsg, "401") || strings.Contains(errorMsg, "403"):
		return "authentication"
	case strings.Contains(errorMsg, "network") || strings.Contains(errorMsg, "connection") || strings.Contains(errorMsg, "dns"):
		return "network"
	}
	return "other"
}

// Reset clears all health monitoring data
func (h *HealthMonitor) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalAttempts = 0
	h.delivered = 0
	h.failed = 0
	h.consecutiveFailures = 0
	h.lastFailureTime = time.Time{}
	h.lastSuccessTime = time.Time{}
	h.recentFailures = h.recentFailures[:0]
}

// IsHealthy returns true if the relay is operating within healthy parameters
func (h *HealthMonitor) IsHealthy() bool {
	return h.GetHealthStatus().IsHealthy
}
