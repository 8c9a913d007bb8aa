package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
)

// RetryConfig controls the relay retry worker
type RetryConfig struct {
	Interval  time.Duration `json:"interval"`
	BatchSize int           `json:"batch_size"`
	MaxAge    time.Duration `json:"max_age"`
}

// DefaultRetryConfig returns the worker defaults
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Interval:  5 * time.Minute,
		BatchSize: 3,
		MaxAge:    72 * time.Hour,
	}
}

// RetryStats summarizes one retry cycle
type RetryStats struct {
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Found     int           `json:"found"`
	Delivered int           `json:"delivered"`
	Failed    int           `json:"failed"`
	Deferred  int           `json:"deferred"`
}

// Summary returns a one-line description of the cycle
func (s *RetryStats) Summary() string {
	return fmt.Sprintf("found=%d delivered=%d failed=%d deferred=%d duration=%s",
		s.Found, s.Delivered, s.Failed, s.Deferred, s.Duration)
}

// RelayRetryWorker periodically redelivers leads whose relay failed
type RelayRetryWorker struct {
	leads   repository.LeadRepository
	contact *ContactService
	logger  logger.Logger
	now     func() time.Time

	isRunning bool
	stopChan  chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
}

// NewRelayRetryWorker creates a stopped worker
func NewRelayRetryWorker(leads repository.LeadRepository, contactService *ContactService, log logger.Logger) *RelayRetryWorker {
	return &RelayRetryWorker{
		leads:   leads,
		contact: contactService,
		logger:  log,
		now:     time.Now,
	}
}

// Start begins the retry loop
func (w *RelayRetryWorker) Start(config RetryConfig) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("retry worker is already running")
	}

	w.isRunning = true
	w.stopChan = make(chan struct{})
	w.wg.Add(1)
	go w.run(config)

	w.logger.Info("Relay retry worker started", "interval", config.Interval.String(), "batch_size", config.BatchSize)
	return nil
}

// Stop gracefully stops the retry loop
func (w *RelayRetryWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return fmt.Errorf("retry worker is not running")
	}

	close(w.stopChan)
	w.wg.Wait()
	w.isRunning = false

	w.logger.Info("Relay retry worker stopped")
	return nil
}

// IsRunning returns whether the worker loop is active
func (w *RelayRetryWorker) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isRunning
}

func (w *RelayRetryWorker) run(config RetryConfig) {
	defer w.wg.Done()

	ticker := time.NewTicker(config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), config.Interval)
			stats, err := w.RunOnce(ctx, config)
			cancel()
			if err != nil {
				w.logger.Error("Relay retry cycle failed", err)
			} else if stats.Found > 0 {
				w.logger.Info("Relay retry cycle completed", "summary", stats.Summary())
			}
		}
	}
}

// RunOnce redelivers up to BatchSize failed leads younger than MaxAge
func (w *RelayRetryWorker) RunOnce(ctx context.Context, config RetryConfig) (*RetryStats, error) {
	stats := &RetryStats{StartTime: w.now()}

	after := stats.StartTime.Add(-config.MaxAge)
	leads, err := w.leads.List(ctx, models.LeadFilter{
		RelayStatus:  models.RelayStatusFailed,
		CreatedAfter: &after,
		Limit:        config.BatchSize,
	})
	if err != nil {
		return stats, fmt.Errorf("failed to list undelivered leads: %w", err)
	}
	stats.Found = len(leads)

	for i := range leads {
		err := w.contact.Redeliver(ctx, &leads[i])
		switch {
		case err == nil:
			stats.Delivered++
		case apperrors.HasCode(err, apperrors.ErrCodeRateLimited):
			stats.Deferred = len(leads) - i
			stats.Duration = w.now().Sub(stats.StartTime)
			return stats, nil
		default:
			stats.Failed++
		}
	}

	stats.Duration = w.now().Sub(stats.StartTime)
	return stats, nil
}
