package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/buntdb"

	"github.com/ajharbinger/lunai-strategist/internal/contact"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
)

var errStorage = errors.New("storage unavailable")

// MockSessionRepository implements SessionRepository for testing
type MockSessionRepository struct {
	mu       sync.Mutex
	sessions []models.AnalysisSession
	fail     bool
}

func (m *MockSessionRepository) Create(ctx context.Context, s *models.AnalysisSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStorage
	}
	s.ID = uuid.New()
	m.sessions = append(m.sessions, *s)
	return nil
}

func (m *MockSessionRepository) List(ctx context.Context, limit, offset int) ([]models.AnalysisSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AnalysisSession{}, m.sessions...), nil
}

func (m *MockSessionRepository) Stats(ctx context.Context) (*models.SessionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := models.NewSessionStats()
	for i := range m.sessions {
		stats.Observe(&m.sessions[i])
	}
	return stats, nil
}

// FailingLeadRepository rejects every write
type FailingLeadRepository struct {
	repository.LeadRepository
}

func (FailingLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return errStorage
}

// MockRelay records messages and returns err when set. delay simulates a slow upstream.
type MockRelay struct {
	mu    sync.Mutex
	sent  []contact.Message
	err   error
	delay time.Duration
}

func (m *MockRelay) Send(ctx context.Context, msg contact.Message) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *MockRelay) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockRelay) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newEmbeddedRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := buntdb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos, err := repository.NewEmbeddedRepositories(db)
	require.NoError(t, err)
	return repos
}
