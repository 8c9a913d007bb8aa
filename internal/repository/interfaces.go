package repository

import (
	"context"

	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/google/uuid"
)

// LeadRepository defines the interface for contact lead storage
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	UpdateRelayStatus(ctx context.Context, id uuid.UUID, status, relayErr string) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
	Stats(ctx context.Context) (*models.LeadStats, error)
}

// SessionRepository defines the interface for strategist session storage
type SessionRepository interface {
	Create(ctx context.Context, session *models.AnalysisSession) error
	List(ctx context.Context, limit, offset int) ([]models.AnalysisSession, error)
	Stats(ctx context.Context) (*models.SessionStats, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Lead    LeadRepository
	Session SessionRepository
	User    UserRepository
	Tx      TransactionManager
}

// DefaultListLimit caps listings that do not ask for a limit
const DefaultListLimit = 100

func listLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return DefaultListLimit
	}
	return limit
}
