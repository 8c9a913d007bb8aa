package repository

import (
	"context"
	"time"

	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/google/uuid"
)

// sessionRepository implements SessionRepository on Postgres
type sessionRepository struct {
	db dbExecutor
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db dbExecutor) SessionRepository {
	return &sessionRepository{db: db}
}

// Create stores a strategist run
func (r *sessionRepository) Create(ctx context.Context, session *models.AnalysisSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO analysis_sessions (id, industry, size, challenges, goals, results, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.Industry, session.Size, session.Challenges,
		session.Goals, session.Results, session.CreatedAt,
	)
	if err != nil {
		return apperrors.DatabaseError("failed to create analysis session", err).WithOperation("CreateSession")
	}
	return nil
}

// List returns sessions newest first
func (r *sessionRepository) List(ctx context.Context, limit, offset int) ([]models.AnalysisSession, error) {
	query := `
		SELECT id, industry, size, challenges, goals, results, created_at
		FROM analysis_sessions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, listLimit(limit), offset)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list analysis sessions", err)
	}
	defer rows.Close()

	sessions := []models.AnalysisSession{}
	for rows.Next() {
		var s models.AnalysisSession
		if err := rows.Scan(&s.ID, &s.Industry, &s.Size, &s.Challenges, &s.Goals, &s.Results, &s.CreatedAt); err != nil {
			return nil, apperrors.DatabaseError("failed to scan analysis session", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("failed to iterate analysis sessions", err)
	}
	return sessions, nil
}

// Stats aggregates sessions by industry and top-ranked service
func (r *sessionRepository) Stats(ctx context.Context) (*models.SessionStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT industry, COALESCE(results->0->>'key', ''), COUNT(*)
		FROM analysis_sessions
		GROUP BY 1, 2
	`)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to compute session stats", err)
	}
	defer rows.Close()

	stats := models.NewSessionStats()
	for rows.Next() {
		var industry, top string
		var count int
		if err := rows.Scan(&industry, &top, &count); err != nil {
			return nil, apperrors.DatabaseError("failed to scan session stats", err)
		}
		stats.TotalSessions += count
		stats.IndustryCount[industry] += count
		if top == "" {
			stats.EmptySessions += count
		} else {
			stats.TopServiceCount[top] += count
		}
	}
	return stats, rows.Err()
}
