package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// leadRepository implements LeadRepository on Postgres
type leadRepository struct {
	db dbExecutor
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db dbExecutor) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, from_name, reply_to, interest_area, message, user_agent,
	remote_addr, relay_status, relay_error, created_at, relayed_at`

// Create stores a new lead
func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if lead.RelayStatus == "" {
		lead.RelayStatus = models.RelayStatusPending
	}

	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.FromName, lead.ReplyTo, lead.InterestArea, lead.Message,
		lead.UserAgent, lead.RemoteAddr, lead.RelayStatus, lead.RelayError,
		lead.CreatedAt, lead.RelayedAt,
	)
	if err != nil {
		return apperrors.DatabaseError("failed to create lead", err).WithOperation("CreateLead")
	}
	return nil
}

// UpdateRelayStatus records the outcome of relaying a lead
func (r *leadRepository) UpdateRelayStatus(ctx context.Context, id uuid.UUID, status, relayErr string) error {
	var relayedAt *time.Time
	if status == models.RelayStatusSent {
		now := time.Now().UTC()
		relayedAt = &now
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE leads SET relay_status = $2, relay_error = $3, relayed_at = $4 WHERE id = $1`,
		id, status, relayErr, relayedAt,
	)
	if err != nil {
		return apperrors.DatabaseError("failed to update lead", err).WithOperation("UpdateRelayStatus")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.DatabaseError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("lead %s not found", id), nil)
	}
	return nil
}

// GetByID retrieves a lead by ID
func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound(fmt.Sprintf("lead %s not found", id), nil)
		}
		return nil, apperrors.DatabaseError("failed to get lead", err)
	}
	return lead, nil
}

// List returns leads matching the filter, newest first
func (r *leadRepository) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	where, args := buildLeadWhere(filter)
	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, listLimit(filter.Limit), filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list leads", err)
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, apperrors.DatabaseError("failed to scan lead", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("failed to iterate leads", err)
	}
	return leads, nil
}

// Stats counts leads by interest area and relay status
func (r *leadRepository) Stats(ctx context.Context) (*models.LeadStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT interest_area, relay_status, COUNT(*) FROM leads GROUP BY interest_area, relay_status`)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to compute lead stats", err)
	}
	defer rows.Close()

	stats := models.NewLeadStats()
	for rows.Next() {
		var area, status string
		var count int
		if err := rows.Scan(&area, &status, &count); err != nil {
			return nil, apperrors.DatabaseError("failed to scan lead stats", err)
		}
		stats.Total += count
		stats.ByInterest[area] += count
		stats.ByStatus[status] += count
	}
	return stats, rows.Err()
}

// buildLeadWhere translates a filter into a WHERE clause with positional args
func buildLeadWhere(filter models.LeadFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(filter.InterestAreas) > 0 {
		add("interest_area = ANY($%d)", pq.Array(filter.InterestAreas))
	}
	if filter.RelayStatus != "" {
		add("relay_status = $%d", filter.RelayStatus)
	}
	if filter.CreatedAfter != nil {
		add("created_at >= $%d", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		add("created_at <= $%d", *filter.CreatedBefore)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	lead := &models.Lead{}
	var relayErr sql.NullString
	var relayedAt pq.NullTime
	err := row.Scan(
		&lead.ID, &lead.FromName, &lead.ReplyTo, &lead.InterestArea, &lead.Message,
		&lead.UserAgent, &lead.RemoteAddr, &lead.RelayStatus, &relayErr,
		&lead.CreatedAt, &relayedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.RelayError = relayErr.String
	if relayedAt.Valid {
		t := relayedAt.Time
		lead.RelayedAt = &t
	}
	return lead, nil
}
