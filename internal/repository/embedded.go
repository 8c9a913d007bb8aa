package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/google/uuid"
	"github.com/tidwall/buntdb"
)

// Key prefixes for the embedded store
const (
	LeadTable    = "leads"
	SessionTable = "sessions"
	UserTable    = "users"
)

// NewEmbeddedRepositories builds the repository collection on a buntdb file,
// used when no Postgres URL is configured
func NewEmbeddedRepositories(db *buntdb.DB) (*Repositories, error) {
	indexes := []struct {
		name, pattern, field string
	}{
		{"leads_interest", LeadTable + ":*", "interest_area"},
		{"users_email", UserTable + ":*", "email"},
	}
	for _, idx := range indexes {
		err := db.CreateIndex(idx.name, idx.pattern, buntdb.IndexJSON(idx.field))
		if err != nil && err != buntdb.ErrIndexExists {
			return nil, fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	repos := &Repositories{
		Lead:    &embeddedLeadRepository{db: db},
		Session: &embeddedSessionRepository{db: db},
		User:    &embeddedUserRepository{db: db},
	}
	repos.Tx = &embeddedTransactionManager{repos: repos}
	return repos, nil
}

func genKey(table string, id uuid.UUID) string {
	return table + ":" + id.String()
}

func getPivot(t interface{}) string {
	pivot, _ := json.Marshal(t)
	return string(pivot)
}

func putJSON(db *buntdb.DB, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, string(data), nil)
		return err
	})
}

func getJSON(db *buntdb.DB, key string, v interface{}) error {
	return db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(key)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(val), v)
	})
}

// embeddedTransactionManager runs fn against the shared repositories. buntdb
// serializes writers itself, so there is no rollback across repositories.
type embeddedTransactionManager struct {
	repos *Repositories
}

func (tm *embeddedTransactionManager) WithTransaction(ctx context.Context, fn func(repos *Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(tm.repos); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

type embeddedLeadRepository struct {
	db *buntdb.DB
}

func (r *embeddedLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if lead.RelayStatus == "" {
		lead.RelayStatus = models.RelayStatusPending
	}
	if err := putJSON(r.db, genKey(LeadTable, lead.ID), lead); err != nil {
		return apperrors.DatabaseError("failed to create lead", err).WithOperation("CreateLead")
	}
	return nil
}

func (r *embeddedLeadRepository) UpdateRelayStatus(ctx context.Context, id uuid.UUID, status, relayErr string) error {
	lead, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	lead.RelayStatus = status
	lead.RelayError = relayErr
	if status == models.RelayStatusSent {
		now := time.Now().UTC()
		lead.RelayedAt = &now
	}
	if err := putJSON(r.db, genKey(LeadTable, id), lead); err != nil {
		return apperrors.DatabaseError("failed to update lead", err).WithOperation("UpdateRelayStatus")
	}
	return nil
}

func (r *embeddedLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead := &models.Lead{}
	if err := getJSON(r.db, genKey(LeadTable, id), lead); err != nil {
		if err == buntdb.ErrNotFound {
			return nil, apperrors.NotFound(fmt.Sprintf("lead %s not found", id), nil)
		}
		return nil, apperrors.DatabaseError("failed to get lead", err)
	}
	return lead, nil
}

func (r *embeddedLeadRepository) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	all, err := r.scan(filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	limit := listLimit(filter.Limit)
	if filter.Offset >= len(all) {
		return []models.Lead{}, nil
	}
	all = all[filter.Offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// scan walks the interest index when exactly one area is requested and the
// whole table otherwise, applying the rest of the filter in memory
func (r *embeddedLeadRepository) scan(filter models.LeadFilter) ([]models.Lead, error) {
	leads := []models.Lead{}
	collect := func(key, val string) bool {
		var lead models.Lead
		if err := json.Unmarshal([]byte(val), &lead); err == nil && filter.Matches(&lead) {
			leads = append(leads, lead)
		}
		return true
	}

	err := r.db.View(func(tx *buntdb.Tx) error {
		if len(filter.InterestAreas) == 1 {
			return tx.AscendEqual("leads_interest", getPivot(map[string]string{"interest_area": filter.InterestAreas[0]}), collect)
		}
		return tx.AscendKeys(LeadTable+":*", collect)
	})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list leads", err)
	}
	return leads, nil
}

func (r *embeddedLeadRepository) Stats(ctx context.Context) (*models.LeadStats, error) {
	leads, err := r.scan(models.LeadFilter{})
	if err != nil {
		return nil, err
	}
	stats := models.NewLeadStats()
	for _, l := range leads {
		stats.Total++
		stats.ByInterest[l.InterestArea]++
		stats.ByStatus[l.RelayStatus]++
	}
	return stats, nil
}

type embeddedSessionRepository struct {
	db *buntdb.DB
}

func (r *embeddedSessionRepository) Create(ctx context.Context, session *models.AnalysisSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	if err := putJSON(r.db, genKey(SessionTable, session.ID), session); err != nil {
		return apperrors.DatabaseError("failed to create analysis session", err).WithOperation("CreateSession")
	}
	return nil
}

func (r *embeddedSessionRepository) all() ([]models.AnalysisSession, error) {
	sessions := []models.AnalysisSession{}
	err := r.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(SessionTable+":*", func(key, val string) bool {
			var s models.AnalysisSession
			if err := json.Unmarshal([]byte(val), &s); err == nil {
				sessions = append(sessions, s)
			}
			return true
		})
	})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list analysis sessions", err)
	}
	return sessions, nil
}

func (r *embeddedSessionRepository) List(ctx context.Context, limit, offset int) ([]models.AnalysisSession, error) {
	sessions, err := r.all()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	if offset >= len(sessions) {
		return []models.AnalysisSession{}, nil
	}
	sessions = sessions[offset:]
	if l := listLimit(limit); len(sessions) > l {
		sessions = sessions[:l]
	}
	return sessions, nil
}

func (r *embeddedSessionRepository) Stats(ctx context.Context) (*models.SessionStats, error) {
	sessions, err := r.all()
	if err != nil {
		return nil, err
	}
	stats := models.NewSessionStats()
	for i := range sessions {
		stats.Observe(&sessions[i])
	}
	return stats, nil
}

type embeddedUserRepository struct {
	db *buntdb.DB
}

func (r *embeddedUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var su storedUser
	if err := getJSON(r.db, genKey(UserTable, id), &su); err != nil {
		if err == buntdb.ErrNotFound {
			return nil, apperrors.NotFound("user not found", nil)
		}
		return nil, apperrors.DatabaseError("failed to get user", err)
	}
	return su.toUser(), nil
}

func (r *embeddedUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendEqual("users_email", getPivot(map[string]string{"email": email}), func(key, val string) bool {
			var su storedUser
			if json.Unmarshal([]byte(val), &su) == nil && strings.EqualFold(su.Email, email) {
				user = su.toUser()
				return false
			}
			return true
		})
	})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found", nil)
	}
	return user, nil
}

func (r *embeddedUserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return apperrors.Conflict(fmt.Sprintf("user %s already exists", user.Email), nil)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := r.write(user); err != nil {
		return apperrors.DatabaseError("failed to create user", err).WithOperation("CreateUser")
	}
	return nil
}

func (r *embeddedUserRepository) Update(ctx context.Context, user *models.User) error {
	if _, err := r.GetByID(ctx, user.ID); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()
	if err := r.write(user); err != nil {
		return apperrors.DatabaseError("failed to update user", err).WithOperation("UpdateUser")
	}
	return nil
}

// write stores the user including its password hash, which models.User hides from JSON
func (r *embeddedUserRepository) write(user *models.User) error {
	return putJSON(r.db, genKey(UserTable, user.ID), storedUser{User: *user, PasswordHash: user.PasswordHash})
}

type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func (s storedUser) toUser() *models.User {
	u := s.User
	u.PasswordHash = s.PasswordHash
	return &u
}
