package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnalysisSession records one run of the strategist wizard
type AnalysisSession struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Industry   string         `json:"industry" db:"industry"`
	Size       string         `json:"size" db:"size"`
	Challenges string         `json:"challenges" db:"challenges"`
	Goals      StringList     `json:"goals" db:"goals"`
	Results    SessionResults `json:"results" db:"results"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// SessionResult is the persisted summary of one recommended service
type SessionResult struct {
	Key             string   `json:"key"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	SynergyBoost    bool     `json:"synergy_boost"`
}

// SessionResults stores the ranked results as JSON
type SessionResults []SessionResult

// Value implements driver.Valuer for SessionResults
func (r SessionResults) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for SessionResults
func (r *SessionResults) Scan(value interface{}) error {
	if value == nil {
		*r = SessionResults{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SessionResults", value)
	}

	return json.Unmarshal(bytes, r)
}

// SessionStats aggregates strategist usage
type SessionStats struct {
	TotalSessions   int            `json:"total_sessions"`
	EmptySessions   int            `json:"empty_sessions"`
	TopServiceCount map[string]int `json:"top_service_count"`
	IndustryCount   map[string]int `json:"industry_count"`
}

// NewSessionStats returns stats with initialized maps
func NewSessionStats() *SessionStats {
	return &SessionStats{TopServiceCount: map[string]int{}, IndustryCount: map[string]int{}}
}

// Observe folds one session into the aggregate
func (s *SessionStats) Observe(session *AnalysisSession) {
	s.TotalSessions++
	s.IndustryCount[session.Industry]++
	if len(session.Results) == 0 {
		s.EmptySessions++
		return
	}
	s.TopServiceCount[session.Results[0].Key]++
}
