package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lead is a contact-form submission accepted by the relay
type Lead struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FromName     string     `json:"from_name" db:"from_name"`
	ReplyTo      string     `json:"reply_to" db:"reply_to"`
	InterestArea string     `json:"interest_area" db:"interest_area"`
	Message      string     `json:"message" db:"message"`
	UserAgent    string     `json:"user_agent" db:"user_agent"`
	RemoteAddr   string     `json:"remote_addr" db:"remote_addr"`
	RelayStatus  string     `json:"relay_status" db:"relay_status"`
	RelayError   string     `json:"relay_error,omitempty" db:"relay_error"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	RelayedAt    *time.Time `json:"relayed_at,omitempty" db:"relayed_at"`
}

// RelayStatus values for a lead
const (
	RelayStatusPending = "pending"
	RelayStatusSent    = "sent"
	RelayStatusFailed  = "failed"
)

// LeadFilter narrows lead listings and exports
type LeadFilter struct {
	InterestAreas []string   `json:"interest_areas"`
	RelayStatus   string     `json:"relay_status"`
	CreatedAfter  *time.Time `json:"created_after"`
	CreatedBefore *time.Time `json:"created_before"`
	Limit         int        `json:"limit"`
	Offset        int        `json:"offset"`
}

// Matches applies the filter in memory, used by stores that cannot express it as a query
func (f LeadFilter) Matches(l *Lead) bool {
	if len(f.InterestAreas) > 0 {
		found := false
		for _, a := range f.InterestAreas {
			if a == l.InterestArea {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.RelayStatus != "" && f.RelayStatus != l.RelayStatus {
		return false
	}
	if f.CreatedAfter != nil && l.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && l.CreatedAt.After(*f.CreatedBefore) {
		return false
	}
	return true
}

// StringList stores an ordered list of strings as JSON
type StringList []string

// Value implements driver.Valuer for StringList
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for StringList
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(bytes, s)
}

// LeadStats summarizes captured leads for the admin dashboard
type LeadStats struct {
	Total      int            `json:"total"`
	ByInterest map[string]int `json:"by_interest"`
	ByStatus   map[string]int `json:"by_status"`
}

// NewLeadStats returns stats with initialized maps
func NewLeadStats() *LeadStats {
	return &LeadStats{ByInterest: map[string]int{}, ByStatus: map[string]int{}}
}
