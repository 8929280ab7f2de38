package process

import "time"

// Status represents the lifecycle state of a monitored process
type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusSuspended  Status = "suspended"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusTerminated, StatusSuspended:
		return true
	}
	return false
}

// MonitoredProcess is a judicial case a lawyer tracks for new actuations.
// The last-actuation fields are a denormalized cache mutated only by the
// syncer after a successful sync, never by the owner directly.
type MonitoredProcess struct {
	ID                   string     `json:"id"`
	OwnerID              string     `json:"owner_id"`
	Docket               string     `json:"docket"`
	Forum                *string    `json:"forum,omitempty"`
	CaseType             string     `json:"case_type,omitempty"`
	Plaintiff            string     `json:"plaintiff,omitempty"`
	Defendant            string     `json:"defendant,omitempty"`
	Status               Status     `json:"status"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	LastActuationDate    *time.Time `json:"last_actuation_date,omitempty"`
	LastActuationDesc    *string    `json:"last_actuation_desc,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Monitored reports whether the process is eligible for batch synchronization.
func (p *MonitoredProcess) Monitored() bool {
	return p.Status == StatusActive && p.NotificationsEnabled
}

// ProcessSummary is a lightweight listing row for an owner's cases.
type ProcessSummary struct {
	ID                string     `json:"id"`
	Docket            string     `json:"docket"`
	Forum             *string    `json:"forum,omitempty"`
	CaseType          string     `json:"case_type,omitempty"`
	Status            Status     `json:"status"`
	Notifications     bool       `json:"notifications_enabled"`
	LastActuationDate *time.Time `json:"last_actuation_date,omitempty"`
	UnseenActuations  int        `json:"unseen_actuations"`
}
