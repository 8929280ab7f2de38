package mcp

import (
	"time"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/domain/syncer"
	"github.com/andeslex/casewatch/internal/registry"
)

// ProcessView is the tool-facing shape of a monitored process.
type ProcessView struct {
	ID                   string     `json:"id"`
	Docket               string     `json:"docket"`
	Forum                string     `json:"forum,omitempty"`
	CaseType             string     `json:"case_type,omitempty"`
	Plaintiff            string     `json:"plaintiff,omitempty"`
	Defendant            string     `json:"defendant,omitempty"`
	Status               string     `json:"status"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	LastActuationDate    *time.Time `json:"last_actuation_date,omitempty"`
	LastActuationDesc    string     `json:"last_actuation_desc,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

func toProcessView(p *process.MonitoredProcess) ProcessView {
	v := ProcessView{
		ID:                   p.ID,
		Docket:               p.Docket,
		CaseType:             p.CaseType,
		Plaintiff:            p.Plaintiff,
		Defendant:            p.Defendant,
		Status:               string(p.Status),
		NotificationsEnabled: p.NotificationsEnabled,
		LastActuationDate:    p.LastActuationDate,
		CreatedAt:            p.CreatedAt,
	}
	if p.Forum != nil {
		v.Forum = *p.Forum
	}
	if p.LastActuationDesc != nil {
		v.LastActuationDesc = *p.LastActuationDesc
	}
	return v
}

// CaseSummaryView is one row of a list_cases response.
type CaseSummaryView struct {
	ID                string     `json:"id"`
	Docket            string     `json:"docket"`
	Forum             string     `json:"forum,omitempty"`
	CaseType          string     `json:"case_type,omitempty"`
	Status            string     `json:"status"`
	Notifications     bool       `json:"notifications_enabled"`
	LastActuationDate *time.Time `json:"last_actuation_date,omitempty"`
	UnseenActuations  int        `json:"unseen_actuations"`
}

func toCaseSummaryView(s process.ProcessSummary) CaseSummaryView {
	v := CaseSummaryView{
		ID:                s.ID,
		Docket:            s.Docket,
		CaseType:          s.CaseType,
		Status:            string(s.Status),
		Notifications:     s.Notifications,
		LastActuationDate: s.LastActuationDate,
		UnseenActuations:  s.UnseenActuations,
	}
	if s.Forum != nil {
		v.Forum = *s.Forum
	}
	return v
}

// ActuationView is the tool-facing shape of a stored actuation.
type ActuationView struct {
	ID         string     `json:"id"`
	Date       time.Time  `json:"date"`
	Type       string     `json:"type"`
	Annotation string     `json:"annotation"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsNew      bool       `json:"is_new"`
}

func toActuationView(a actuation.Actuation) ActuationView {
	return ActuationView{
		ID:         a.ID,
		Date:       a.Date,
		Type:       a.Type,
		Annotation: a.Annotation,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		IsNew:      a.IsNew,
	}
}

// RegistryActuationView is one actuation as the registry reports it, without
// any stored identity.
type RegistryActuationView struct {
	Date       time.Time  `json:"date"`
	Type       string     `json:"type"`
	Annotation string     `json:"annotation"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

func toRegistryActuationViews(in []registry.Actuation) []RegistryActuationView {
	out := make([]RegistryActuationView, 0, len(in))
	for _, a := range in {
		out = append(out, RegistryActuationView{
			Date:       a.Date,
			Type:       a.Type,
			Annotation: a.Annotation,
			StartDate:  a.StartDate,
			EndDate:    a.EndDate,
		})
	}
	return out
}

// SyncResultView is the tool-facing outcome of one case sync.
type SyncResultView struct {
	ProcessID     string `json:"process_id"`
	Docket        string `json:"docket"`
	NewActuations int    `json:"new_actuations"`
	Error         string `json:"error,omitempty"`
	RegistryEmpty bool   `json:"registry_empty,omitempty"`
}

func toSyncResultView(r syncer.SyncAttemptResult) SyncResultView {
	return SyncResultView{
		ProcessID:     r.ProcessID,
		Docket:        r.Docket,
		NewActuations: r.NewActuations,
		Error:         r.ErrDetail,
		RegistryEmpty: r.RegistryEmpty,
	}
}

// BatchSyncView aggregates a sync_all run.
type BatchSyncView struct {
	Attempted     int              `json:"attempted"`
	Succeeded     int              `json:"succeeded"`
	Failed        int              `json:"failed"`
	NewActuations int              `json:"new_actuations"`
	Results       []SyncResultView `json:"results"`
}

func toBatchSyncView(b *syncer.BatchSyncResult) BatchSyncView {
	v := BatchSyncView{
		Attempted:     b.Attempted,
		Succeeded:     b.Succeeded,
		Failed:        b.Failed,
		NewActuations: b.NewActuations,
		Results:       make([]SyncResultView, 0, len(b.Results)),
	}
	for _, r := range b.Results {
		v.Results = append(v.Results, toSyncResultView(r))
	}
	return v
}
