package process

import (
	"context"

	"github.com/andeslex/casewatch/internal/domain/actuation"
)

// ProcessRepository provides persistence for monitored processes.
type ProcessRepository interface {
	Create(ctx context.Context, proc *MonitoredProcess) error
	Get(ctx context.Context, id string) (*MonitoredProcess, error)
	GetByDocket(ctx context.Context, ownerID, docket string) (*MonitoredProcess, error)
	ListByOwner(ctx context.Context, ownerID string, opts ListOptions) ([]ProcessSummary, error)
	SetNotifications(ctx context.Context, id string, enabled bool) error
	SetStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

// ActuationRepository provides actuation reads and notification-state writes
// needed by the monitor lifecycle.
type ActuationRepository interface {
	ListByProcess(ctx context.Context, processID string, opts actuation.ListOptions) ([]actuation.Actuation, error)
	MarkSeen(ctx context.Context, processID string) (int, error)
}

// Seeder performs the initial registry fetch for a freshly registered process,
// inserting any actuations already on record without flagging them as new.
type Seeder interface {
	Seed(ctx context.Context, proc *MonitoredProcess) (int, error)
}
