package syncer

import (
	"context"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/registry"
	"github.com/andeslex/casewatch/internal/repository"
)

// RegistryClient fetches one case's current state from the judicial registry.
type RegistryClient interface {
	FetchByDocket(ctx context.Context, docket string) (*registry.Snapshot, error)
}

// MeteringGateway authorizes and charges credits for registry usage. One unit
// corresponds to one case actually attempted.
type MeteringGateway interface {
	Authorize(ctx context.Context, ownerID string, units int) error
	Consume(ctx context.Context, ownerID string, units int) error
}

// ProcessRepository provides the process reads and denormalized writes the
// syncer needs.
type ProcessRepository interface {
	Get(ctx context.Context, id string) (*process.MonitoredProcess, error)
	ListMonitored(ctx context.Context, ownerID string) ([]process.MonitoredProcess, error)
	UpdateSyncState(ctx context.Context, id string, state repository.SyncState) error
}

// ActuationRepository provides dedup-key loading and batch inserts.
type ActuationRepository interface {
	InsertBatch(ctx context.Context, acts []actuation.Actuation) (int, error)
	KeySet(ctx context.Context, processID string) (actuation.KeySet, error)
}
