package mocks

import (
	"context"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/registry"
	"github.com/andeslex/casewatch/internal/repository"
	"github.com/stretchr/testify/mock"
)

// ProcessRepository is a mock for the process-store interfaces.
type ProcessRepository struct {
	mock.Mock
}

func (m *ProcessRepository) Create(ctx context.Context, proc *process.MonitoredProcess) error {
	args := m.Called(ctx, proc)
	return args.Error(0)
}

func (m *ProcessRepository) Get(ctx context.Context, id string) (*process.MonitoredProcess, error) {
	args := m.Called(ctx, id)
	if proc, ok := args.Get(0).(*process.MonitoredProcess); ok {
		return proc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProcessRepository) GetByDocket(ctx context.Context, ownerID, docket string) (*process.MonitoredProcess, error) {
	args := m.Called(ctx, ownerID, docket)
	if proc, ok := args.Get(0).(*process.MonitoredProcess); ok {
		return proc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProcessRepository) ListByOwner(ctx context.Context, ownerID string, opts process.ListOptions) ([]process.ProcessSummary, error) {
	args := m.Called(ctx, ownerID, opts)
	if list, ok := args.Get(0).([]process.ProcessSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProcessRepository) ListMonitored(ctx context.Context, ownerID string) ([]process.MonitoredProcess, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]process.MonitoredProcess); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProcessRepository) SetNotifications(ctx context.Context, id string, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}

func (m *ProcessRepository) SetStatus(ctx context.Context, id string, status process.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ProcessRepository) UpdateSyncState(ctx context.Context, id string, state repository.SyncState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *ProcessRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActuationRepository is a mock for the actuation-store interfaces.
type ActuationRepository struct {
	mock.Mock
}

func (m *ActuationRepository) InsertBatch(ctx context.Context, acts []actuation.Actuation) (int, error) {
	args := m.Called(ctx, acts)
	return args.Int(0), args.Error(1)
}

func (m *ActuationRepository) KeySet(ctx context.Context, processID string) (actuation.KeySet, error) {
	args := m.Called(ctx, processID)
	if set, ok := args.Get(0).(actuation.KeySet); ok {
		return set, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActuationRepository) ListByProcess(ctx context.Context, processID string, opts actuation.ListOptions) ([]actuation.Actuation, error) {
	args := m.Called(ctx, processID, opts)
	if list, ok := args.Get(0).([]actuation.Actuation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActuationRepository) MarkSeen(ctx context.Context, processID string) (int, error) {
	args := m.Called(ctx, processID)
	return args.Int(0), args.Error(1)
}

func (m *ActuationRepository) CountByProcess(ctx context.Context, processID string) (int, error) {
	args := m.Called(ctx, processID)
	return args.Int(0), args.Error(1)
}

// CreditLedger is a mock for the metering ledger.
type CreditLedger struct {
	mock.Mock
}

func (m *CreditLedger) Authorize(ctx context.Context, ownerID string, units int) error {
	args := m.Called(ctx, ownerID, units)
	return args.Error(0)
}

func (m *CreditLedger) Consume(ctx context.Context, ownerID string, units int) error {
	args := m.Called(ctx, ownerID, units)
	return args.Error(0)
}

func (m *CreditLedger) Balance(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *CreditLedger) Grant(ctx context.Context, ownerID string, units int) error {
	args := m.Called(ctx, ownerID, units)
	return args.Error(0)
}

// RegistryClient is a mock for the syncer's registry dependency.
type RegistryClient struct {
	mock.Mock
}

func (m *RegistryClient) FetchByDocket(ctx context.Context, docket string) (*registry.Snapshot, error) {
	args := m.Called(ctx, docket)
	if snap, ok := args.Get(0).(*registry.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

// Seeder is a mock for process.Seeder.
type Seeder struct {
	mock.Mock
}

func (m *Seeder) Seed(ctx context.Context, proc *process.MonitoredProcess) (int, error) {
	args := m.Called(ctx, proc)
	return args.Int(0), args.Error(1)
}
