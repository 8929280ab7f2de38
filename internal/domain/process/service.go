package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/repository"
	"github.com/google/uuid"
)

// Service handles monitor lifecycle business logic.
type Service struct {
	processes  ProcessRepository
	actuations ActuationRepository
	seeder     Seeder
	logger     *slog.Logger
}

// NewService creates a new process service.
func NewService(processes ProcessRepository, actuations ActuationRepository, seeder Seeder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processes:  processes,
		actuations: actuations,
		seeder:     seeder,
		logger:     logger,
	}
}

// AddMonitorRequest describes a monitor registration request.
type AddMonitorRequest struct {
	Docket    string
	CaseType  string
	Plaintiff string
	Defendant string
	// Seed controls whether an initial registry fetch runs on registration.
	Seed bool
}

// AddMonitor registers a docket for monitoring and, when requested, seeds the
// actuations already on record. Seeded actuations are not flagged as new; they
// predate the monitor and must not surface as notifications.
func (s *Service) AddMonitor(ctx context.Context, ownerID string, req AddMonitorRequest) (*MonitoredProcess, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	docket, err := NormalizeDocket(req.Docket)
	if err != nil {
		return nil, err
	}

	if _, err := s.processes.GetByDocket(ctx, ownerID, docket); err == nil {
		return nil, ErrDuplicateDocket
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking docket: %w", err)
	}

	now := time.Now()
	proc := &MonitoredProcess{
		ID:                   uuid.NewString(),
		OwnerID:              ownerID,
		Docket:               docket,
		CaseType:             req.CaseType,
		Plaintiff:            req.Plaintiff,
		Defendant:            req.Defendant,
		Status:               StatusActive,
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.processes.Create(ctx, proc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateDocket
		}
		return nil, fmt.Errorf("creating process: %w", err)
	}

	if req.Seed && s.seeder != nil {
		seeded, err := s.seeder.Seed(ctx, proc)
		if err != nil {
			// The monitor stands; the next sync picks the history up.
			s.logger.Warn("initial seed failed", "docket", proc.Docket, "error", err)
		} else {
			s.logger.Info("monitor seeded", "docket", proc.Docket, "actuations", seeded)
		}
		if reloaded, err := s.processes.Get(ctx, proc.ID); err == nil {
			proc = reloaded
		}
	}

	return proc, nil
}

// RemoveMonitor hard-deletes a process after verifying ownership. The store
// cascades the process's actuations.
func (s *Service) RemoveMonitor(ctx context.Context, ownerID, processID string) error {
	proc, err := s.owned(ctx, ownerID, processID)
	if err != nil {
		return err
	}
	if err := s.processes.Delete(ctx, proc.ID); err != nil {
		return fmt.Errorf("deleting process: %w", err)
	}
	s.logger.Info("monitor removed", "docket", proc.Docket, "owner", ownerID)
	return nil
}

// Get returns a process by id, verifying ownership.
func (s *Service) Get(ctx context.Context, ownerID, processID string) (*MonitoredProcess, error) {
	return s.owned(ctx, ownerID, processID)
}

// List returns summaries of an owner's processes.
func (s *Service) List(ctx context.Context, ownerID string, opts ListOptions) ([]ProcessSummary, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.processes.ListByOwner(ctx, ownerID, opts)
}

// SetNotifications toggles the notification flag. Disabling it stops future
// sync attempts without deleting history.
func (s *Service) SetNotifications(ctx context.Context, ownerID, processID string, enabled bool) error {
	proc, err := s.owned(ctx, ownerID, processID)
	if err != nil {
		return err
	}
	if err := s.processes.SetNotifications(ctx, proc.ID, enabled); err != nil {
		return fmt.Errorf("updating notifications: %w", err)
	}
	return nil
}

// SetStatus updates the lifecycle state of a process.
func (s *Service) SetStatus(ctx context.Context, ownerID, processID string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	proc, err := s.owned(ctx, ownerID, processID)
	if err != nil {
		return err
	}
	if err := s.processes.SetStatus(ctx, proc.ID, status); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	return nil
}

// ListActuations returns a process's actuations, newest first.
func (s *Service) ListActuations(ctx context.Context, ownerID, processID string, opts actuation.ListOptions) ([]actuation.Actuation, error) {
	proc, err := s.owned(ctx, ownerID, processID)
	if err != nil {
		return nil, err
	}
	return s.actuations.ListByProcess(ctx, proc.ID, opts)
}

// MarkActuationsSeen clears the is-new flag on a process's actuations, the
// downstream consumer's acknowledgement that they were surfaced to the user.
func (s *Service) MarkActuationsSeen(ctx context.Context, ownerID, processID string) (int, error) {
	proc, err := s.owned(ctx, ownerID, processID)
	if err != nil {
		return 0, err
	}
	cleared, err := s.actuations.MarkSeen(ctx, proc.ID)
	if err != nil {
		return 0, fmt.Errorf("marking actuations seen: %w", err)
	}
	return cleared, nil
}

func (s *Service) owned(ctx context.Context, ownerID, processID string) (*MonitoredProcess, error) {
	if ownerID == "" || processID == "" {
		return nil, ErrInvalidInput
	}
	proc, err := s.processes.Get(ctx, processID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, fmt.Errorf("loading process: %w", err)
	}
	if proc.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return proc, nil
}
