package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/registry"
	"github.com/andeslex/casewatch/internal/repository"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// Config tunes pacing and retry behavior. The delays are a rate-limit budget
// against the external registry, not a correctness requirement.
type Config struct {
	// SyncDelay is the inter-case pause for explicit sync-all requests.
	SyncDelay time.Duration
	// SweepDelay is the inter-case pause for background update sweeps.
	SweepDelay time.Duration
	// MaxFetchTries bounds retries of a temporary registry failure within one
	// case's sync. 1 disables retrying.
	MaxFetchTries int
}

// DefaultConfig returns the pacing budget used in production.
func DefaultConfig() Config {
	return Config{
		SyncDelay:     300 * time.Millisecond,
		SweepDelay:    500 * time.Millisecond,
		MaxFetchTries: 3,
	}
}

// Service synchronizes monitored processes against the judicial registry.
// Batches run strictly serially with an enforced delay between cases;
// parallelizing would defeat the provider rate-limit budget.
type Service struct {
	processes  ProcessRepository
	actuations ActuationRepository
	registry   RegistryClient
	metering   MeteringGateway
	cfg        Config
	logger     *slog.Logger
}

// NewService creates a new sync service.
func NewService(
	processes ProcessRepository,
	actuations ActuationRepository,
	registryClient RegistryClient,
	metering MeteringGateway,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.MaxFetchTries < 1 {
		cfg.MaxFetchTries = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processes:  processes,
		actuations: actuations,
		registry:   registryClient,
		metering:   metering,
		cfg:        cfg,
		logger:     logger,
	}
}

// SyncProcess syncs a single case by id after verifying ownership and
// obtaining metering authorization. One unit is charged for the attempt
// whether or not the case syncs cleanly.
func (s *Service) SyncProcess(ctx context.Context, ownerID, processID string) (SyncAttemptResult, error) {
	if ownerID == "" || processID == "" {
		return SyncAttemptResult{}, ErrInvalidInput
	}
	proc, err := s.processes.Get(ctx, processID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SyncAttemptResult{}, process.ErrProcessNotFound
		}
		return SyncAttemptResult{}, fmt.Errorf("loading process: %w", err)
	}
	if proc.OwnerID != ownerID {
		return SyncAttemptResult{}, process.ErrNotOwner
	}

	if err := s.authorize(ctx, ownerID, 1); err != nil {
		return SyncAttemptResult{}, err
	}

	result := s.SyncOne(ctx, proc)
	s.consume(ctx, ownerID, 1)
	return result, nil
}

// SyncAll syncs every active, notification-enabled case owned by the lawyer,
// serially and paced. A failure on one case is recorded and iteration
// continues; the batch never aborts early except on context cancellation,
// which is honored between cases, never mid-case.
func (s *Service) SyncAll(ctx context.Context, ownerID string) (*BatchSyncResult, error) {
	return s.syncBatch(ctx, ownerID, s.cfg.SyncDelay)
}

// SweepAll runs the background update sweep over the same case set, with a
// more generous pacing budget than an explicit sync request.
func (s *Service) SweepAll(ctx context.Context, ownerID string) (*BatchSyncResult, error) {
	return s.syncBatch(ctx, ownerID, s.cfg.SweepDelay)
}

func (s *Service) syncBatch(ctx context.Context, ownerID string, delay time.Duration) (*BatchSyncResult, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}

	procs, err := s.processes.ListMonitored(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading monitored processes: %w", err)
	}

	batch := &BatchSyncResult{}
	if len(procs) == 0 {
		return batch, nil
	}

	if err := s.authorize(ctx, ownerID, len(procs)); err != nil {
		return nil, err
	}

	start := time.Now()
	for i := range procs {
		proc := procs[i]
		batch.append(s.SyncOne(ctx, &proc))

		if i == len(procs)-1 {
			break
		}
		select {
		case <-ctx.Done():
			s.consume(ctx, ownerID, batch.Attempted)
			return batch, ctx.Err()
		case <-time.After(delay):
		}
	}
	s.consume(ctx, ownerID, batch.Attempted)

	s.logger.Info("batch sync finished",
		"owner", ownerID,
		"attempted", batch.Attempted,
		"failed", batch.Failed,
		"new_actuations", batch.NewActuations,
		"elapsed", time.Since(start))
	return batch, nil
}

// SyncOne runs one case's sync to a terminal outcome. Errors never escape;
// they are folded into the returned result so a batch can keep going.
func (s *Service) SyncOne(ctx context.Context, proc *process.MonitoredProcess) SyncAttemptResult {
	result := SyncAttemptResult{ProcessID: proc.ID, Docket: proc.Docket}

	snap, err := s.fetch(ctx, proc.Docket)
	if err != nil {
		s.logger.Warn("registry fetch failed", "docket", proc.Docket, "error", err)
		return fail(result, err)
	}

	if snap.Empty() {
		// The docket is unknown to the provider today. Valid terminal state;
		// nothing to persist.
		result.RegistryEmpty = true
		return result
	}

	existing, err := s.actuations.KeySet(ctx, proc.ID)
	if err != nil {
		return fail(result, fmt.Errorf("loading dedup keys: %w", err))
	}

	fresh := actuation.Reconcile(existing, toDomain(proc.ID, snap.Actuations, true))
	if len(fresh) == 0 {
		if proc.Forum == nil && snap.Forum != nil {
			if err := s.processes.UpdateSyncState(ctx, proc.ID, repository.SyncState{Forum: snap.Forum}); err != nil {
				return fail(result, fmt.Errorf("updating forum: %w", err))
			}
		}
		return result
	}

	inserted, err := s.actuations.InsertBatch(ctx, fresh)
	if err != nil {
		return fail(result, fmt.Errorf("persisting actuations: %w", err))
	}

	state := repository.SyncState{
		Forum:             snap.Forum,
		LastActuationDate: snap.MostRecentDate,
	}
	if snap.MostRecentDesc != "" {
		desc := snap.MostRecentDesc
		state.LastActuationDesc = &desc
	}
	if err := s.processes.UpdateSyncState(ctx, proc.ID, state); err != nil {
		return fail(result, fmt.Errorf("updating sync state: %w", err))
	}

	result.NewActuations = inserted
	if inserted > 0 {
		s.logger.Info("new actuations", "docket", proc.Docket, "count", inserted)
	}
	return result
}

// Seed performs the initial fetch for a freshly registered process. Found
// actuations are inserted without the is-new flag: they predate the monitor
// and must not be surfaced as notifications. Implements process.Seeder.
func (s *Service) Seed(ctx context.Context, proc *process.MonitoredProcess) (int, error) {
	snap, err := s.fetch(ctx, proc.Docket)
	if err != nil {
		return 0, err
	}
	if snap.Empty() {
		return 0, nil
	}

	existing, err := s.actuations.KeySet(ctx, proc.ID)
	if err != nil {
		return 0, fmt.Errorf("loading dedup keys: %w", err)
	}

	fresh := actuation.Reconcile(existing, toDomain(proc.ID, snap.Actuations, false))
	inserted := 0
	if len(fresh) > 0 {
		inserted, err = s.actuations.InsertBatch(ctx, fresh)
		if err != nil {
			return 0, fmt.Errorf("persisting seed actuations: %w", err)
		}
	}

	state := repository.SyncState{
		Forum:             snap.Forum,
		LastActuationDate: snap.MostRecentDate,
	}
	if snap.MostRecentDesc != "" {
		desc := snap.MostRecentDesc
		state.LastActuationDesc = &desc
	}
	if err := s.processes.UpdateSyncState(ctx, proc.ID, state); err != nil {
		return 0, fmt.Errorf("updating sync state: %w", err)
	}
	return inserted, nil
}

// fetch calls the registry, retrying temporary failures with exponential
// backoff. Permanent failures (client errors, malformed payloads) and
// cancellation abort immediately.
func (s *Service) fetch(ctx context.Context, docket string) (*registry.Snapshot, error) {
	operation := func() (*registry.Snapshot, error) {
		snap, err := s.registry.FetchByDocket(ctx, docket)
		if err != nil {
			if fe, ok := registry.AsFetchError(err); ok && !fe.Temporary() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return snap, nil
	}
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(s.cfg.MaxFetchTries)),
	)
}

func (s *Service) authorize(ctx context.Context, ownerID string, units int) error {
	if s.metering == nil {
		return nil
	}
	if err := s.metering.Authorize(ctx, ownerID, units); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthorizationDenied, err)
	}
	return nil
}

func (s *Service) consume(ctx context.Context, ownerID string, units int) {
	if s.metering == nil || units == 0 {
		return
	}
	// The charge covers work already done, so it must land even when the
	// caller cancelled mid-batch.
	ctx = context.WithoutCancel(ctx)
	if err := s.metering.Consume(ctx, ownerID, units); err != nil {
		// Work already happened; losing the charge is an accounting gap, not
		// a sync failure.
		s.logger.Error("credit consumption failed", "owner", ownerID, "units", units, "error", err)
	}
}

func toDomain(processID string, acts []registry.Actuation, isNew bool) []actuation.Actuation {
	out := make([]actuation.Actuation, 0, len(acts))
	now := time.Now()
	for _, a := range acts {
		out = append(out, actuation.Actuation{
			ID:         uuid.NewString(),
			ProcessID:  processID,
			Date:       a.Date,
			Type:       a.Type,
			Annotation: a.Annotation,
			StartDate:  a.StartDate,
			EndDate:    a.EndDate,
			IsNew:      isNew,
			CreatedAt:  now,
		})
	}
	return out
}

func fail(r SyncAttemptResult, err error) SyncAttemptResult {
	r.Err = err
	r.ErrDetail = err.Error()
	return r
}
