package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/repository"
)

// ProcessRepository persists monitored processes in SQLite. It satisfies the
// process-store interfaces declared by the process and syncer packages.
type ProcessRepository struct {
	db *DB
}

// NewProcessRepository creates a new ProcessRepository
func NewProcessRepository(db *DB) *ProcessRepository {
	return &ProcessRepository{db: db}
}

const processColumns = `
	id, owner_id, docket, forum, case_type, plaintiff, defendant,
	status, notifications_enabled, last_actuation_date, last_actuation_desc,
	created_at, updated_at
`

// Create inserts a new monitored process
func (r *ProcessRepository) Create(ctx context.Context, proc *process.MonitoredProcess) error {
	query := `
		INSERT INTO processes (` + processColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proc.ID,
		proc.OwnerID,
		proc.Docket,
		proc.Forum,
		proc.CaseType,
		proc.Plaintiff,
		proc.Defendant,
		proc.Status,
		proc.NotificationsEnabled,
		proc.LastActuationDate,
		proc.LastActuationDesc,
		proc.CreatedAt,
		proc.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create process: %w", err)
	}

	return nil
}

// Get retrieves a process by id
func (r *ProcessRepository) Get(ctx context.Context, id string) (*process.MonitoredProcess, error) {
	query := `SELECT ` + processColumns + ` FROM processes WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByDocket retrieves an owner's process by docket number
func (r *ProcessRepository) GetByDocket(ctx context.Context, ownerID, docket string) (*process.MonitoredProcess, error) {
	query := `SELECT ` + processColumns + ` FROM processes WHERE owner_id = ? AND docket = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID, docket))
}

// ListByOwner returns summaries of an owner's processes, newest registration
// first, with the count of unseen actuations per case.
func (r *ProcessRepository) ListByOwner(ctx context.Context, ownerID string, opts process.ListOptions) ([]process.ProcessSummary, error) {
	query := `
		SELECT p.id, p.docket, p.forum, p.case_type, p.status,
		       p.notifications_enabled, p.last_actuation_date,
		       COUNT(a.id) FILTER (WHERE a.is_new = 1) AS unseen
		FROM processes p
		LEFT JOIN actuations a ON a.process_id = p.id
		WHERE p.owner_id = ?
	`
	args := []any{ownerID}

	var filters []string
	if opts.Status != nil {
		filters = append(filters, "p.status = ?")
		args = append(args, *opts.Status)
	}
	if opts.MonitoredOnly {
		filters = append(filters, "p.status = 'active' AND p.notifications_enabled = 1")
	}
	if len(filters) > 0 {
		query += " AND " + strings.Join(filters, " AND ")
	}

	query += " GROUP BY p.id ORDER BY p.created_at DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	defer rows.Close()

	var summaries []process.ProcessSummary
	for rows.Next() {
		var s process.ProcessSummary
		if err := rows.Scan(
			&s.ID,
			&s.Docket,
			&s.Forum,
			&s.CaseType,
			&s.Status,
			&s.Notifications,
			&s.LastActuationDate,
			&s.UnseenActuations,
		); err != nil {
			return nil, fmt.Errorf("failed to scan process summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ListMonitored returns the owner's active, notification-enabled processes in
// registration order. This is the batch sync working set.
func (r *ProcessRepository) ListMonitored(ctx context.Context, ownerID string) ([]process.MonitoredProcess, error) {
	query := `
		SELECT ` + processColumns + `
		FROM processes
		WHERE owner_id = ? AND status = 'active' AND notifications_enabled = 1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monitored processes: %w", err)
	}
	defer rows.Close()

	var procs []process.MonitoredProcess
	for rows.Next() {
		proc, err := scanProcess(rows)
		if err != nil {
			return nil, err
		}
		procs = append(procs, *proc)
	}
	return procs, rows.Err()
}

// SetNotifications toggles the notification flag
func (r *ProcessRepository) SetNotifications(ctx context.Context, id string, enabled bool) error {
	return r.exec(ctx,
		`UPDATE processes SET notifications_enabled = ?, updated_at = ? WHERE id = ?`,
		enabled, time.Now(), id)
}

// SetStatus updates the lifecycle status
func (r *ProcessRepository) SetStatus(ctx context.Context, id string, status process.Status) error {
	return r.exec(ctx,
		`UPDATE processes SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id)
}

// UpdateSyncState refreshes the denormalized sync fields. Nil fields are left
// untouched, so a provider gap never erases a previously known value.
func (r *ProcessRepository) UpdateSyncState(ctx context.Context, id string, state repository.SyncState) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	if state.Forum != nil {
		sets = append(sets, "forum = ?")
		args = append(args, *state.Forum)
	}
	if state.LastActuationDate != nil {
		sets = append(sets, "last_actuation_date = ?")
		args = append(args, *state.LastActuationDate)
	}
	if state.LastActuationDesc != nil {
		sets = append(sets, "last_actuation_desc = ?")
		args = append(args, *state.LastActuationDesc)
	}

	args = append(args, id)
	return r.exec(ctx,
		"UPDATE processes SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...)
}

// Delete removes a process; the schema cascades its actuations
func (r *ProcessRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM processes WHERE id = ?`, id)
}

func (r *ProcessRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update process: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProcessRepository) scanOne(row *sql.Row) (*process.MonitoredProcess, error) {
	proc, err := scanProcess(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return proc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProcess(row rowScanner) (*process.MonitoredProcess, error) {
	var proc process.MonitoredProcess
	err := row.Scan(
		&proc.ID,
		&proc.OwnerID,
		&proc.Docket,
		&proc.Forum,
		&proc.CaseType,
		&proc.Plaintiff,
		&proc.Defendant,
		&proc.Status,
		&proc.NotificationsEnabled,
		&proc.LastActuationDate,
		&proc.LastActuationDesc,
		&proc.CreatedAt,
		&proc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan process: %w", err)
	}
	return &proc, nil
}
