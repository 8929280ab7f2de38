package sqlite

import (
	"context"
	"fmt"

	"github.com/andeslex/casewatch/internal/domain/actuation"
)

// ActuationRepository persists actuations in SQLite. It satisfies the
// actuation-store interfaces declared by the process and syncer packages.
type ActuationRepository struct {
	db *DB
}

// NewActuationRepository creates a new ActuationRepository
func NewActuationRepository(db *DB) *ActuationRepository {
	return &ActuationRepository{db: db}
}

// InsertBatch persists actuations inside one transaction. Rows whose dedup key
// already exists are skipped via ON CONFLICT, so a concurrent sync of the same
// case cannot double-insert; the count of rows actually written is returned.
func (r *ActuationRepository) InsertBatch(ctx context.Context, acts []actuation.Actuation) (int, error) {
	if len(acts) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO actuations (
			id, process_id, date, type, annotation,
			start_date, end_date, is_new, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(process_id, date, annotation) DO NOTHING
	`

	inserted := 0
	for _, a := range acts {
		result, err := tx.ExecContext(ctx, query,
			a.ID,
			a.ProcessID,
			a.Date.UTC(),
			a.Type,
			a.Annotation,
			a.StartDate,
			a.EndDate,
			a.IsNew,
			a.CreatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return 0, fmt.Errorf("failed to insert actuation: process %s missing", a.ProcessID)
			}
			return 0, fmt.Errorf("failed to insert actuation: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check affected rows: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit actuations: %w", err)
	}
	return inserted, nil
}

// KeySet loads the dedup keys of all stored actuations for a process.
func (r *ActuationRepository) KeySet(ctx context.Context, processID string) (actuation.KeySet, error) {
	query := `SELECT date, annotation FROM actuations WHERE process_id = ?`

	rows, err := r.db.QueryContext(ctx, query, processID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dedup keys: %w", err)
	}
	defer rows.Close()

	set := actuation.KeySet{}
	for rows.Next() {
		var a actuation.Actuation
		if err := rows.Scan(&a.Date, &a.Annotation); err != nil {
			return nil, fmt.Errorf("failed to scan dedup key: %w", err)
		}
		set.Add(actuation.KeyOf(a))
	}
	return set, rows.Err()
}

// ListByProcess returns a process's actuations, newest first.
func (r *ActuationRepository) ListByProcess(ctx context.Context, processID string, opts actuation.ListOptions) ([]actuation.Actuation, error) {
	query := `
		SELECT id, process_id, date, type, annotation,
		       start_date, end_date, is_new, created_at
		FROM actuations
		WHERE process_id = ?
	`
	args := []any{processID}

	if opts.OnlyNew {
		query += " AND is_new = 1"
	}
	query += " ORDER BY date DESC, created_at DESC"
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
		return nil, fmt.Errorf("failed to list actuations: %w", err)
	}
	defer rows.Close()

	var acts []actuation.Actuation
	for rows.Next() {
		var a actuation.Actuation
		if err := rows.Scan(
			&a.ID,
			&a.ProcessID,
			&a.Date,
			&a.Type,
			&a.Annotation,
			&a.StartDate,
			&a.EndDate,
			&a.IsNew,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan actuation: %w", err)
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

// MarkSeen clears the is-new flag on all of a process's actuations and
// returns how many were cleared.
func (r *ActuationRepository) MarkSeen(ctx context.Context, processID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE actuations SET is_new = 0 WHERE process_id = ? AND is_new = 1`,
		processID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark actuations seen: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return int(affected), nil
}

// CountByProcess returns the number of stored actuations for a process.
func (r *ActuationRepository) CountByProcess(ctx context.Context, processID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM actuations WHERE process_id = ?`,
		processID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count actuations: %w", err)
	}
	return count, nil
}
