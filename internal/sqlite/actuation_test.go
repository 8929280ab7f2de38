package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/domain/syncer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	_ process.ActuationRepository = (*ActuationRepository)(nil)
	_ syncer.ActuationRepository  = (*ActuationRepository)(nil)
)

func insertActuation(t *testing.T, db *DB, processID string, date time.Time, annotation string, isNew bool) actuation.Actuation {
	t.Helper()
	act := actuation.Actuation{
		ID:         uuid.NewString(),
		ProcessID:  processID,
		Date:       date,
		Type:       "Auto",
		Annotation: annotation,
		IsNew:      isNew,
		CreatedAt:  time.Now(),
	}
	inserted, err := NewActuationRepository(db).InsertBatch(context.Background(), []actuation.Actuation{act})
	require.NoError(t, err)
	require.Equal(t, 1, inserted)
	return act
}

func TestActuationRepository_InsertBatchAndKeySet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActuationRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")

	now := time.Now()
	acts := []actuation.Actuation{
		{ID: uuid.NewString(), ProcessID: proc.ID, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Type: "Auto", Annotation: "auto admisorio", IsNew: true, CreatedAt: now},
		{ID: uuid.NewString(), ProcessID: proc.ID, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Type: "Constancia", Annotation: "", IsNew: true, CreatedAt: now},
	}

	inserted, err := repo.InsertBatch(ctx, acts)
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	set, err := repo.KeySet(ctx, proc.ID)
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.True(t, set.Contains(actuation.Key{Date: "2024-03-01", Annotation: "auto admisorio"}))
	require.True(t, set.Contains(actuation.Key{Date: "2024-03-05", Annotation: ""}))
}

func TestActuationRepository_DuplicateKeySkippedNotFailed(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActuationRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	insertActuation(t, db, proc.ID, date, "auto admisorio", true)

	// Same dedup key from a concurrent sync: skipped, not an error.
	dup := actuation.Actuation{
		ID: uuid.NewString(), ProcessID: proc.ID, Date: date,
		Type: "Otro tipo", Annotation: "auto admisorio", CreatedAt: time.Now(),
	}
	inserted, err := repo.InsertBatch(ctx, []actuation.Actuation{dup})
	require.NoError(t, err)
	require.Zero(t, inserted)

	count, err := repo.CountByProcess(ctx, proc.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestActuationRepository_ListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActuationRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "primera", false)
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "tercera", true)
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "segunda", true)

	acts, err := repo.ListByProcess(ctx, proc.ID, actuation.ListOptions{})
	require.NoError(t, err)
	require.Len(t, acts, 3)
	require.Equal(t, "tercera", acts[0].Annotation)
	require.Equal(t, "segunda", acts[1].Annotation)
	require.Equal(t, "primera", acts[2].Annotation)

	onlyNew, err := repo.ListByProcess(ctx, proc.ID, actuation.ListOptions{OnlyNew: true})
	require.NoError(t, err)
	require.Len(t, onlyNew, 2)
}

func TestActuationRepository_MarkSeen(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActuationRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "primera", true)
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "segunda", true)
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "tercera", false)

	cleared, err := repo.MarkSeen(ctx, proc.ID)
	require.NoError(t, err)
	require.Equal(t, 2, cleared)

	onlyNew, err := repo.ListByProcess(ctx, proc.ID, actuation.ListOptions{OnlyNew: true})
	require.NoError(t, err)
	require.Empty(t, onlyNew)
}

func TestActuationRepository_InsertRequiresProcess(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActuationRepository(db)

	orphan := actuation.Actuation{
		ID: uuid.NewString(), ProcessID: "missing",
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CreatedAt: time.Now(),
	}
	_, err := repo.InsertBatch(ctx, []actuation.Actuation{orphan})
	require.Error(t, err)
}
