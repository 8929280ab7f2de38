package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/domain/syncer"
	"github.com/andeslex/casewatch/internal/repository"
	"github.com/stretchr/testify/require"
)

var (
	_ process.ProcessRepository = (*ProcessRepository)(nil)
	_ syncer.ProcessRepository  = (*ProcessRepository)(nil)
)

func TestProcessRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProcessRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")

	loaded, err := repo.Get(ctx, proc.ID)
	require.NoError(t, err)
	require.Equal(t, "lawyer-1", loaded.OwnerID)
	require.Equal(t, proc.Docket, loaded.Docket)
	require.Equal(t, process.StatusActive, loaded.Status)
	require.Nil(t, loaded.Forum)
	require.Nil(t, loaded.LastActuationDate)
}

func TestProcessRepository_DuplicateDocketPerOwner(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProcessRepository(db)

	first := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")

	dup := *first
	dup.ID = "p2"
	err := repo.Create(ctx, &dup)
	require.ErrorIs(t, err, repository.ErrDuplicate)

	// A different owner may monitor the same docket.
	other := *first
	other.ID = "p3"
	other.OwnerID = "lawyer-2"
	require.NoError(t, repo.Create(ctx, &other))
}

func TestProcessRepository_GetByDocket(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProcessRepository(db)

	insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")

	loaded, err := repo.GetByDocket(ctx, "lawyer-1", "11001310300320200012300")
	require.NoError(t, err)
	require.Equal(t, "p1", loaded.ID)

	_, err = repo.GetByDocket(ctx, "lawyer-2", "11001310300320200012300")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProcessRepository_ListMonitoredFiltersAndOrders(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProcessRepository(db)

	a := insertProcess(t, db, "a", "lawyer-1", "11001310300320200000100")
	b := insertProcess(t, db, "b", "lawyer-1", "11001310300320200000200")
	c := insertProcess(t, db, "c", "lawyer-1", "11001310300320200000300")
	insertProcess(t, db, "other", "lawyer-2", "11001310300320200000400")

	require.NoError(t, repo.SetStatus(ctx, b.ID, process.StatusTerminated))
	require.NoError(t, repo.SetNotifications(ctx, c.ID, false))

	monitored, err := repo.ListMonitored(ctx, "lawyer-1")
	require.NoError(t, err)
	require.Len(t, monitored, 1)
	require.Equal(t, a.ID, monitored[0].ID)
}

func TestProcessRepository_UpdateSyncStateLeavesNilFieldsAlone(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProcessRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")

	forum := "JUZGADO 003 CIVIL DEL CIRCUITO"
	date := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	desc := "notificación por estado"
	require.NoError(t, repo.UpdateSyncState(ctx, proc.ID, repository.SyncState{
		Forum:             &forum,
		LastActuationDate: &date,
		LastActuationDesc: &desc,
	}))

	// A later sync with a provider gap passes nil fields; stored values stay.
	require.NoError(t, repo.UpdateSyncState(ctx, proc.ID, repository.SyncState{}))

	loaded, err := repo.Get(ctx, proc.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Forum)
	require.Equal(t, forum, *loaded.Forum)
	require.NotNil(t, loaded.LastActuationDate)
	require.True(t, date.Equal(*loaded.LastActuationDate))
	require.NotNil(t, loaded.LastActuationDesc)
	require.Equal(t, desc, *loaded.LastActuationDesc)
}

func TestProcessRepository_DeleteCascadesActuations(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProcessRepository(db)
	actRepo := NewActuationRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "auto admisorio", true)

	require.NoError(t, repo.Delete(ctx, proc.ID))

	_, err := repo.Get(ctx, proc.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	count, err := actRepo.CountByProcess(ctx, proc.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestProcessRepository_ListByOwnerCountsUnseen(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProcessRepository(db)

	proc := insertProcess(t, db, "p1", "lawyer-1", "11001310300320200012300")
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "auto admisorio", false)
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "fijación en lista", true)
	insertActuation(t, db, proc.ID, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "al despacho", true)

	summaries, err := repo.ListByOwner(ctx, "lawyer-1", process.ListOptions{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 2, summaries[0].UnseenActuations)
}
