package sqlite

import (
	"context"
	"testing"

	"github.com/andeslex/casewatch/internal/domain/syncer"
	"github.com/andeslex/casewatch/internal/repository"
	"github.com/stretchr/testify/require"
)

var _ syncer.MeteringGateway = (*CreditLedger)(nil)

func TestCreditLedger_GrantAuthorizeConsume(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	ledger := NewCreditLedger(db)

	require.NoError(t, ledger.Grant(ctx, "lawyer-1", 5))

	require.NoError(t, ledger.Authorize(ctx, "lawyer-1", 5))
	require.ErrorIs(t, ledger.Authorize(ctx, "lawyer-1", 6), repository.ErrInsufficientCredits)

	require.NoError(t, ledger.Consume(ctx, "lawyer-1", 3))

	balance, err := ledger.Balance(ctx, "lawyer-1")
	require.NoError(t, err)
	require.Equal(t, 2, balance)

	require.ErrorIs(t, ledger.Consume(ctx, "lawyer-1", 3), repository.ErrInsufficientCredits)
}

func TestCreditLedger_UnknownOwnerHasZeroBalance(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	ledger := NewCreditLedger(db)

	balance, err := ledger.Balance(ctx, "nobody")
	require.NoError(t, err)
	require.Zero(t, balance)
	require.ErrorIs(t, ledger.Authorize(ctx, "nobody", 1), repository.ErrInsufficientCredits)

	require.NoError(t, ledger.Grant(ctx, "nobody", 2))
	require.NoError(t, ledger.Grant(ctx, "nobody", 3))
	balance, err = ledger.Balance(ctx, "nobody")
	require.NoError(t, err)
	require.Equal(t, 5, balance)
}
