package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andeslex/casewatch/internal/repository"
)

// CreditLedger implements syncer.MeteringGateway over the credit_accounts
// table. Charging is conditional on balance so two concurrent consumers
// cannot drive an account negative.
type CreditLedger struct {
	db *DB
}

// NewCreditLedger creates a new CreditLedger
func NewCreditLedger(db *DB) *CreditLedger {
	return &CreditLedger{db: db}
}

// Authorize verifies the owner holds at least the requested units.
func (l *CreditLedger) Authorize(ctx context.Context, ownerID string, units int) error {
	if units <= 0 {
		return repository.ErrInvalidInput
	}
	balance, err := l.Balance(ctx, ownerID)
	if err != nil {
		return err
	}
	if balance < units {
		return repository.ErrInsufficientCredits
	}
	return nil
}

// Consume charges the units actually spent.
func (l *CreditLedger) Consume(ctx context.Context, ownerID string, units int) error {
	if units <= 0 {
		return repository.ErrInvalidInput
	}
	result, err := l.db.ExecContext(ctx, `
		UPDATE credit_accounts
		SET balance = balance - ?, updated_at = ?
		WHERE owner_id = ? AND balance >= ?
	`, units, time.Now(), ownerID, units)
	if err != nil {
		return fmt.Errorf("failed to consume credits: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrInsufficientCredits
	}
	return nil
}

// Balance returns the owner's current balance; unknown owners hold zero.
func (l *CreditLedger) Balance(ctx context.Context, ownerID string) (int, error) {
	var balance int
	err := l.db.QueryRowContext(ctx,
		`SELECT balance FROM credit_accounts WHERE owner_id = ?`,
		ownerID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load balance: %w", err)
	}
	return balance, nil
}

// Grant adds units to an owner's account, creating it when missing.
func (l *CreditLedger) Grant(ctx context.Context, ownerID string, units int) error {
	if units <= 0 {
		return repository.ErrInvalidInput
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO credit_accounts (owner_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			balance = balance + excluded.balance,
			updated_at = excluded.updated_at
	`, ownerID, units, time.Now())
	if err != nil {
		return fmt.Errorf("failed to grant credits: %w", err)
	}
	return nil
}
