package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LedgerRepository defines the read-only accessor over the trade ledger,
// current balances, and agents of one user. The underlying stores are
// owned by the external trading and portfolio subsystems.
type LedgerRepository interface {
	// ListTrades retrieves all trades executed at or after since,
	// ascending by executed_at. All statuses are returned; valuation
	// filters down to successful trades itself.
	// Returns ErrLedgerNotFound if the user has no ledger.
	ListTrades(ctx context.Context, userID uuid.UUID, since time.Time) ([]LedgerRecord, error)

	// ListBalances retrieves the current per-asset holdings of the user.
	ListBalances(ctx context.Context, userID uuid.UUID) ([]BalanceSnapshot, error)

	// ListAgents retrieves all trading agents of the user.
	ListAgents(ctx context.Context, userID uuid.UUID) ([]Agent, error)
}
