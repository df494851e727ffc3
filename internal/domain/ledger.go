package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeKind represents the direction of a trade
type TradeKind string

const (
	TradeKindBuy  TradeKind = "buy"
	TradeKindSell TradeKind = "sell"
)

// TradeStatus represents the lifecycle state of a trade
type TradeStatus string

const (
	TradeStatusPending TradeStatus = "pending"
	TradeStatusSuccess TradeStatus = "success"
	TradeStatusFailed  TradeStatus = "failed"
)

// LedgerRecord represents a single trade in the append-only ledger.
// Records are created by the external trading subsystem and are read-only
// input for this core; a record with status "success" is immutable.
type LedgerRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	AgentID    *uuid.UUID // nil for manual trades
	Kind       TradeKind
	FromAsset  string
	ToAsset    string
	Amount     decimal.Decimal
	USDValue   decimal.Decimal
	ExecutedAt time.Time
	Status     TradeStatus
}

// Validate ensures the record adheres to the ledger contract.
// Validation happens once, at the LedgerReader boundary, so downstream
// pipelines can rely on a closed, well-formed record type.
func (r *LedgerRecord) Validate() error {
	if r.Kind != TradeKindBuy && r.Kind != TradeKindSell {
		return errors.New("trade kind must be buy or sell")
	}

	if r.Status != TradeStatusPending && r.Status != TradeStatusSuccess && r.Status != TradeStatusFailed {
		return errors.New("trade status must be pending, success, or failed")
	}

	if r.USDValue.IsNegative() {
		return errors.New("trade usd value cannot be negative")
	}

	if r.ExecutedAt.IsZero() {
		return errors.New("trade executed_at cannot be zero")
	}

	return nil
}

// IsSuccess reports whether the record counts toward valuation deltas.
// Pending and failed trades stay visible to analytics but never move the
// valuation curve.
func (r *LedgerRecord) IsSuccess() bool {
	return r.Status == TradeStatusSuccess
}

// BalanceSnapshot represents current holdings of a single asset.
// Owned by the external portfolio store; read-only input.
type BalanceSnapshot struct {
	Asset      string
	Balance    decimal.Decimal
	BalanceUSD decimal.Decimal
}

// TotalBalanceUSD sums the USD value across all balance snapshots.
// This is the anchor the valuation reconstructor seeds its curve from.
func TotalBalanceUSD(snapshots []BalanceSnapshot) decimal.Decimal {
	total := decimal.Zero
	for _, snapshot := range snapshots {
		total = total.Add(snapshot.BalanceUSD)
	}
	return total
}
