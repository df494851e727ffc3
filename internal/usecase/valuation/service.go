package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

// ValuationService reconstructs historical valuation curves from the
// trade ledger and the current balances of a user.
type ValuationService struct {
	LedgerRepo domain.LedgerRepository
	Delta      DeltaFunc

	// Now is the clock used to place the lookback window. Injected so
	// curves can be tested deterministically.
	Now func() time.Time
}

// NewValuationService creates a new ValuationService instance using the
// default valuation-impact heuristic and the system clock.
func NewValuationService(ledgerRepo domain.LedgerRepository) *ValuationService {
	return &ValuationService{
		LedgerRepo: ledgerRepo,
		Delta:      DefaultDelta,
		Now:        time.Now,
	}
}

// History returns the valuation curve for the requested range.
// The curve covers one point per populated bucket, or a flat synthetic
// curve when no successful trades exist in the window. Calling History
// twice with an unchanged ledger and unchanged balances yields identical
// output.
func (s *ValuationService) History(ctx context.Context, userID uuid.UUID, rng domain.Range) ([]domain.ValuationPoint, error) {
	now := s.Now()
	since := now.Add(-rng.Duration())

	records, err := s.LedgerRepo.ListTrades(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	balances, err := s.LedgerRepo.ListBalances(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	anchor := domain.TotalBalanceUSD(balances)

	return Reconstruct(records, anchor, rng, now, s.Delta), nil
}
