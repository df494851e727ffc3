package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
	"github.com/agentfolio/agentfolio-backend/internal/usecase/valuation"
)

var hundred = decimal.NewFromInt(100)

// AnalyticsService computes aggregate statistics over a ledger window.
// Unlike valuation, analytics sees trades of every status: pending and
// failed trades count toward trade totals and win rate.
type AnalyticsService struct {
	LedgerRepo domain.LedgerRepository
	Delta      valuation.DeltaFunc
	Now        func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService(ledgerRepo domain.LedgerRepository) *AnalyticsService {
	return &AnalyticsService{
		LedgerRepo: ledgerRepo,
		Delta:      valuation.DefaultDelta,
		Now:        time.Now,
	}
}

// Summary computes the analytics projection for the requested range.
func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID, rng domain.Range) (*domain.AnalyticsSummary, error) {
	now := s.Now()
	since := now.Add(-rng.Duration())

	records, err := s.LedgerRepo.ListTrades(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	agents, err := s.LedgerRepo.ListAgents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	balances, err := s.LedgerRepo.ListBalances(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	summary := &domain.AnalyticsSummary{
		TotalTrades:         len(records),
		WinRate:             ratioPercent(countSuccessful(records), len(records)),
		AvgReturn:           s.avgSellReturn(records),
		TotalVolume:         totalVolume(records),
		ActiveAgents:        countActive(agents),
		StrategyPerformance: s.strategyPerformance(records, agents),
		RiskDistribution:    riskDistribution(agents),
	}
	summary.BestStrategy = bestStrategy(summary.StrategyPerformance)
	summary.PerformanceMetrics = s.performanceMetrics(records, balances, rng, now)

	return summary, nil
}

// avgSellReturn averages the per-trade return of successful sell trades,
// in percent, using the valuation-impact strategy. Trades with a zero
// USD value are skipped rather than dividing by zero.
func (s *AnalyticsService) avgSellReturn(records []domain.LedgerRecord) decimal.Decimal {
	delta := s.Delta
	if delta == nil {
		delta = valuation.DefaultDelta
	}

	sum := decimal.Zero
	count := 0
	for _, record := range records {
		if !record.IsSuccess() || record.Kind != domain.TradeKindSell || !record.USDValue.IsPositive() {
			continue
		}
		sum = sum.Add(delta(record).Div(record.USDValue).Mul(hundred))
		count++
	}

	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// strategyPerformance groups trades by agent name, in first-encounter
// order. Manual trades (no agent) and trades of unknown agents are left
// out of the strategy breakdown.
func (s *AnalyticsService) strategyPerformance(records []domain.LedgerRecord, agents []domain.Agent) []domain.StrategyPerformance {
	names := make(map[uuid.UUID]string, len(agents))
	for _, agent := range agents {
		names[agent.ID] = agent.Name
	}

	index := make(map[string]int)
	groups := make([]domain.StrategyPerformance, 0, len(agents))

	for _, record := range records {
		if record.AgentID == nil {
			continue
		}
		name, ok := names[*record.AgentID]
		if !ok {
			continue
		}

		i, seen := index[name]
		if !seen {
			i = len(groups)
			index[name] = i
			groups = append(groups, domain.StrategyPerformance{Strategy: name, Volume: decimal.Zero})
		}

		groups[i].Trades++
		if record.IsSuccess() {
			groups[i].Successful++
		}
		groups[i].Volume = groups[i].Volume.Add(record.USDValue)
	}

	for i := range groups {
		groups[i].Return = ratioPercent(groups[i].Successful, groups[i].Trades)
	}

	return groups
}

// performanceMetrics derives risk statistics from the valuation curve of
// the same window. With no successful trades there is no return series
// to derive them from, so the metrics are absent rather than fabricated.
func (s *AnalyticsService) performanceMetrics(records []domain.LedgerRecord, balances []domain.BalanceSnapshot, rng domain.Range, now time.Time) *domain.PerformanceMetrics {
	if countSuccessful(records) == 0 {
		return nil
	}

	anchor := domain.TotalBalanceUSD(balances)
	curve := valuation.Reconstruct(records, anchor, rng, now, s.Delta)
	return ComputeMetrics(curve)
}

func countSuccessful(records []domain.LedgerRecord) int {
	count := 0
	for _, record := range records {
		if record.IsSuccess() {
			count++
		}
	}
	return count
}

func countActive(agents []domain.Agent) int {
	count := 0
	for _, agent := range agents {
		if agent.Status == domain.AgentStatusActive {
			count++
		}
	}
	return count
}

func totalVolume(records []domain.LedgerRecord) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.USDValue)
	}
	return total
}

// bestStrategy returns the name of the group with the highest return,
// "N/A" when there are no groups. Ties keep the first encountered group.
func bestStrategy(groups []domain.StrategyPerformance) string {
	if len(groups) == 0 {
		return "N/A"
	}

	best := 0
	for i := 1; i < len(groups); i++ {
		if groups[i].Return.GreaterThan(groups[best].Return) {
			best = i
		}
	}
	return groups[best].Strategy
}

// riskDistribution counts agents per risk level, low to high. Levels
// without agents are omitted.
func riskDistribution(agents []domain.Agent) []domain.RiskSlice {
	counts := make(map[domain.RiskLevel]int, 3)
	for _, agent := range agents {
		counts[agent.Risk]++
	}

	levels := []domain.RiskLevel{domain.RiskLevelLow, domain.RiskLevelMedium, domain.RiskLevelHigh}
	slices := make([]domain.RiskSlice, 0, len(levels))
	for _, level := range levels {
		if counts[level] == 0 {
			continue
		}
		slices = append(slices, domain.RiskSlice{
			Level:      level,
			Agents:     counts[level],
			Percentage: ratioPercent(counts[level], len(agents)),
		})
	}
	return slices
}

// ratioPercent is the shared division guard: a zero denominator yields 0
// instead of propagating NaN or infinity.
func ratioPercent(numerator, denominator int) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(numerator)).Mul(hundred).Div(decimal.NewFromInt(int64(denominator)))
}
