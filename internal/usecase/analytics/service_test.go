package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// MockLedgerRepository is a mock implementation of LedgerRepository for testing
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListTrades(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.LedgerRecord, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRecord), args.Error(1)
}

func (m *MockLedgerRepository) ListBalances(ctx context.Context, userID uuid.UUID) ([]domain.BalanceSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSnapshot), args.Error(1)
}

func (m *MockLedgerRepository) ListAgents(ctx context.Context, userID uuid.UUID) ([]domain.Agent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func agentWith(userID uuid.UUID, name string, risk domain.RiskLevel, status domain.AgentStatus) domain.Agent {
	return domain.Agent{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Strategy: "momentum",
		Risk:     risk,
		Status:   status,
	}
}

func tradeFor(agentID *uuid.UUID, kind domain.TradeKind, status domain.TradeStatus, usd int64, executed time.Time) domain.LedgerRecord {
	return domain.LedgerRecord{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		AgentID:    agentID,
		Kind:       kind,
		FromAsset:  "BTC",
		ToAsset:    "USDC",
		Amount:     decimal.NewFromInt(1),
		USDValue:   decimal.NewFromInt(usd),
		ExecutedAt: executed,
		Status:     status,
	}
}

func newFixedClockService(repo domain.LedgerRepository) *AnalyticsService {
	service := NewAnalyticsService(repo)
	service.Now = func() time.Time { return testNow }
	return service
}

func TestSummary_EmptyWindow(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.LedgerRecord{}, nil)
	mockRepo.On("ListAgents", ctx, userID).Return([]domain.Agent{}, nil)
	mockRepo.On("ListBalances", ctx, userID).Return([]domain.BalanceSnapshot{}, nil)

	summary, err := service.Summary(ctx, userID, domain.Range30D)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalTrades)
	assert.True(t, summary.WinRate.IsZero(), "win rate must be 0, not NaN")
	assert.True(t, summary.AvgReturn.IsZero())
	assert.True(t, summary.TotalVolume.IsZero())
	assert.Equal(t, "N/A", summary.BestStrategy)
	assert.Equal(t, 0, summary.ActiveAgents)
	assert.Nil(t, summary.PerformanceMetrics)
	assert.Empty(t, summary.StrategyPerformance)
	assert.Empty(t, summary.RiskDistribution)
	mockRepo.AssertExpectations(t)
}

func TestSummary_WinRateCountsAllStatuses(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	executed := testNow.Add(-2 * time.Hour)
	records := []domain.LedgerRecord{
		tradeFor(nil, domain.TradeKindSell, domain.TradeStatusSuccess, 1000, executed),
		tradeFor(nil, domain.TradeKindBuy, domain.TradeStatusSuccess, 500, executed),
		tradeFor(nil, domain.TradeKindBuy, domain.TradeStatusPending, 200, executed),
		tradeFor(nil, domain.TradeKindSell, domain.TradeStatusFailed, 300, executed),
	}

	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).Return(records, nil)
	mockRepo.On("ListAgents", ctx, userID).Return([]domain.Agent{}, nil)
	mockRepo.On("ListBalances", ctx, userID).Return([]domain.BalanceSnapshot{}, nil)

	summary, err := service.Summary(ctx, userID, domain.Range7D)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalTrades)
	assert.True(t, summary.WinRate.Equal(decimal.NewFromInt(50)), "got %s", summary.WinRate)
	assert.True(t, summary.TotalVolume.Equal(decimal.NewFromInt(2000)), "volume sums every status, got %s", summary.TotalVolume)
}

func TestSummary_AvgReturnOverSuccessfulSellsOnly(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	executed := testNow.Add(-3 * time.Hour)
	records := []domain.LedgerRecord{
		tradeFor(nil, domain.TradeKindSell, domain.TradeStatusSuccess, 1000, executed),
		tradeFor(nil, domain.TradeKindSell, domain.TradeStatusFailed, 9000, executed),
		tradeFor(nil, domain.TradeKindBuy, domain.TradeStatusSuccess, 9000, executed),
	}

	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).Return(records, nil)
	mockRepo.On("ListAgents", ctx, userID).Return([]domain.Agent{}, nil)
	mockRepo.On("ListBalances", ctx, userID).Return([]domain.BalanceSnapshot{}, nil)

	summary, err := service.Summary(ctx, userID, domain.Range7D)

	require.NoError(t, err)
	// The default heuristic credits a sell with 5% of its USD value.
	assert.True(t, summary.AvgReturn.Equal(decimal.NewFromInt(5)), "got %s", summary.AvgReturn)
}

func TestSummary_StrategyBreakdownAndBestStrategy(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	alpha := agentWith(userID, "Alpha Grid", domain.RiskLevelLow, domain.AgentStatusActive)
	beta := agentWith(userID, "Beta Momentum", domain.RiskLevelHigh, domain.AgentStatusPaused)

	executed := testNow.Add(-4 * time.Hour)
	records := []domain.LedgerRecord{
		tradeFor(&alpha.ID, domain.TradeKindSell, domain.TradeStatusSuccess, 1000, executed),
		tradeFor(&alpha.ID, domain.TradeKindBuy, domain.TradeStatusFailed, 500, executed),
		tradeFor(&beta.ID, domain.TradeKindSell, domain.TradeStatusSuccess, 2000, executed),
		tradeFor(nil, domain.TradeKindBuy, domain.TradeStatusSuccess, 50, executed), // manual trade
	}

	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).Return(records, nil)
	mockRepo.On("ListAgents", ctx, userID).Return([]domain.Agent{alpha, beta}, nil)
	mockRepo.On("ListBalances", ctx, userID).Return([]domain.BalanceSnapshot{}, nil)

	summary, err := service.Summary(ctx, userID, domain.Range7D)

	require.NoError(t, err)
	require.Len(t, summary.StrategyPerformance, 2)

	first := summary.StrategyPerformance[0]
	assert.Equal(t, "Alpha Grid", first.Strategy)
	assert.Equal(t, 2, first.Trades)
	assert.Equal(t, 1, first.Successful)
	assert.True(t, first.Volume.Equal(decimal.NewFromInt(1500)))
	assert.True(t, first.Return.Equal(decimal.NewFromInt(50)))

	second := summary.StrategyPerformance[1]
	assert.Equal(t, "Beta Momentum", second.Strategy)
	assert.True(t, second.Return.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, "Beta Momentum", summary.BestStrategy)
	assert.Equal(t, 1, summary.ActiveAgents)
}

func TestSummary_BestStrategyTieKeepsFirstEncountered(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	alpha := agentWith(userID, "Alpha", domain.RiskLevelLow, domain.AgentStatusActive)
	beta := agentWith(userID, "Beta", domain.RiskLevelLow, domain.AgentStatusActive)

	executed := testNow.Add(-time.Hour)
	records := []domain.LedgerRecord{
		tradeFor(&alpha.ID, domain.TradeKindSell, domain.TradeStatusSuccess, 100, executed),
		tradeFor(&beta.ID, domain.TradeKindSell, domain.TradeStatusSuccess, 100, executed),
	}

	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).Return(records, nil)
	mockRepo.On("ListAgents", ctx, userID).Return([]domain.Agent{alpha, beta}, nil)
	mockRepo.On("ListBalances", ctx, userID).Return([]domain.BalanceSnapshot{}, nil)

	summary, err := service.Summary(ctx, userID, domain.Range7D)

	require.NoError(t, err)
	assert.Equal(t, "Alpha", summary.BestStrategy)
}

func TestSummary_RiskDistribution(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	agents := []domain.Agent{
		agentWith(userID, "A", domain.RiskLevelHigh, domain.AgentStatusActive),
		agentWith(userID, "B", domain.RiskLevelLow, domain.AgentStatusActive),
		agentWith(userID, "C", domain.RiskLevelLow, domain.AgentStatusStopped),
		agentWith(userID, "D", domain.RiskLevelMedium, domain.AgentStatusActive),
	}

	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.LedgerRecord{}, nil)
	mockRepo.On("ListAgents", ctx, userID).Return(agents, nil)
	mockRepo.On("ListBalances", ctx, userID).Return([]domain.BalanceSnapshot{}, nil)

	summary, err := service.Summary(ctx, userID, domain.Range30D)

	require.NoError(t, err)
	require.Len(t, summary.RiskDistribution, 3)
	assert.Equal(t, domain.RiskLevelLow, summary.RiskDistribution[0].Level)
	assert.Equal(t, 2, summary.RiskDistribution[0].Agents)
	assert.True(t, summary.RiskDistribution[0].Percentage.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, domain.RiskLevelMedium, summary.RiskDistribution[1].Level)
	assert.Equal(t, domain.RiskLevelHigh, summary.RiskDistribution[2].Level)
}

func TestSummary_PerformanceMetricsFromReturnSeries(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	records := []domain.LedgerRecord{
		tradeFor(nil, domain.TradeKindSell, domain.TradeStatusSuccess, 1000, testNow.Add(-30*time.Hour)),
		tradeFor(nil, domain.TradeKindBuy, domain.TradeStatusSuccess, 2000, testNow.Add(-6*time.Hour)),
	}
	balances := []domain.BalanceSnapshot{
		{Asset: "USDC", Balance: decimal.NewFromInt(5000), BalanceUSD: decimal.NewFromInt(5000)},
	}

	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).Return(records, nil)
	mockRepo.On("ListAgents", ctx, userID).Return([]domain.Agent{}, nil)
	mockRepo.On("ListBalances", ctx, userID).Return(balances, nil)

	summary, err := service.Summary(ctx, userID, domain.Range7D)

	require.NoError(t, err)
	require.NotNil(t, summary.PerformanceMetrics)
	assert.False(t, math.IsNaN(summary.PerformanceMetrics.SharpeRatio))
	assert.GreaterOrEqual(t, summary.PerformanceMetrics.Volatility, 0.0)
	assert.GreaterOrEqual(t, summary.PerformanceMetrics.MaxDrawdown, 0.0)
}

func TestSummary_RepositoryErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLedgerRepository)
	service := newFixedClockService(mockRepo)

	userID := uuid.New()
	mockRepo.On("ListTrades", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(nil, domain.ErrLedgerNotFound)

	summary, err := service.Summary(ctx, userID, domain.Range7D)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, domain.ErrLedgerNotFound)
}
