package domain

import "github.com/shopspring/decimal"

// StrategyPerformance aggregates trades for a single agent strategy.
// Return is the success ratio in percent, 0 when the group has no trades.
type StrategyPerformance struct {
	Strategy   string
	Trades     int
	Successful int
	Volume     decimal.Decimal
	Return     decimal.Decimal
}

// RiskSlice is one slice of the per-risk-level agent breakdown.
type RiskSlice struct {
	Level      RiskLevel
	Agents     int
	Percentage decimal.Decimal
}

// PerformanceMetrics holds statistics derived from the per-bucket return
// series of the valuation curve. Alpha and beta are intentionally absent:
// they need a benchmark return series this system does not ingest, and
// fabricating them would be worse than omitting them.
type PerformanceMetrics struct {
	SharpeRatio float64
	Volatility  float64
	MaxDrawdown float64
	CalmarRatio float64
}

// AnalyticsSummary is a pure computed projection over a ledger window.
// It is never persisted.
type AnalyticsSummary struct {
	TotalTrades  int
	WinRate      decimal.Decimal
	AvgReturn    decimal.Decimal
	BestStrategy string
	TotalVolume  decimal.Decimal
	ActiveAgents int

	// PerformanceMetrics is nil when the window has no successful trades
	// to derive a return series from.
	PerformanceMetrics *PerformanceMetrics

	StrategyPerformance []StrategyPerformance
	RiskDistribution    []RiskSlice
}
