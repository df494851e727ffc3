package httpapi

import (
	"time"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

// valuationPointDTO is the wire shape of one valuation curve point.
type valuationPointDTO struct {
	Timestamp     time.Time `json:"timestamp"`
	Value         float64   `json:"value"`
	ChangePercent float64   `json:"change_percent"`
}

type valuationHistoryResponse struct {
	Range  string              `json:"range"`
	Points []valuationPointDTO `json:"points"`
}

type strategyPerformanceDTO struct {
	Strategy   string  `json:"strategy"`
	Trades     int     `json:"trades"`
	Successful int     `json:"successful"`
	Volume     float64 `json:"volume"`
	Return     float64 `json:"return"`
}

type riskSliceDTO struct {
	Level      string  `json:"level"`
	Agents     int     `json:"agents"`
	Percentage float64 `json:"percentage"`
}

type performanceMetricsDTO struct {
	SharpeRatio float64 `json:"sharpe_ratio"`
	Volatility  float64 `json:"volatility"`
	MaxDrawdown float64 `json:"max_drawdown"`
	CalmarRatio float64 `json:"calmar_ratio"`
}

type analyticsResponse struct {
	Range               string                   `json:"range"`
	TotalTrades         int                      `json:"total_trades"`
	WinRate             float64                  `json:"win_rate"`
	AvgReturn           float64                  `json:"avg_return"`
	BestStrategy        string                   `json:"best_strategy"`
	TotalVolume         float64                  `json:"total_volume"`
	ActiveAgents        int                      `json:"active_agents"`
	PerformanceMetrics  *performanceMetricsDTO   `json:"performance_metrics"`
	StrategyPerformance []strategyPerformanceDTO `json:"strategy_performance"`
	RiskDistribution    []riskSliceDTO           `json:"risk_distribution"`
}

type marketQuoteDTO struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	Volume24h float64 `json:"volume_24h"`
	MarketCap float64 `json:"market_cap"`
	Rank      int     `json:"rank"`
	Icon      string  `json:"icon"`
}

type marketOverviewResponse struct {
	Quotes []marketQuoteDTO `json:"quotes"`
}

func toValuationHistoryResponse(rng domain.Range, points []domain.ValuationPoint) valuationHistoryResponse {
	dtos := make([]valuationPointDTO, 0, len(points))
	for _, point := range points {
		dtos = append(dtos, valuationPointDTO{
			Timestamp:     point.Timestamp,
			Value:         point.Value.InexactFloat64(),
			ChangePercent: point.ChangePercent.InexactFloat64(),
		})
	}
	return valuationHistoryResponse{Range: string(rng), Points: dtos}
}

func toAnalyticsResponse(rng domain.Range, summary *domain.AnalyticsSummary) analyticsResponse {
	resp := analyticsResponse{
		Range:               string(rng),
		TotalTrades:         summary.TotalTrades,
		WinRate:             summary.WinRate.InexactFloat64(),
		AvgReturn:           summary.AvgReturn.InexactFloat64(),
		BestStrategy:        summary.BestStrategy,
		TotalVolume:         summary.TotalVolume.InexactFloat64(),
		ActiveAgents:        summary.ActiveAgents,
		StrategyPerformance: make([]strategyPerformanceDTO, 0, len(summary.StrategyPerformance)),
		RiskDistribution:    make([]riskSliceDTO, 0, len(summary.RiskDistribution)),
	}

	if summary.PerformanceMetrics != nil {
		resp.PerformanceMetrics = &performanceMetricsDTO{
			SharpeRatio: summary.PerformanceMetrics.SharpeRatio,
			Volatility:  summary.PerformanceMetrics.Volatility,
			MaxDrawdown: summary.PerformanceMetrics.MaxDrawdown,
			CalmarRatio: summary.PerformanceMetrics.CalmarRatio,
		}
	}

	for _, group := range summary.StrategyPerformance {
		resp.StrategyPerformance = append(resp.StrategyPerformance, strategyPerformanceDTO{
			Strategy:   group.Strategy,
			Trades:     group.Trades,
			Successful: group.Successful,
			Volume:     group.Volume.InexactFloat64(),
			Return:     group.Return.InexactFloat64(),
		})
	}

	for _, slice := range summary.RiskDistribution {
		resp.RiskDistribution = append(resp.RiskDistribution, riskSliceDTO{
			Level:      string(slice.Level),
			Agents:     slice.Agents,
			Percentage: slice.Percentage.InexactFloat64(),
		})
	}

	return resp
}

func toMarketOverviewResponse(quotes []domain.MarketQuote) marketOverviewResponse {
	dtos := make([]marketQuoteDTO, 0, len(quotes))
	for _, quote := range quotes {
		dtos = append(dtos, marketQuoteDTO{
			Symbol:    quote.Symbol,
			Name:      quote.Name,
			Price:     quote.Price.InexactFloat64(),
			Change24h: quote.Change24h.InexactFloat64(),
			Volume24h: quote.Volume24h.InexactFloat64(),
			MarketCap: quote.MarketCap.InexactFloat64(),
			Rank:      quote.Rank,
			Icon:      quote.Icon,
		})
	}
	return marketOverviewResponse{Quotes: dtos}
}
