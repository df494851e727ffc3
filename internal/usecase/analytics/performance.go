package analytics

import (
	"math"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

// ComputeMetrics derives performance statistics from the per-bucket
// return series of a valuation curve. Returns nil when the curve is too
// short to form a series. All statistics are per-bucket figures, not
// annualized.
func ComputeMetrics(curve []domain.ValuationPoint) *domain.PerformanceMetrics {
	if len(curve) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(curve))
	for _, point := range curve {
		returns = append(returns, point.ChangePercent.InexactFloat64()/100)
	}

	mean := meanOf(returns)
	volatility := stddevOf(returns, mean)
	maxDrawdown := maxDrawdownOf(curve)

	metrics := &domain.PerformanceMetrics{
		Volatility:  volatility,
		MaxDrawdown: maxDrawdown,
	}
	if volatility > 0 {
		metrics.SharpeRatio = mean / volatility
	}
	if maxDrawdown > 0 {
		metrics.CalmarRatio = mean / maxDrawdown
	}
	return metrics
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddevOf(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// maxDrawdownOf walks the curve tracking the running peak and returns
// the deepest peak-to-trough fall as a fraction of the peak.
func maxDrawdownOf(curve []domain.ValuationPoint) float64 {
	peak := 0.0
	maxDD := 0.0
	for _, point := range curve {
		value := point.Value.InexactFloat64()
		if value > peak {
			peak = value
		}
		if peak > 0 {
			dd := (peak - value) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}
