package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

func curvePoint(hoursAgo int, value float64, changePct float64) domain.ValuationPoint {
	return domain.ValuationPoint{
		Timestamp:     testNow.Add(-time.Duration(hoursAgo) * time.Hour),
		Value:         decimal.NewFromFloat(value),
		ChangePercent: decimal.NewFromFloat(changePct),
	}
}

func TestComputeMetrics_TooShortCurve(t *testing.T) {
	assert.Nil(t, ComputeMetrics(nil))
	assert.Nil(t, ComputeMetrics([]domain.ValuationPoint{curvePoint(1, 100, 0)}))
}

func TestComputeMetrics_FlatCurve(t *testing.T) {
	curve := []domain.ValuationPoint{
		curvePoint(3, 100, 0),
		curvePoint(2, 100, 0),
		curvePoint(1, 100, 0),
	}

	metrics := ComputeMetrics(curve)

	require.NotNil(t, metrics)
	assert.Zero(t, metrics.Volatility)
	assert.Zero(t, metrics.SharpeRatio, "zero volatility must not divide")
	assert.Zero(t, metrics.MaxDrawdown)
	assert.Zero(t, metrics.CalmarRatio)
}

func TestComputeMetrics_KnownSeries(t *testing.T) {
	// 100 -> 110 (+10%) -> 99 (-10%): peak 110, trough 99.
	curve := []domain.ValuationPoint{
		curvePoint(3, 100, 0),
		curvePoint(2, 110, 10),
		curvePoint(1, 99, -10),
	}

	metrics := ComputeMetrics(curve)

	require.NotNil(t, metrics)
	assert.InDelta(t, 0.1, metrics.MaxDrawdown, 1e-9)
	assert.Greater(t, metrics.Volatility, 0.0)
	assert.False(t, math.IsNaN(metrics.SharpeRatio))
	assert.False(t, math.IsInf(metrics.SharpeRatio, 0))
}
