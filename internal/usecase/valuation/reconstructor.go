package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

// DeltaFunc estimates the portfolio value impact of a single trade.
// It is a replaceable strategy so a real P&L engine can be substituted
// later without touching the bucketing or ordering logic.
type DeltaFunc func(domain.LedgerRecord) decimal.Decimal

var (
	sellGainRate = decimal.NewFromFloat(0.05)
	buyCostRate  = decimal.NewFromFloat(0.01)
	hundred      = decimal.NewFromInt(100)
)

// DefaultDelta is the reference valuation-impact heuristic: a successful
// sell is approximated as +5% of its USD value, a buy as -1%.
func DefaultDelta(record domain.LedgerRecord) decimal.Decimal {
	switch record.Kind {
	case domain.TradeKindSell:
		return record.USDValue.Mul(sellGainRate)
	case domain.TradeKindBuy:
		return record.USDValue.Mul(buyCostRate).Neg()
	default:
		return decimal.Zero
	}
}

// Reconstruct builds the historical valuation curve for one lookback
// window. The curve is anchored to the current total balance and walked
// forward bucket by bucket, accumulating the delta of every successful
// trade. Pending and failed records are ignored.
//
// Anchoring on today's balance regardless of how far back the range
// starts is an explicit simplification, not a true point-in-time
// reconstruction.
//
// The result is deterministic for a fixed input: timestamps are strictly
// ascending with no duplicates, values never drop below zero, and
// re-running with the same inputs yields the same curve.
func Reconstruct(records []domain.LedgerRecord, anchor decimal.Decimal, rng domain.Range, now time.Time, delta DeltaFunc) []domain.ValuationPoint {
	if delta == nil {
		delta = DefaultDelta
	}

	successful := make([]domain.LedgerRecord, 0, len(records))
	for _, record := range records {
		if record.IsSuccess() {
			successful = append(successful, record)
		}
	}

	if len(successful) == 0 {
		return flatCurve(anchor, rng, now)
	}

	granularity := GranularityFor(rng.Days())
	buckets := GroupRecords(successful, granularity)

	points := make([]domain.ValuationPoint, 0, len(buckets))
	cumulative := anchor
	last := anchor

	for _, bucket := range buckets {
		netChange := decimal.Zero
		for _, record := range bucket.Records {
			netChange = netChange.Add(delta(record))
		}

		cumulative = cumulative.Add(netChange)
		if cumulative.IsNegative() {
			cumulative = decimal.Zero
		}

		points = append(points, domain.ValuationPoint{
			Timestamp:     bucket.Key,
			Value:         cumulative,
			ChangePercent: changePercent(cumulative, last),
		})
		last = cumulative
	}

	return points
}

// changePercent guards the zero denominator: a zero or negative previous
// value yields 0 instead of propagating infinity.
func changePercent(current, last decimal.Decimal) decimal.Decimal {
	if !last.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(last).Div(last).Mul(hundred)
}

// flatCurve emits evenly spaced points holding the current total balance,
// used when the window contains no successful trades. The last point
// lands on now.
func flatCurve(anchor decimal.Decimal, rng domain.Range, now time.Time) []domain.ValuationPoint {
	value := anchor
	if value.IsNegative() {
		value = decimal.Zero
	}

	n := rng.PointCount()
	span := rng.Duration()
	step := span / time.Duration(n)
	start := now.UTC().Add(-span)

	points := make([]domain.ValuationPoint, 0, n)
	for i := 1; i <= n; i++ {
		points = append(points, domain.ValuationPoint{
			Timestamp:     start.Add(step * time.Duration(i)),
			Value:         value,
			ChangePercent: decimal.Zero,
		})
	}
	return points
}
