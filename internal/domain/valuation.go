package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Range represents the requested lookback window for valuation and
// analytics queries.
type Range string

const (
	Range1D  Range = "1d"
	Range7D  Range = "7d"
	Range30D Range = "30d"
	Range90D Range = "90d"
	Range1Y  Range = "1y"
)

// ParseRange parses a range token from the query surface.
// An unknown token is an input error and is rejected before any ledger
// access happens.
func ParseRange(token string) (Range, error) {
	switch Range(token) {
	case Range1D, Range7D, Range30D, Range90D, Range1Y:
		return Range(token), nil
	default:
		return "", ErrInvalidRange
	}
}

// Days returns the length of the lookback window in days.
func (r Range) Days() int {
	switch r {
	case Range1D:
		return 1
	case Range7D:
		return 7
	case Range30D:
		return 30
	case Range90D:
		return 90
	case Range1Y:
		return 365
	default:
		return 7
	}
}

// Duration returns the length of the lookback window.
func (r Range) Duration() time.Duration {
	return time.Duration(r.Days()) * 24 * time.Hour
}

// PointCount returns how many synthetic points a flat curve carries when
// no trades exist in the window.
func (r Range) PointCount() int {
	switch r {
	case Range1D, Range7D:
		return 24
	case Range30D:
		return 30
	case Range90D:
		return 90
	case Range1Y:
		return 365
	default:
		return 24
	}
}

// ValuationPoint is a single point on the historical valuation curve.
// Sequences of points are strictly ascending by timestamp and Value is
// never negative.
type ValuationPoint struct {
	Timestamp     time.Time
	Value         decimal.Decimal
	ChangePercent decimal.Decimal
}
