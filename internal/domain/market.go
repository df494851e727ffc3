package domain

import "github.com/shopspring/decimal"

// MarketQuote represents one asset row of the market overview.
// Quotes come either from the live upstream feed or from the static
// fallback dataset when the upstream is unavailable.
type MarketQuote struct {
	Symbol    string
	Name      string
	Price     decimal.Decimal
	Change24h decimal.Decimal
	Volume24h decimal.Decimal
	MarketCap decimal.Decimal
	Rank      int
	Icon      string
}
