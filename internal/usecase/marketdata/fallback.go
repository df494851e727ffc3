package marketdata

import (
	"github.com/shopspring/decimal"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

// FallbackQuotes returns the static market snapshot served when the live
// feed is unavailable. The set is fixed: five majors, with BTC pinned at
// 67234.50 USD. A fresh slice is built per call so callers can never
// mutate the dataset out from under each other.
func FallbackQuotes() []domain.MarketQuote {
	return []domain.MarketQuote{
		{
			Symbol:    "BTC",
			Name:      "Bitcoin",
			Price:     decimal.NewFromFloat(67234.50),
			Change24h: decimal.NewFromFloat(1.24),
			Volume24h: decimal.NewFromInt(28_450_000_000),
			MarketCap: decimal.NewFromInt(1_326_000_000_000),
			Rank:      1,
			Icon:      "https://assets.coingecko.com/coins/images/1/large/bitcoin.png",
		},
		{
			Symbol:    "ETH",
			Name:      "Ethereum",
			Price:     decimal.NewFromFloat(3418.27),
			Change24h: decimal.NewFromFloat(-0.62),
			Volume24h: decimal.NewFromInt(14_210_000_000),
			MarketCap: decimal.NewFromInt(410_800_000_000),
			Rank:      2,
			Icon:      "https://assets.coingecko.com/coins/images/279/large/ethereum.png",
		},
		{
			Symbol:    "BNB",
			Name:      "BNB",
			Price:     decimal.NewFromFloat(586.10),
			Change24h: decimal.NewFromFloat(0.35),
			Volume24h: decimal.NewFromInt(1_720_000_000),
			MarketCap: decimal.NewFromInt(86_500_000_000),
			Rank:      3,
			Icon:      "https://assets.coingecko.com/coins/images/825/large/bnb-icon2_2x.png",
		},
		{
			Symbol:    "SOL",
			Name:      "Solana",
			Price:     decimal.NewFromFloat(152.84),
			Change24h: decimal.NewFromFloat(2.87),
			Volume24h: decimal.NewFromInt(2_930_000_000),
			MarketCap: decimal.NewFromInt(70_900_000_000),
			Rank:      4,
			Icon:      "https://assets.coingecko.com/coins/images/4128/large/solana.png",
		},
		{
			Symbol:    "XRP",
			Name:      "XRP",
			Price:     decimal.NewFromFloat(0.5284),
			Change24h: decimal.NewFromFloat(-1.05),
			Volume24h: decimal.NewFromInt(1_080_000_000),
			MarketCap: decimal.NewFromInt(29_300_000_000),
			Rank:      5,
			Icon:      "https://assets.coingecko.com/coins/images/44/large/xrp-symbol-white-128.png",
		},
	}
}
