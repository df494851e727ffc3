// Package coingecko implements the market-quote upstream contract
// against the CoinGecko markets endpoint.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// ErrRateLimited is returned when the upstream answers HTTP 429.
var ErrRateLimited = errors.New("coingecko: rate limited")

// Client is an HTTP client for the CoinGecko markets endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client instance. An empty baseURL uses the
// public API; timeout bounds every request end to end.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// marketRow mirrors one element of the upstream markets response.
type marketRow struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_percentage_24h"`
	TotalVolume    float64 `json:"total_volume"`
	MarketCap      float64 `json:"market_cap"`
	MarketCapRank  int     `json:"market_cap_rank"`
	Image          string  `json:"image"`
}

// TopMarkets fetches the top markets by market cap, quoted in USD.
func (c *Client) TopMarkets(ctx context.Context, limit int) ([]domain.MarketQuote, error) {
	if limit <= 0 {
		limit = 10
	}

	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko: fetch markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	var rows []marketRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("coingecko: decode markets response: %w", err)
	}

	quotes := make([]domain.MarketQuote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, domain.MarketQuote{
			Symbol:    strings.ToUpper(row.Symbol),
			Name:      row.Name,
			Price:     decimal.NewFromFloat(row.CurrentPrice),
			Change24h: decimal.NewFromFloat(row.PriceChange24h),
			Volume24h: decimal.NewFromFloat(row.TotalVolume),
			MarketCap: decimal.NewFromFloat(row.MarketCap),
			Rank:      row.MarketCapRank,
			Icon:      row.Image,
		})
	}
	return quotes, nil
}
