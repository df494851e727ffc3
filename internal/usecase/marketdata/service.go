package marketdata

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

const (
	defaultTTL          = 30 * time.Second
	defaultFetchTimeout = 10 * time.Second
	defaultLimit        = 10
)

// QuoteSource fetches live market quotes from the upstream price feed.
// The upstream is unreliable: it may time out or rate-limit.
type QuoteSource interface {
	TopMarkets(ctx context.Context, limit int) ([]domain.MarketQuote, error)
}

// Config tunes the cache. Zero values fall back to the defaults:
// a 30s TTL, a 10s fetch timeout, and the top 10 markets.
type Config struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	Limit        int
}

// MarketDataService serves the market overview through a TTL cache in
// front of the upstream quote feed. It is the only shared mutable state
// in the query pipelines: the cache entry is replaced wholesale under a
// lock, so concurrent readers never observe a torn entry. Concurrent
// refreshes of an expired entry may race; redundant upstream calls are
// tolerated and the last write wins.
type MarketDataService struct {
	source QuoteSource
	logger *slog.Logger

	ttl          time.Duration
	fetchTimeout time.Duration
	limit        int

	// now is the cache clock, injected for deterministic tests.
	now func() time.Time

	mu    sync.RWMutex
	entry *cacheEntry
}

type cacheEntry struct {
	quotes    []domain.MarketQuote
	fetchedAt time.Time
	fallback  bool
}

// NewMarketDataService creates a new MarketDataService instance.
func NewMarketDataService(cfg Config, source QuoteSource, logger *slog.Logger) *MarketDataService {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultLimit
	}

	return &MarketDataService{
		source:       source,
		logger:       logger,
		ttl:          cfg.TTL,
		fetchTimeout: cfg.FetchTimeout,
		limit:        cfg.Limit,
		now:          time.Now,
	}
}

// Overview returns the current market overview. Within the TTL window
// the cached payload is served without touching the upstream; after
// expiry one upstream fetch is attempted per request, degrading to the
// static fallback set on failure. Callers always get a quote set: an
// unavailable upstream is never surfaced as an error.
func (s *MarketDataService) Overview(ctx context.Context) []domain.MarketQuote {
	if quotes, ok := s.cached(); ok {
		return quotes
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	quotes, err := s.source.TopMarkets(fetchCtx, s.limit)
	if err != nil || len(quotes) == 0 {
		if err != nil {
			s.logger.Warn("market upstream unavailable, serving fallback quotes", "err", err)
		} else {
			s.logger.Warn("market upstream returned no quotes, serving fallback quotes")
		}
		quotes = FallbackQuotes()
		s.store(quotes, true)
		return quotes
	}

	s.store(quotes, false)
	return quotes
}

func (s *MarketDataService) cached() ([]domain.MarketQuote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil || s.now().Sub(s.entry.fetchedAt) >= s.ttl {
		return nil, false
	}
	if s.entry.fallback {
		s.logger.Debug("serving cached fallback quotes, upstream retry deferred until ttl expiry")
	}
	return s.entry.quotes, true
}

func (s *MarketDataService) store(quotes []domain.MarketQuote, fallback bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = &cacheEntry{quotes: quotes, fetchedAt: s.now(), fallback: fallback}
}
