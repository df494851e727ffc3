// Package httpapi exposes the query surface over an authenticated HTTP
// JSON API.
package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/agentfolio/agentfolio-backend/internal/usecase/analytics"
	"github.com/agentfolio/agentfolio-backend/internal/usecase/marketdata"
	"github.com/agentfolio/agentfolio-backend/internal/usecase/valuation"
)

// Server wires the query services into HTTP handlers
type Server struct {
	ValuationService *valuation.ValuationService
	AnalyticsService *analytics.AnalyticsService
	MarketService    *marketdata.MarketDataService
	Logger           *slog.Logger
}

// NewServer creates a new HTTP server instance
func NewServer(
	valuationService *valuation.ValuationService,
	analyticsService *analytics.AnalyticsService,
	marketService *marketdata.MarketDataService,
	logger *slog.Logger,
) *Server {
	return &Server{
		ValuationService: valuationService,
		AnalyticsService: analyticsService,
		MarketService:    marketService,
		Logger:           logger,
	}
}

// Router builds the gin engine with all routes registered. Everything
// under /api/v1 requires the API token; the health endpoint does not.
func (s *Server) Router(apiToken string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", AuthMiddleware(apiToken))
	api.GET("/users/:userId/portfolio/history", s.handleValuationHistory)
	api.GET("/users/:userId/analytics", s.handleAnalytics)
	api.GET("/market/overview", s.handleMarketOverview)

	return r
}
