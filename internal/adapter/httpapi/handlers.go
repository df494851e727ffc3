package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

const defaultRangeToken = "7d"

// handleValuationHistory serves the historical valuation curve.
func (s *Server) handleValuationHistory(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	rng, err := domain.ParseRange(c.DefaultQuery("range", defaultRangeToken))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := s.ValuationService.History(c.Request.Context(), userID, rng)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toValuationHistoryResponse(rng, points))
}

// handleAnalytics serves the aggregate analytics summary.
func (s *Server) handleAnalytics(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	rng, err := domain.ParseRange(c.DefaultQuery("range", defaultRangeToken))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.AnalyticsService.Summary(c.Request.Context(), userID, rng)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAnalyticsResponse(rng, summary))
}

// handleMarketOverview serves the market overview. The quote cache
// recovers upstream failures internally, so this endpoint always
// answers 200 with some quote set.
func (s *Server) handleMarketOverview(c *gin.Context) {
	quotes := s.MarketService.Overview(c.Request.Context())
	c.JSON(http.StatusOK, toMarketOverviewResponse(quotes))
}

// respondError maps service errors to HTTP status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrLedgerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no ledger found for user"})
	case errors.Is(err, domain.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.Logger.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
