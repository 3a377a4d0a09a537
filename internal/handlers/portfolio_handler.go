package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/services"
)

// PortfolioHandler serves the cross-sector dashboard endpoints.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// parseDateQuery reads an optional RFC 3339 date or datetime query param.
func parseDateQuery(c *gin.Context, param string) (*time.Time, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param+" date")
	}
	return &t, nil
}

// Summary returns the per-sector and grand-total aggregates.
// @Summary     Portfolio summary
// @Description Aggregate invested, current and profit figures per sector and overall
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Include records created on or after this date"
// @Param       to query string false "Include records created on or before this date"
// @Success     200 {object} map[string]any
// @Router      /portfolio/summary [get]
func (h *PortfolioHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolioService.Summary(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TopGainers returns the ranked best records across sectors.
// @Summary     Top gainers
// @Description Top five records per sector by profit, merged and ranked to an overall top ten
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any
// @Router      /portfolio/top-gainers [get]
func (h *PortfolioHandler) TopGainers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gainers, err := h.portfolioService.TopGainers(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"top_gainers": gainers})
}

// HighestGrowth returns the single best record of one sector.
// @Summary     Highest growth in a sector
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       sector path string true "Sector" Enums(fixed_deposit, gold, real_estate)
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "No records in this sector"
// @Router      /portfolio/highest-growth/{sector} [get]
func (h *PortfolioHandler) HighestGrowth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	highlight, err := h.portfolioService.HighestGrowth(userID, services.Sector(c.Param("sector")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"highest_growth": highlight})
}
