package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/pagination"
	"nivesh/internal/services"
)

// GoldHandler serves the gold holding endpoints.
type GoldHandler struct {
	goldService services.GoldServicer
	auditor     services.AuditServicer
}

// NewGoldHandler creates a new GoldHandler
func NewGoldHandler(goldService services.GoldServicer, auditor services.AuditServicer) *GoldHandler {
	return &GoldHandler{goldService: goldService, auditor: auditor}
}

// GoldRequest represents a gold holding create/update payload.
type GoldRequest struct {
	GoldWeight        float64 `json:"gold_weight" binding:"required,gt=0"`
	GoldPurchasePrice float64 `json:"gold_purchase_price" binding:"required,gt=0"`
	PurityOfGold      int     `json:"purity_of_gold" binding:"required,gold_purity"`
}

// Create handles gold holding creation
// @Summary     Create a gold holding
// @Description Create a gold holding valued against the latest rate snapshot
// @Tags        gold
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoldRequest true "Gold holding data"
// @Success     201 {object} map[string]any
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No gold rate snapshot available"
// @Router      /gold [post]
func (h *GoldHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	gold, err := h.goldService.Create(userID, req.GoldWeight, req.GoldPurchasePrice, req.PurityOfGold)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "create", "gold_investment", gold.ID, c.ClientIP(), map[string]any{
		"weight": req.GoldWeight,
		"purity": req.PurityOfGold,
	})
	c.JSON(http.StatusCreated, gin.H{"gold_investment": gold})
}

// List handles gold holding listing
// @Summary     List gold holdings
// @Tags        gold
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]any
// @Router      /gold [get]
func (h *GoldHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	list, err := h.goldService.List(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles gold holding retrieval
// @Summary     Get a gold holding
// @Tags        gold
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Gold holding ID"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /gold/{id} [get]
func (h *GoldHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	gold, err := h.goldService.GetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gold_investment": gold})
}

// Update handles gold holding updates
// @Summary     Update a gold holding
// @Description Replace the holding fields and revalue against the latest snapshot
// @Tags        gold
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Gold holding ID"
// @Param       request body GoldRequest true "Gold holding data"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /gold/{id} [put]
func (h *GoldHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	gold, err := h.goldService.Update(userID, id, req.GoldWeight, req.GoldPurchasePrice, req.PurityOfGold)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "update", "gold_investment", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"gold_investment": gold})
}

// Delete handles gold holding deletion
// @Summary     Delete a gold holding
// @Tags        gold
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Gold holding ID"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /gold/{id} [delete]
func (h *GoldHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goldService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "delete", "gold_investment", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Gold holding deleted"})
}
