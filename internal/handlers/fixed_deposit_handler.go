package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/pagination"
	"nivesh/internal/services"
)

// FixedDepositHandler serves the fixed deposit endpoints.
type FixedDepositHandler struct {
	fdService services.FixedDepositServicer
	auditor   services.AuditServicer
}

// NewFixedDepositHandler creates a new FixedDepositHandler
func NewFixedDepositHandler(fdService services.FixedDepositServicer, auditor services.AuditServicer) *FixedDepositHandler {
	return &FixedDepositHandler{fdService: fdService, auditor: auditor}
}

// FixedDepositRequest represents a fixed deposit create/update payload.
// The interest rate is an annual percentage capped at 12.
type FixedDepositRequest struct {
	BankID              uint      `json:"bank_id" binding:"required"`
	TotalInvestedAmount float64   `json:"total_invested_amount" binding:"required,gt=0"`
	InterestRate        float64   `json:"interest_rate" binding:"required,gt=0,max=12"`
	StartDate           time.Time `json:"start_date" binding:"required"`
	MaturityDate        time.Time `json:"maturity_date" binding:"required"`
}

// Create handles fixed deposit creation
// @Summary     Create a fixed deposit
// @Description Create a fixed deposit; returns and interest projections are computed on write
// @Tags        fixed-deposits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FixedDepositRequest true "Fixed deposit data"
// @Success     201 {object} map[string]any
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Bank not found"
// @Router      /fixed-deposits [post]
func (h *FixedDepositHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FixedDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fd, err := h.fdService.Create(userID, req.BankID, req.TotalInvestedAmount, req.InterestRate, req.StartDate, req.MaturityDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "create", "fixed_deposit", fd.ID, c.ClientIP(), map[string]any{
		"bank_id":  req.BankID,
		"invested": req.TotalInvestedAmount,
	})
	c.JSON(http.StatusCreated, gin.H{"fixed_deposit": fd})
}

// List handles fixed deposit listing
// @Summary     List fixed deposits
// @Tags        fixed-deposits
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]any
// @Router      /fixed-deposits [get]
func (h *FixedDepositHandler) List(c *gin.Context) {
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

	list, err := h.fdService.List(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles fixed deposit retrieval
// @Summary     Get a fixed deposit
// @Tags        fixed-deposits
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Fixed deposit ID"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /fixed-deposits/{id} [get]
func (h *FixedDepositHandler) Get(c *gin.Context) {
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

	fd, err := h.fdService.GetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fixed_deposit": fd})
}

// Update handles fixed deposit updates
// @Summary     Update a fixed deposit
// @Description Replace the deposit terms and recompute projections
// @Tags        fixed-deposits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Fixed deposit ID"
// @Param       request body FixedDepositRequest true "Fixed deposit data"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /fixed-deposits/{id} [put]
func (h *FixedDepositHandler) Update(c *gin.Context) {
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

	var req FixedDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fd, err := h.fdService.Update(userID, id, req.BankID, req.TotalInvestedAmount, req.InterestRate, req.StartDate, req.MaturityDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "update", "fixed_deposit", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"fixed_deposit": fd})
}

// Delete handles fixed deposit deletion
// @Summary     Delete a fixed deposit
// @Tags        fixed-deposits
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Fixed deposit ID"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /fixed-deposits/{id} [delete]
func (h *FixedDepositHandler) Delete(c *gin.Context) {
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

	if err := h.fdService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "delete", "fixed_deposit", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Fixed deposit deleted"})
}
