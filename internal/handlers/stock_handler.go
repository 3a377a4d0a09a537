package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/pagination"
	"nivesh/internal/services"
)

// StockHandler serves the stock position and transaction endpoints.
type StockHandler struct {
	stockService services.StockServicer
	auditor      services.AuditServicer
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService services.StockServicer, auditor services.AuditServicer) *StockHandler {
	return &StockHandler{stockService: stockService, auditor: auditor}
}

// StockOrderRequest represents a buy or sell order payload. The holder
// first and last names are part of the position identity: the same symbol
// held under different names is tracked as separate positions.
type StockOrderRequest struct {
	StockSymbol     string     `json:"stock_symbol" binding:"required,max=20"`
	FirstName       string     `json:"first_name" binding:"max=100"`
	LastName        string     `json:"last_name" binding:"max=100"`
	Quantity        float64    `json:"quantity" binding:"required,gt=0"`
	Price           float64    `json:"price" binding:"required,gt=0"`
	TransactionDate *time.Time `json:"transaction_date"`
}

func (r StockOrderRequest) date() time.Time {
	if r.TransactionDate != nil {
		return *r.TransactionDate
	}
	return time.Now()
}

// Buy handles a buy order
// @Summary     Buy stock
// @Description Record a buy; folds into the weighted-average position for the holder
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body StockOrderRequest true "Buy order"
// @Success     201 {object} map[string]any
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /stocks/buy [post]
func (h *StockHandler) Buy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StockOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	position, err := h.stockService.Buy(userID, req.StockSymbol, req.FirstName, req.LastName, req.Quantity, req.Price, req.date())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "buy", "stock_position", position.ID, c.ClientIP(), map[string]any{
		"symbol":   req.StockSymbol,
		"quantity": req.Quantity,
		"price":    req.Price,
	})
	c.JSON(http.StatusCreated, gin.H{"position": position})
}

// Sell handles a sell order
// @Summary     Sell stock
// @Description Record a sell at average cost; a closing sell removes the position
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body StockOrderRequest true "Sell order"
// @Success     200 {object} map[string]any
// @Failure     400 {object} ErrorResponse "Insufficient quantity"
// @Router      /stocks/sell [post]
func (h *StockHandler) Sell(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StockOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	position, err := h.stockService.Sell(userID, req.StockSymbol, req.FirstName, req.LastName, req.Quantity, req.Price, req.date())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "sell", "stock_position", position.ID, c.ClientIP(), map[string]any{
		"symbol":   req.StockSymbol,
		"quantity": req.Quantity,
		"price":    req.Price,
	})
	c.JSON(http.StatusOK, gin.H{"position": position})
}

// ListPositions handles position listing
// @Summary     List open stock positions
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]any
// @Router      /stocks/positions [get]
func (h *StockHandler) ListPositions(c *gin.Context) {
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

	list, err := h.stockService.ListPositions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListTransactions handles transaction history listing
// @Summary     List stock transactions
// @Description List the append-only transaction ledger, optionally filtered by symbol
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       symbol query string false "Filter by symbol"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]any
// @Router      /stocks/transactions [get]
func (h *StockHandler) ListTransactions(c *gin.Context) {
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

	list, err := h.stockService.ListTransactions(userID, c.Query("symbol"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
