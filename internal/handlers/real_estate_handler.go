package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/pagination"
	"nivesh/internal/services"
)

// RealEstateHandler serves the property holding endpoints.
type RealEstateHandler struct {
	reService services.RealEstateServicer
	auditor   services.AuditServicer
}

// NewRealEstateHandler creates a new RealEstateHandler
func NewRealEstateHandler(reService services.RealEstateServicer, auditor services.AuditServicer) *RealEstateHandler {
	return &RealEstateHandler{reService: reService, auditor: auditor}
}

// RealEstateRequest represents a property create/update payload.
type RealEstateRequest struct {
	PropertyTypeID    uint    `json:"property_type_id" binding:"required"`
	SubPropertyTypeID uint    `json:"sub_property_type_id"`
	StateID           uint    `json:"state_id" binding:"required"`
	CityID            uint    `json:"city_id" binding:"required"`
	AreaName          string  `json:"area_name" binding:"required,max=255"`
	AreaInSquareFeet  float64 `json:"area_in_square_feet" binding:"required,gt=0"`
	PurchasePrice     float64 `json:"purchase_price" binding:"required,gt=0"`
}

func (r RealEstateRequest) toInput() services.RealEstateInput {
	return services.RealEstateInput{
		PropertyTypeID:    r.PropertyTypeID,
		SubPropertyTypeID: r.SubPropertyTypeID,
		StateID:           r.StateID,
		CityID:            r.CityID,
		AreaName:          r.AreaName,
		AreaInSquareFeet:  r.AreaInSquareFeet,
		PurchasePrice:     r.PurchasePrice,
	}
}

// Create handles property creation
// @Summary     Create a property holding
// @Description Create a property valued against the exact area price match
// @Tags        real-estate
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RealEstateRequest true "Property data"
// @Success     201 {object} map[string]any
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No area price for this area, city and state"
// @Router      /real-estate [post]
func (h *RealEstateHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RealEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	property, err := h.reService.Create(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "create", "real_estate", property.ID, c.ClientIP(), map[string]any{
		"area":     req.AreaName,
		"purchase": req.PurchasePrice,
	})
	c.JSON(http.StatusCreated, gin.H{"real_estate": property})
}

// List handles property listing
// @Summary     List property holdings
// @Tags        real-estate
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]any
// @Router      /real-estate [get]
func (h *RealEstateHandler) List(c *gin.Context) {
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

	list, err := h.reService.List(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles property retrieval
// @Summary     Get a property holding
// @Tags        real-estate
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Property ID"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /real-estate/{id} [get]
func (h *RealEstateHandler) Get(c *gin.Context) {
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

	property, err := h.reService.GetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"real_estate": property})
}

// Update handles property updates
// @Summary     Update a property holding
// @Tags        real-estate
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Property ID"
// @Param       request body RealEstateRequest true "Property data"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /real-estate/{id} [put]
func (h *RealEstateHandler) Update(c *gin.Context) {
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

	var req RealEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	property, err := h.reService.Update(userID, id, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "update", "real_estate", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"real_estate": property})
}

// Delete handles property deletion
// @Summary     Delete a property holding
// @Tags        real-estate
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Property ID"
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /real-estate/{id} [delete]
func (h *RealEstateHandler) Delete(c *gin.Context) {
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

	if err := h.reService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditor.Log(userID, "delete", "real_estate", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
