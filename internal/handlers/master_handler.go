package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/services"
)

// MasterHandler serves the reference data endpoints: banks, states,
// cities, property types, area prices, and gold-rate snapshots.
type MasterHandler struct {
	masterService services.MasterServicer
}

// NewMasterHandler creates a new MasterHandler
func NewMasterHandler(masterService services.MasterServicer) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// NameRequest is the shared payload for name-only master records.
type NameRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CityRequest represents a city creation payload.
type CityRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	StateID uint   `json:"state_id" binding:"required"`
}

// SubPropertyTypeRequest represents a sub property type creation payload.
type SubPropertyTypeRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	PropertyTypeID uint   `json:"property_type_id" binding:"required"`
}

// AreaPriceRequest represents an area price creation payload.
type AreaPriceRequest struct {
	AreaName           string  `json:"area_name" binding:"required,max=255"`
	CityID             uint    `json:"city_id" binding:"required"`
	StateID            uint    `json:"state_id" binding:"required"`
	PricePerSquareFoot float64 `json:"price_per_square_foot" binding:"required,gt=0"`
}

// GoldRateRequest is the rate-scraper ingest payload.
type GoldRateRequest struct {
	Rate22KPerGram float64    `json:"rate_22k_per_gram" binding:"required,gt=0"`
	Rate24KPerGram float64    `json:"rate_24k_per_gram" binding:"required,gt=0"`
	RecordedAt     *time.Time `json:"recorded_at"`
}

// CreateBank handles bank creation
// @Summary     Create a bank
// @Tags        master
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body NameRequest true "Bank data"
// @Success     201 {object} map[string]any
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /master/banks [post]
func (h *MasterHandler) CreateBank(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bank, err := h.masterService.CreateBank(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bank": bank})
}

// ListBanks handles bank listing
// @Summary     List banks
// @Tags        master
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any
// @Router      /master/banks [get]
func (h *MasterHandler) ListBanks(c *gin.Context) {
	banks, err := h.masterService.ListBanks()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

// CreateState handles state creation
// @Summary     Create a state
// @Tags        master
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body NameRequest true "State data"
// @Success     201 {object} map[string]any
// @Router      /master/states [post]
func (h *MasterHandler) CreateState(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	state, err := h.masterService.CreateState(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"state": state})
}

// ListStates handles state listing
// @Summary     List states
// @Tags        master
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any
// @Router      /master/states [get]
func (h *MasterHandler) ListStates(c *gin.Context) {
	states, err := h.masterService.ListStates()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"states": states})
}

// CreateCity handles city creation
// @Summary     Create a city within a state
// @Tags        master
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CityRequest true "City data"
// @Success     201 {object} map[string]any
// @Failure     404 {object} ErrorResponse "State not found"
// @Router      /master/cities [post]
func (h *MasterHandler) CreateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	city, err := h.masterService.CreateCity(req.Name, req.StateID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"city": city})
}

// ListCities handles city listing
// @Summary     List cities, optionally filtered by state
// @Tags        master
// @Produce     json
// @Security    BearerAuth
// @Param       state_id query int false "Filter by state"
// @Success     200 {object} map[string]any
// @Router      /master/cities [get]
func (h *MasterHandler) ListCities(c *gin.Context) {
	var stateID uint
	if raw := c.Query("state_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid state_id"))
			return
		}
		stateID = uint(parsed)
	}

	cities, err := h.masterService.ListCities(stateID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// CreatePropertyType handles property type creation
// @Summary     Create a property type
// @Tags        master
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body NameRequest true "Property type data"
// @Success     201 {object} map[string]any
// @Router      /master/property-types [post]
func (h *MasterHandler) CreatePropertyType(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pt, err := h.masterService.CreatePropertyType(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"property_type": pt})
}

// ListPropertyTypes handles property type listing
// @Summary     List property types
// @Tags        master
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any
// @Router      /master/property-types [get]
func (h *MasterHandler) ListPropertyTypes(c *gin.Context) {
	types, err := h.masterService.ListPropertyTypes()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_types": types})
}

// CreateSubPropertyType handles sub property type creation
// @Summary     Create a sub property type under a property type
// @Tags        master
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubPropertyTypeRequest true "Sub property type data"
// @Success     201 {object} map[string]any
// @Failure     404 {object} ErrorResponse "Property type not found"
// @Router      /master/sub-property-types [post]
func (h *MasterHandler) CreateSubPropertyType(c *gin.Context) {
	var req SubPropertyTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	spt, err := h.masterService.CreateSubPropertyType(req.Name, req.PropertyTypeID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sub_property_type": spt})
}

// ListSubPropertyTypes handles sub property type listing
// @Summary     List sub property types, optionally filtered by property type
// @Tags        master
// @Produce     json
// @Security    BearerAuth
// @Param       property_type_id query int false "Filter by property type"
// @Success     200 {object} map[string]any
// @Router      /master/sub-property-types [get]
func (h *MasterHandler) ListSubPropertyTypes(c *gin.Context) {
	var propertyTypeID uint
	if raw := c.Query("property_type_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid property_type_id"))
			return
		}
		propertyTypeID = uint(parsed)
	}

	types, err := h.masterService.ListSubPropertyTypes(propertyTypeID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sub_property_types": types})
}

// CreateAreaPrice handles area price creation
// @Summary     Create an area price for an exact (area, city, state) key
// @Tags        master
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AreaPriceRequest true "Area price data"
// @Success     201 {object} map[string]any
// @Failure     404 {object} ErrorResponse "City or state not found"
// @Router      /master/area-prices [post]
func (h *MasterHandler) CreateAreaPrice(c *gin.Context) {
	var req AreaPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	price, err := h.masterService.CreateAreaPrice(req.AreaName, req.CityID, req.StateID, req.PricePerSquareFoot)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"area_price": price})
}

// ListAreaPrices handles area price listing
// @Summary     List area prices, optionally filtered by city
// @Tags        master
// @Produce     json
// @Security    BearerAuth
// @Param       city_id query int false "Filter by city"
// @Success     200 {object} map[string]any
// @Router      /master/area-prices [get]
func (h *MasterHandler) ListAreaPrices(c *gin.Context) {
	var cityID uint
	if raw := c.Query("city_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid city_id"))
			return
		}
		cityID = uint(parsed)
	}

	prices, err := h.masterService.ListAreaPrices(cityID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"area_prices": prices})
}

// RecordGoldRate ingests a gold-rate snapshot from the rate scraper.
// @Summary     Record a gold rate snapshot
// @Description Append-only ingest endpoint used by the external rate scraper
// @Tags        master
// @Accept      json
// @Produce     json
// @Param       request body GoldRateRequest true "Gold rate snapshot"
// @Success     201 {object} map[string]any
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Missing or invalid API key"
// @Router      /pipeline/gold-rates [post]
func (h *MasterHandler) RecordGoldRate(c *gin.Context) {
	var req GoldRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	rate, err := h.masterService.RecordGoldRate(req.Rate22KPerGram, req.Rate24KPerGram, recordedAt)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"gold_rate": rate})
}

// LatestGoldRate returns the most recent gold rate snapshot.
// @Summary     Get the latest gold rate
// @Tags        master
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any
// @Failure     404 {object} ErrorResponse "No snapshot recorded yet"
// @Router      /master/gold-rates/latest [get]
func (h *MasterHandler) LatestGoldRate(c *gin.Context) {
	rate, err := h.masterService.LatestGoldRate()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gold_rate": rate})
}
