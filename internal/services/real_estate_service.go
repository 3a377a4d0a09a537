package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/finance"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

// realEstateService handles property holding business logic.
type realEstateService struct {
	db            *gorm.DB
	masterService MasterServicer
}

// NewRealEstateService creates a new RealEstateServicer.
func NewRealEstateService(db *gorm.DB, masterService MasterServicer) RealEstateServicer {
	return &realEstateService{db: db, masterService: masterService}
}

func validateRealEstateInput(in RealEstateInput) error {
	if strings.TrimSpace(in.AreaName) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Area name is required")
	}
	if in.AreaInSquareFeet <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Area must be positive")
	}
	if in.PurchasePrice <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase price must be positive")
	}
	return nil
}

// Create registers a property holding valued against the exact area-price
// match for its (area name, city, state) key. A missing match rejects the
// record; there is no fallback valuation.
func (s *realEstateService) Create(userID uint, in RealEstateInput) (*models.RealEstateInvestment, error) {
	if err := validateRealEstateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.masterService.GetPropertyTypeByID(in.PropertyTypeID); err != nil {
		return nil, err
	}
	if _, err := s.masterService.GetCityByID(in.CityID); err != nil {
		return nil, err
	}

	areaPrice, err := s.masterService.FindAreaPrice(in.AreaName, in.CityID, in.StateID)
	if err != nil {
		return nil, err
	}

	property := &models.RealEstateInvestment{
		UserID:            userID,
		PropertyTypeID:    in.PropertyTypeID,
		SubPropertyTypeID: in.SubPropertyTypeID,
		StateID:           in.StateID,
		CityID:            in.CityID,
		AreaName:          in.AreaName,
		AreaInSquareFeet:  in.AreaInSquareFeet,
		PurchasePrice:     in.PurchasePrice,
	}
	property.CurrentValue, property.Profit = finance.RealEstateValue(in.AreaInSquareFeet, in.PurchasePrice, areaPrice.PricePerSquareFoot)

	if err := s.db.Create(property).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return property, nil
}

// List returns a paginated list of the user's properties with reference
// names preloaded for display.
func (s *realEstateService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.RealEstateInvestment], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.RealEstateInvestment{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var properties []models.RealEstateInvestment
	if err := s.db.Preload("PropertyType").Preload("City").Preload("State").
		Where("user_id = ?", userID).
		Scopes(pagination.Paginate(page)).Find(&properties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(properties, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID returns a property if it belongs to the user.
func (s *realEstateService) GetByID(userID, id uint) (*models.RealEstateInvestment, error) {
	var property models.RealEstateInvestment
	if err := s.db.Preload("PropertyType").Preload("City").Preload("State").
		Where("user_id = ?", userID).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRealEstateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &property, nil
}

// Update replaces the user-entered fields and revalues against the
// current exact area-price match.
func (s *realEstateService) Update(userID, id uint, in RealEstateInput) (*models.RealEstateInvestment, error) {
	if err := validateRealEstateInput(in); err != nil {
		return nil, err
	}

	property, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	areaPrice, err := s.masterService.FindAreaPrice(in.AreaName, in.CityID, in.StateID)
	if err != nil {
		return nil, err
	}

	property.PropertyTypeID = in.PropertyTypeID
	property.SubPropertyTypeID = in.SubPropertyTypeID
	property.StateID = in.StateID
	property.CityID = in.CityID
	property.AreaName = in.AreaName
	property.AreaInSquareFeet = in.AreaInSquareFeet
	property.PurchasePrice = in.PurchasePrice
	property.CurrentValue, property.Profit = finance.RealEstateValue(in.AreaInSquareFeet, in.PurchasePrice, areaPrice.PricePerSquareFoot)

	if err := s.db.Save(property).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return property, nil
}

// Delete removes a property owned by the user.
func (s *realEstateService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.RealEstateInvestment{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRealEstateNotFound
	}
	return nil
}
