package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
)

// masterService handles reference/master data: banks, states, cities,
// property types, area prices, and gold-rate snapshots.
type masterService struct {
	db *gorm.DB
}

// NewMasterService creates a new MasterServicer.
func NewMasterService(db *gorm.DB) MasterServicer {
	return &masterService{db: db}
}

// CreateBank creates a bank master record.
func (s *masterService) CreateBank(name string) (*models.Bank, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Bank name is required")
	}

	bank := &models.Bank{Name: name}
	if err := s.db.Create(bank).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bank, nil
}

// ListBanks returns all banks ordered by name.
func (s *masterService) ListBanks() ([]models.Bank, error) {
	var banks []models.Bank
	if err := s.db.Order("name").Find(&banks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return banks, nil
}

// GetBankByID returns a bank by its ID.
func (s *masterService) GetBankByID(id uint) (*models.Bank, error) {
	var bank models.Bank
	if err := s.db.First(&bank, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bank, nil
}

// CreateState creates a state master record.
func (s *masterService) CreateState(name string) (*models.State, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "State name is required")
	}

	state := &models.State{Name: name}
	if err := s.db.Create(state).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return state, nil
}

// ListStates returns all states ordered by name.
func (s *masterService) ListStates() ([]models.State, error) {
	var states []models.State
	if err := s.db.Order("name").Find(&states).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return states, nil
}

// GetStateByID returns a state by its ID.
func (s *masterService) GetStateByID(id uint) (*models.State, error) {
	var state models.State
	if err := s.db.First(&state, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &state, nil
}

// CreateCity creates a city under an existing state.
func (s *masterService) CreateCity(name string, stateID uint) (*models.City, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "City name is required")
	}
	if _, err := s.GetStateByID(stateID); err != nil {
		return nil, err
	}

	city := &models.City{Name: name, StateID: stateID}
	if err := s.db.Create(city).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return city, nil
}

// ListCities returns cities, optionally filtered by state.
func (s *masterService) ListCities(stateID uint) ([]models.City, error) {
	query := s.db.Order("name")
	if stateID != 0 {
		query = query.Where("state_id = ?", stateID)
	}

	var cities []models.City
	if err := query.Find(&cities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cities, nil
}

// GetCityByID returns a city by its ID.
func (s *masterService) GetCityByID(id uint) (*models.City, error) {
	var city models.City
	if err := s.db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &city, nil
}

// CreatePropertyType creates a property type master record.
func (s *masterService) CreatePropertyType(name string) (*models.PropertyType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Property type name is required")
	}

	pt := &models.PropertyType{Name: name}
	if err := s.db.Create(pt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pt, nil
}

// ListPropertyTypes returns all property types ordered by name.
func (s *masterService) ListPropertyTypes() ([]models.PropertyType, error) {
	var types []models.PropertyType
	if err := s.db.Order("name").Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}

// GetPropertyTypeByID returns a property type by its ID.
func (s *masterService) GetPropertyTypeByID(id uint) (*models.PropertyType, error) {
	var pt models.PropertyType
	if err := s.db.First(&pt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPropertyTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pt, nil
}

// CreateSubPropertyType creates a property sub-type under an existing property type.
func (s *masterService) CreateSubPropertyType(name string, propertyTypeID uint) (*models.SubPropertyType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Sub property type name is required")
	}
	if _, err := s.GetPropertyTypeByID(propertyTypeID); err != nil {
		return nil, err
	}

	spt := &models.SubPropertyType{Name: name, PropertyTypeID: propertyTypeID}
	if err := s.db.Create(spt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spt, nil
}

// ListSubPropertyTypes returns sub-types, optionally filtered by property type.
func (s *masterService) ListSubPropertyTypes(propertyTypeID uint) ([]models.SubPropertyType, error) {
	query := s.db.Order("name")
	if propertyTypeID != 0 {
		query = query.Where("property_type_id = ?", propertyTypeID)
	}

	var types []models.SubPropertyType
	if err := query.Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}

// CreateAreaPrice creates an area-price record for the exact
// (area name, city, state) key.
func (s *masterService) CreateAreaPrice(areaName string, cityID, stateID uint, pricePerSquareFoot float64) (*models.AreaPrice, error) {
	if strings.TrimSpace(areaName) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Area name is required")
	}
	if pricePerSquareFoot <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price per square foot must be positive")
	}
	if _, err := s.GetCityByID(cityID); err != nil {
		return nil, err
	}
	if _, err := s.GetStateByID(stateID); err != nil {
		return nil, err
	}

	ap := &models.AreaPrice{
		AreaName:           areaName,
		CityID:             cityID,
		StateID:            stateID,
		PricePerSquareFoot: pricePerSquareFoot,
	}
	if err := s.db.Create(ap).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ap, nil
}

// ListAreaPrices returns area prices, optionally filtered by city.
func (s *masterService) ListAreaPrices(cityID uint) ([]models.AreaPrice, error) {
	query := s.db.Order("area_name")
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}

	var prices []models.AreaPrice
	if err := query.Find(&prices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return prices, nil
}

// FindAreaPrice returns the area price matching the exact
// (area name, city, state) key. Absence is a hard error; there is no
// fallback to a city or state average.
func (s *masterService) FindAreaPrice(areaName string, cityID, stateID uint) (*models.AreaPrice, error) {
	var ap models.AreaPrice
	err := s.db.Where("area_name = ? AND city_id = ? AND state_id = ?", areaName, cityID, stateID).
		First(&ap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAreaPriceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ap, nil
}

// RecordGoldRate appends a gold-rate snapshot. Snapshots are immutable;
// the scraper posts a new one at most once a day.
func (s *masterService) RecordGoldRate(rate22, rate24 float64, recordedAt time.Time) (*models.GoldRate, error) {
	if rate22 <= 0 || rate24 <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Gold rates must be positive")
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	rate := &models.GoldRate{
		Rate22KPerGram: rate22,
		Rate24KPerGram: rate24,
		RecordedAt:     recordedAt,
	}
	if err := s.db.Create(rate).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rate, nil
}

// LatestGoldRate returns the most recent gold-rate snapshot by recorded_at.
func (s *masterService) LatestGoldRate() (*models.GoldRate, error) {
	var rate models.GoldRate
	if err := s.db.Order("recorded_at DESC").First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoldRateMissing
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rate, nil
}
