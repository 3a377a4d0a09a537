package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/finance"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

// goldService handles gold holding business logic.
type goldService struct {
	db            *gorm.DB
	masterService MasterServicer
}

// NewGoldService creates a new GoldServicer.
func NewGoldService(db *gorm.DB, masterService MasterServicer) GoldServicer {
	return &goldService{db: db, masterService: masterService}
}

func validateGoldInput(weight, purchasePrice float64, purity int) error {
	if weight <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Gold weight must be positive")
	}
	if purchasePrice <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase price must be positive")
	}
	if !finance.ValidPurity(purity) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Gold purity must be 22 or 24")
	}
	return nil
}

// Create registers a gold holding, valued against the latest rate
// snapshot at write time. Creation is rejected outright when no snapshot
// exists; the record is never silently zeroed.
func (s *goldService) Create(userID uint, weight, purchasePrice float64, purity int) (*models.GoldInvestment, error) {
	if err := validateGoldInput(weight, purchasePrice, purity); err != nil {
		return nil, err
	}

	rate, err := s.masterService.LatestGoldRate()
	if err != nil {
		return nil, err
	}

	gold := &models.GoldInvestment{
		UserID:            userID,
		GoldWeight:        weight,
		GoldPurchasePrice: purchasePrice,
		PurityOfGold:      purity,
	}
	gold.TotalReturnAmount, gold.Profit = finance.GoldValue(weight, purchasePrice, purity, rate.Rate22KPerGram, rate.Rate24KPerGram)

	if err := s.db.Create(gold).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return gold, nil
}

// List returns a paginated list of the user's gold holdings.
func (s *goldService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.GoldInvestment], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.GoldInvestment{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var holdings []models.GoldInvestment
	if err := base.Scopes(pagination.Paginate(page)).Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(holdings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID returns a gold holding if it belongs to the user.
func (s *goldService) GetByID(userID, id uint) (*models.GoldInvestment, error) {
	var gold models.GoldInvestment
	if err := s.db.Where("user_id = ?", userID).First(&gold, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoldInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &gold, nil
}

// Update replaces the user-entered fields and revalues against the
// latest rate snapshot.
func (s *goldService) Update(userID, id uint, weight, purchasePrice float64, purity int) (*models.GoldInvestment, error) {
	if err := validateGoldInput(weight, purchasePrice, purity); err != nil {
		return nil, err
	}

	gold, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	rate, err := s.masterService.LatestGoldRate()
	if err != nil {
		return nil, err
	}

	gold.GoldWeight = weight
	gold.GoldPurchasePrice = purchasePrice
	gold.PurityOfGold = purity
	gold.TotalReturnAmount, gold.Profit = finance.GoldValue(weight, purchasePrice, purity, rate.Rate22KPerGram, rate.Rate24KPerGram)

	if err := s.db.Save(gold).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return gold, nil
}

// Delete removes a gold holding owned by the user.
func (s *goldService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.GoldInvestment{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoldInvestmentNotFound
	}
	return nil
}
