package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/finance"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

// fixedDepositService handles fixed deposit business logic.
type fixedDepositService struct {
	db            *gorm.DB
	masterService MasterServicer
}

// NewFixedDepositService creates a new FixedDepositServicer.
func NewFixedDepositService(db *gorm.DB, masterService MasterServicer) FixedDepositServicer {
	return &fixedDepositService{db: db, masterService: masterService}
}

// validateFixedDepositInput rejects bad inputs before any computation runs.
func validateFixedDepositInput(invested, rate float64, start, maturity time.Time) error {
	if invested <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invested amount must be positive")
	}
	if rate <= 0 || rate > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Interest rate must be between 0 and 12")
	}
	if !maturity.After(start) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Maturity date must be after start date")
	}
	return nil
}

// Create registers a fixed deposit and computes its derived return fields.
func (s *fixedDepositService) Create(userID, bankID uint, invested, rate float64, start, maturity time.Time) (*models.FixedDeposit, error) {
	if err := validateFixedDepositInput(invested, rate, start, maturity); err != nil {
		return nil, err
	}
	bank, err := s.masterService.GetBankByID(bankID)
	if err != nil {
		return nil, err
	}

	fd := &models.FixedDeposit{
		UserID:              userID,
		BankID:              bankID,
		TotalInvestedAmount: invested,
		InterestRate:        rate,
		StartDate:           start,
		MaturityDate:        maturity,
	}
	applyFixedDepositReturns(fd, time.Now())

	if err := s.db.Create(fd).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fd.Bank = *bank
	return fd, nil
}

// applyFixedDepositReturns recomputes every derived field in place.
func applyFixedDepositReturns(fd *models.FixedDeposit, now time.Time) {
	res := finance.FixedDepositReturns(fd.TotalInvestedAmount, fd.InterestRate, fd.StartDate, fd.MaturityDate, now)
	fd.TenureInYears = res.TenureInYears
	fd.TenureCompletedYears = res.TenureCompletedYears
	fd.CurrentReturnAmount = res.CurrentReturnAmount
	fd.TotalReturnedAmount = res.TotalReturnedAmount
	fd.CurrentProfitAmount = res.CurrentProfitAmount
	fd.TotalYears = res.TenureLabel
}

// List returns a paginated list of the user's fixed deposits.
func (s *fixedDepositService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FixedDeposit], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.FixedDeposit{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var deposits []models.FixedDeposit
	if err := s.db.Preload("Bank").Where("user_id = ?", userID).
		Order("maturity_date").Scopes(pagination.Paginate(page)).Find(&deposits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(deposits, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID returns a fixed deposit if it belongs to the user.
func (s *fixedDepositService) GetByID(userID, id uint) (*models.FixedDeposit, error) {
	var fd models.FixedDeposit
	if err := s.db.Preload("Bank").Where("user_id = ?", userID).First(&fd, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedDepositNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fd, nil
}

// Update replaces the user-entered fields and recomputes derived fields.
// The computation is identical to the one run at creation and by the
// daily batch.
func (s *fixedDepositService) Update(userID, id, bankID uint, invested, rate float64, start, maturity time.Time) (*models.FixedDeposit, error) {
	if err := validateFixedDepositInput(invested, rate, start, maturity); err != nil {
		return nil, err
	}

	fd, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.masterService.GetBankByID(bankID); err != nil {
		return nil, err
	}

	fd.BankID = bankID
	fd.TotalInvestedAmount = invested
	fd.InterestRate = rate
	fd.StartDate = start
	fd.MaturityDate = maturity
	applyFixedDepositReturns(fd, time.Now())

	if err := s.db.Save(fd).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fd, nil
}

// Delete removes a fixed deposit owned by the user.
func (s *fixedDepositService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.FixedDeposit{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrFixedDepositNotFound
	}
	return nil
}
