package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/finance"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

// stockService handles stock position and transaction-log business logic.
//
// Concurrent sells against the same position are not mutually excluded
// here; each request is an independent read-then-write cycle with only
// single-row update atomicity, matching the system's documented
// concurrency model.
type stockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db}
}

func validateStockOrder(symbol string, quantity, price float64) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Stock symbol is required")
	}
	if quantity <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be positive")
	}
	if price <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must be positive")
	}
	return nil
}

// findPosition looks up the open position for one
// (user, symbol, first name, last name) identity.
func (s *stockService) findPosition(tx *gorm.DB, userID uint, symbol, firstName, lastName string) (*models.StockPosition, error) {
	var position models.StockPosition
	err := tx.Where("user_id = ? AND stock_symbol = ? AND first_name = ? AND last_name = ?",
		userID, symbol, firstName, lastName).First(&position).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &position, nil
}

// Buy opens or extends a position and appends a buy entry to the
// transaction log. Subsequent buys fold into the weighted-average buy
// price.
func (s *stockService) Buy(userID uint, symbol, firstName, lastName string, quantity, price float64, date time.Time) (*models.StockPosition, error) {
	if err := validateStockOrder(symbol, quantity, price); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	var position *models.StockPosition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.findPosition(tx, userID, symbol, firstName, lastName)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing == nil {
			next := finance.ApplyBuy(finance.Position{}, quantity, price)
			position = &models.StockPosition{
				UserID:              userID,
				StockSymbol:         symbol,
				FirstName:           firstName,
				LastName:            lastName,
				Quantity:            next.Quantity,
				TotalInvestedAmount: next.TotalInvestedAmount,
				BuyPrice:            next.BuyPrice,
				BuyDate:             date,
			}
			if txErr := tx.Create(position).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		} else {
			next := finance.ApplyBuy(finance.Position{
				Quantity:            existing.Quantity,
				TotalInvestedAmount: existing.TotalInvestedAmount,
				BuyPrice:            existing.BuyPrice,
			}, quantity, price)

			existing.Quantity = next.Quantity
			existing.TotalInvestedAmount = next.TotalInvestedAmount
			existing.BuyPrice = next.BuyPrice
			if txErr := tx.Save(existing).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			position = existing
		}

		entry := &models.StockTransaction{
			UserID:          userID,
			StockSymbol:     symbol,
			Type:            models.StockTransactionBuy,
			Price:           price,
			Quantity:        quantity,
			TotalAmount:     price * quantity,
			TransactionDate: date,
		}
		if txErr := tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return position, nil
}

// Sell reduces a position, accumulating realized P&L at the current
// weighted-average cost, and appends a sell entry to the transaction log.
// When quantity reaches exactly zero the position row is deleted outright;
// its history survives only in the transaction log.
func (s *stockService) Sell(userID uint, symbol, firstName, lastName string, quantity, price float64, date time.Time) (*models.StockPosition, error) {
	if err := validateStockOrder(symbol, quantity, price); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	var position *models.StockPosition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.findPosition(tx, userID, symbol, firstName, lastName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInsufficientStock
		}
		if err != nil {
			return err
		}
		if existing.Quantity < quantity {
			return apperrors.ErrInsufficientStock
		}

		res := finance.ApplySell(finance.Position{
			Quantity:            existing.Quantity,
			TotalInvestedAmount: existing.TotalInvestedAmount,
			BuyPrice:            existing.BuyPrice,
		}, quantity, price)

		existing.Quantity = res.Position.Quantity
		existing.TotalInvestedAmount = res.Position.TotalInvestedAmount
		existing.RealizedProfitLoss += res.ProfitLoss
		existing.SellPrice = price
		existing.SellDate = &date

		entry := &models.StockTransaction{
			UserID:          userID,
			StockSymbol:     symbol,
			Type:            models.StockTransactionSell,
			Price:           price,
			Quantity:        quantity,
			TotalAmount:     price * quantity,
			TransactionDate: date,
		}
		if txErr := tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if res.Closed {
			if txErr := existing.DeleteClosed(tx); txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		} else {
			if txErr := tx.Save(existing).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}

		position = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return position, nil
}

// ListPositions returns a paginated list of the user's open positions.
func (s *stockService) ListPositions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.StockPosition], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.StockPosition{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var positions []models.StockPosition
	if err := base.Order("stock_symbol").Scopes(pagination.Paginate(page)).Find(&positions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(positions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListTransactions returns the user's transaction log, newest first,
// optionally filtered by symbol. Entries persist after their position is
// closed and deleted.
func (s *stockService) ListTransactions(userID uint, symbol string, page pagination.PageRequest) (*pagination.PageResponse[models.StockTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.StockTransaction{}).Where("user_id = ?", userID)
	if symbol != "" {
		base = base.Where("stock_symbol = ?", symbol)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.StockTransaction
	if err := base.Order("transaction_date DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
