package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"nivesh/internal/finance"
	"nivesh/internal/logger"
	"nivesh/internal/models"
	"nivesh/internal/quotes"
)

// RevaluationResult summarises one batch run. A record is Updated when
// its derived fields were recomputed and saved, Skipped when its pricing
// input is unavailable (stale values are kept), and Failed when the save
// itself errored. Failures never abort the run.
type RevaluationResult struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	FixedDeposits  int `json:"fixed_deposits"`
	GoldHoldings   int `json:"gold_holdings"`
	RealEstate     int `json:"real_estate"`
	StockPositions int `json:"stock_positions"`

	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// revaluationService recomputes every derived valuation in the system.
// Records are processed one at a time so a single bad row cannot poison
// the rest of the run.
type revaluationService struct {
	db     *gorm.DB
	quotes quotes.Provider
}

// NewRevaluationService creates a new Revaluer.
func NewRevaluationService(db *gorm.DB, provider quotes.Provider) Revaluer {
	return &revaluationService{db: db, quotes: provider}
}

// RevalueAll walks all fixed deposits, gold holdings, real estate
// records, and open stock positions and refreshes their derived fields.
func (s *revaluationService) RevalueAll(ctx context.Context) *RevaluationResult {
	result := &RevaluationResult{StartedAt: time.Now()}

	s.revalueFixedDeposits(result)
	s.revalueGold(result)
	s.revalueRealEstate(result)
	s.revalueStocks(ctx, result)

	result.Duration = time.Since(result.StartedAt)
	logger.Get().Infow("revaluation run complete",
		"fixed_deposits", result.FixedDeposits,
		"gold_holdings", result.GoldHoldings,
		"real_estate", result.RealEstate,
		"stock_positions", result.StockPositions,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", result.Duration,
	)
	return result
}

func (s *revaluationService) revalueFixedDeposits(result *RevaluationResult) {
	var deposits []models.FixedDeposit
	if err := s.db.Find(&deposits).Error; err != nil {
		logger.Get().Errorw("failed to load fixed deposits for revaluation", "error", err)
		result.Failed++
		return
	}

	now := time.Now()
	for i := range deposits {
		fd := &deposits[i]
		applyFixedDepositReturns(fd, now)
		if err := s.db.Save(fd).Error; err != nil {
			logger.Get().Errorw("failed to save revalued fixed deposit", "error", err, "id", fd.ID)
			result.Failed++
			continue
		}
		result.FixedDeposits++
	}
}

func (s *revaluationService) revalueGold(result *RevaluationResult) {
	var holdings []models.GoldInvestment
	if err := s.db.Find(&holdings).Error; err != nil {
		logger.Get().Errorw("failed to load gold holdings for revaluation", "error", err)
		result.Failed++
		return
	}
	if len(holdings) == 0 {
		return
	}

	var rate models.GoldRate
	if err := s.db.Order("recorded_at DESC").First(&rate).Error; err != nil {
		// No rate snapshot means nothing to value against; keep every
		// holding at its stale values rather than zeroing them.
		logger.Get().Warnw("no gold rate available, skipping gold revaluation", "holdings", len(holdings))
		result.Skipped += len(holdings)
		return
	}

	for i := range holdings {
		gold := &holdings[i]
		gold.TotalReturnAmount, gold.Profit = finance.GoldValue(
			gold.GoldWeight, gold.GoldPurchasePrice, gold.PurityOfGold,
			rate.Rate22KPerGram, rate.Rate24KPerGram,
		)
		if err := s.db.Save(gold).Error; err != nil {
			logger.Get().Errorw("failed to save revalued gold holding", "error", err, "id", gold.ID)
			result.Failed++
			continue
		}
		result.GoldHoldings++
	}
}

func (s *revaluationService) revalueRealEstate(result *RevaluationResult) {
	var properties []models.RealEstateInvestment
	if err := s.db.Find(&properties).Error; err != nil {
		logger.Get().Errorw("failed to load real estate for revaluation", "error", err)
		result.Failed++
		return
	}

	for i := range properties {
		property := &properties[i]

		var price models.AreaPrice
		err := s.db.Where("area_name = ? AND city_id = ? AND state_id = ?",
			property.AreaName, property.CityID, property.StateID).First(&price).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The master record was removed after the investment was
				// created. Keep the stale valuation.
				logger.Get().Warnw("no area price for property, skipping",
					"id", property.ID, "area", property.AreaName)
				result.Skipped++
				continue
			}
			logger.Get().Errorw("failed to load area price", "error", err, "id", property.ID)
			result.Failed++
			continue
		}

		property.CurrentValue, property.Profit = finance.RealEstateValue(
			property.AreaInSquareFeet, property.PurchasePrice, price.PricePerSquareFoot)
		if err := s.db.Save(property).Error; err != nil {
			logger.Get().Errorw("failed to save revalued property", "error", err, "id", property.ID)
			result.Failed++
			continue
		}
		result.RealEstate++
	}
}

func (s *revaluationService) revalueStocks(ctx context.Context, result *RevaluationResult) {
	var positions []models.StockPosition
	if err := s.db.Find(&positions).Error; err != nil {
		logger.Get().Errorw("failed to load stock positions for revaluation", "error", err)
		result.Failed++
		return
	}

	for i := range positions {
		position := &positions[i]

		quote, err := s.quotes.Quote(ctx, position.StockSymbol)
		if err != nil {
			if errors.Is(err, quotes.ErrUnavailable) {
				result.Skipped++
				continue
			}
			logger.Get().Errorw("failed to fetch quote", "error", err, "symbol", position.StockSymbol)
			result.Failed++
			continue
		}

		position.TotalReturnAmount, position.UnrealizedProfitLoss = finance.MarkToMarket(
			position.Quantity, position.BuyPrice, quote.Price)
		if err := s.db.Save(position).Error; err != nil {
			logger.Get().Errorw("failed to save revalued stock position", "error", err, "id", position.ID)
			result.Failed++
			continue
		}
		result.StockPositions++
	}
}
