package services

import (
	"context"
	"testing"
	"time"

	"nivesh/internal/models"
	"nivesh/internal/quotes"
	"nivesh/internal/testutil"
)

// stubQuotes serves fixed prices per symbol; unknown symbols are unavailable.
type stubQuotes struct {
	prices map[string]float64
}

func (s *stubQuotes) Quote(_ context.Context, symbol string) (*quotes.Quote, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return nil, quotes.ErrUnavailable
	}
	return &quotes.Quote{Symbol: symbol, Price: price}, nil
}

func TestRevalueAll(t *testing.T) {
	t.Run("refreshes_every_sector", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestBank(t, db)
		refs := seedRealEstateRefs(t, db)

		// Stale derived values throughout; the batch must overwrite them.
		seedFixedDeposit(t, db, user.ID, bank.ID, 100000, 0, 0)
		seedGold(t, db, user.ID, 50000, 0)
		seedRealEstate(t, db, user.ID, refs, 400000, 0)
		testutil.CreateTestGoldRate(t, db, 6000, 7000, time.Now())
		testutil.CreateTestAreaPrice(t, db, "Koramangala", refs.cityID, refs.stateID, 1000)

		stockSvc := NewStockService(db)
		_, err := stockSvc.Buy(user.ID, "INFY", "Asha", "Rao", 10, 100, time.Now())
		testutil.AssertNoError(t, err)

		svc := NewRevaluationService(db, &stubQuotes{prices: map[string]float64{"INFY": 120}})
		result := svc.RevalueAll(context.Background())

		if result.FixedDeposits != 1 || result.GoldHoldings != 1 || result.RealEstate != 1 || result.StockPositions != 1 {
			t.Fatalf("expected one update per sector, got %+v", result)
		}
		if result.Failed != 0 {
			t.Errorf("expected no failures, got %d", result.Failed)
		}

		var fd models.FixedDeposit
		db.Where("user_id = ?", user.ID).First(&fd)
		if fd.CurrentReturnAmount != 106000 {
			t.Errorf("expected fixed deposit refreshed to 106000, got %v", fd.CurrentReturnAmount)
		}

		var gold models.GoldInvestment
		db.Where("user_id = ?", user.ID).First(&gold)
		if gold.TotalReturnAmount != 70000 {
			t.Errorf("expected gold refreshed to 70000, got %v", gold.TotalReturnAmount)
		}

		var property models.RealEstateInvestment
		db.Where("user_id = ?", user.ID).First(&property)
		if property.CurrentValue != 500000 {
			t.Errorf("expected property refreshed to 500000, got %v", property.CurrentValue)
		}

		var position models.StockPosition
		db.Where("user_id = ?", user.ID).First(&position)
		if position.TotalReturnAmount != 1200 {
			t.Errorf("expected mark-to-market 1200, got %v", position.TotalReturnAmount)
		}
		if position.UnrealizedProfitLoss != 200 {
			t.Errorf("expected unrealized 200, got %v", position.UnrealizedProfitLoss)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestBank(t, db)
		seedFixedDeposit(t, db, user.ID, bank.ID, 100000, 0, 0)

		svc := NewRevaluationService(db, &stubQuotes{})
		svc.RevalueAll(context.Background())

		var first models.FixedDeposit
		db.Where("user_id = ?", user.ID).First(&first)

		svc.RevalueAll(context.Background())

		var second models.FixedDeposit
		db.Where("user_id = ?", user.ID).First(&second)

		if first.CurrentReturnAmount != second.CurrentReturnAmount ||
			first.TotalReturnedAmount != second.TotalReturnedAmount {
			t.Errorf("expected identical results on rerun: first %+v second %+v", first, second)
		}
	})

	t.Run("unavailable_quote_skips_and_keeps_stale", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		stockSvc := NewStockService(db)
		_, err := stockSvc.Buy(user.ID, "INFY", "Asha", "Rao", 10, 100, time.Now())
		testutil.AssertNoError(t, err)

		// Give the position a previous mark so staleness is observable.
		db.Model(&models.StockPosition{}).Where("user_id = ?", user.ID).
			Updates(map[string]any{"total_return_amount": 1100, "unrealized_profit_loss": 100})

		svc := NewRevaluationService(db, &stubQuotes{})
		result := svc.RevalueAll(context.Background())

		if result.Skipped != 1 {
			t.Errorf("expected 1 skip, got %d", result.Skipped)
		}
		if result.Failed != 0 {
			t.Errorf("expected no failures, got %d", result.Failed)
		}

		var position models.StockPosition
		db.Where("user_id = ?", user.ID).First(&position)
		if position.TotalReturnAmount != 1100 {
			t.Errorf("expected stale mark retained, got %v", position.TotalReturnAmount)
		}
	})

	t.Run("missing_gold_rate_skips_holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		seedGold(t, db, user.ID, 50000, 70000)

		svc := NewRevaluationService(db, &stubQuotes{})
		result := svc.RevalueAll(context.Background())

		if result.Skipped != 1 {
			t.Errorf("expected gold holding skipped, got %d", result.Skipped)
		}

		var gold models.GoldInvestment
		db.Where("user_id = ?", user.ID).First(&gold)
		if gold.TotalReturnAmount != 70000 {
			t.Errorf("expected stale valuation retained, got %v", gold.TotalReturnAmount)
		}
	})
}
