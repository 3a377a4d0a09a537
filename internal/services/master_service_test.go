package services

import (
	"testing"
	"time"

	"nivesh/internal/testutil"
)

func TestBanks(t *testing.T) {
	t.Run("create_and_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterService(db)

		bank, err := svc.CreateBank("State Bank")
		testutil.AssertNoError(t, err)
		if bank.ID == 0 {
			t.Fatal("expected non-zero bank ID")
		}

		banks, err := svc.ListBanks()
		testutil.AssertNoError(t, err)
		if len(banks) != 1 || banks[0].Name != "State Bank" {
			t.Errorf("unexpected bank list: %+v", banks)
		}
	})

	t.Run("get_missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterService(db)

		_, err := svc.GetBankByID(9999)
		testutil.AssertAppError(t, err, "BANK_NOT_FOUND")
	})
}

func TestCities(t *testing.T) {
	t.Run("scoped_to_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterService(db)

		karnataka, err := svc.CreateState("Karnataka")
		testutil.AssertNoError(t, err)
		kerala, err := svc.CreateState("Kerala")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCity("Bengaluru", karnataka.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCity("Kochi", kerala.ID)
		testutil.AssertNoError(t, err)

		cities, err := svc.ListCities(karnataka.ID)
		testutil.AssertNoError(t, err)
		if len(cities) != 1 || cities[0].Name != "Bengaluru" {
			t.Errorf("unexpected city list: %+v", cities)
		}
	})

	t.Run("rejects_unknown_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterService(db)

		_, err := svc.CreateCity("Nowhere", 9999)
		testutil.AssertAppError(t, err, "STATE_NOT_FOUND")
	})
}

func TestAreaPrices(t *testing.T) {
	t.Run("exact_match_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterService(db)

		state, err := svc.CreateState("Karnataka")
		testutil.AssertNoError(t, err)
		city, err := svc.CreateCity("Bengaluru", state.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAreaPrice("Koramangala", city.ID, state.ID, 1000)
		testutil.AssertNoError(t, err)

		found, err := svc.FindAreaPrice("Koramangala", city.ID, state.ID)
		testutil.AssertNoError(t, err)
		if found.PricePerSquareFoot != 1000 {
			t.Errorf("expected price 1000, got %v", found.PricePerSquareFoot)
		}

		_, err = svc.FindAreaPrice("Indiranagar", city.ID, state.ID)
		testutil.AssertAppError(t, err, "AREA_PRICE_NOT_FOUND")
	})
}

func TestGoldRates(t *testing.T) {
	t.Run("latest_by_recorded_at", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterService(db)

		// Inserted out of order; recorded_at decides recency, not insertion.
		_, err := svc.RecordGoldRate(6000, 7000, time.Now())
		testutil.AssertNoError(t, err)
		_, err = svc.RecordGoldRate(5000, 5500, time.Now().Add(-48*time.Hour))
		testutil.AssertNoError(t, err)

		latest, err := svc.LatestGoldRate()
		testutil.AssertNoError(t, err)
		if latest.Rate24KPerGram != 7000 {
			t.Errorf("expected latest 24K rate 7000, got %v", latest.Rate24KPerGram)
		}
	})

	t.Run("missing_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMasterService(db)

		_, err := svc.LatestGoldRate()
		testutil.AssertAppError(t, err, "GOLD_RATE_MISSING")
	})
}
