package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func fixedDepositBody(bankID float64, invested, rate float64, start, maturity time.Time) string {
	return fmt.Sprintf(
		`{"bank_id":%d,"total_invested_amount":%g,"interest_rate":%g,"start_date":%q,"maturity_date":%q}`,
		int(bankID), invested, rate, start.Format(time.RFC3339), maturity.Format(time.RFC3339))
}

func TestFixedDepositFlow_CreateComputesReturns(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "fd@test.com", "password123")
	bankID, _, _, _ := app.seedMasterData(t, token)

	start := time.Now().Add(-365 * 24 * time.Hour)
	maturity := time.Now().Add(365 * 24 * time.Hour)

	rec := app.request("POST", "/api/v1/fixed-deposits",
		fixedDepositBody(bankID, 100000, 6, start, maturity), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	fd := parseJSON(t, rec)["fixed_deposit"].(map[string]interface{})

	if got := fd["tenure_in_years"].(float64); got != 2.0 {
		t.Errorf("expected tenure 2.0, got %v", got)
	}
	if got := fd["current_return_amount"].(float64); got != 106000 {
		t.Errorf("expected current return 106000, got %v", got)
	}
	if got := fd["total_returned_amount"].(float64); got != 111975 {
		t.Errorf("expected total return 111975, got %v", got)
	}
	if got := fd["current_profit_amount"].(float64); got != 6000 {
		t.Errorf("expected current profit 6000, got %v", got)
	}
}

func TestFixedDepositFlow_RejectsUnknownBank(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "fdbank@test.com", "password123")

	start := time.Now().Add(-365 * 24 * time.Hour)
	maturity := time.Now().Add(365 * 24 * time.Hour)

	rec := app.request("POST", "/api/v1/fixed-deposits",
		fixedDepositBody(999, 100000, 6, start, maturity), token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "BANK_NOT_FOUND" {
		t.Errorf("expected BANK_NOT_FOUND, got %v", errObj["code"])
	}
}

func TestFixedDepositFlow_RejectsRateAboveTwelve(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "fdrate@test.com", "password123")
	bankID, _, _, _ := app.seedMasterData(t, token)

	start := time.Now().Add(-365 * 24 * time.Hour)
	maturity := time.Now().Add(365 * 24 * time.Hour)

	rec := app.request("POST", "/api/v1/fixed-deposits",
		fixedDepositBody(bankID, 100000, 12.5, start, maturity), token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestFixedDepositFlow_UpdateAndDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "fdcrud@test.com", "password123")
	bankID, _, _, _ := app.seedMasterData(t, token)

	start := time.Now().Add(-365 * 24 * time.Hour)
	maturity := time.Now().Add(365 * 24 * time.Hour)

	rec := app.request("POST", "/api/v1/fixed-deposits",
		fixedDepositBody(bankID, 100000, 6, start, maturity), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	fd := parseJSON(t, rec)["fixed_deposit"].(map[string]interface{})
	id := int(fd["id"].(float64))

	// Update doubles the principal; derived amounts follow.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/fixed-deposits/%d", id),
		fixedDepositBody(bankID, 200000, 6, start, maturity), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["fixed_deposit"].(map[string]interface{})
	if got := updated["current_return_amount"].(float64); got != 212000 {
		t.Errorf("expected current return 212000 after update, got %v", got)
	}

	// Another user must not see or touch it.
	otherToken, _ := app.registerUser(t, "fdother@test.com", "password123")
	rec = app.request("GET", fmt.Sprintf("/api/v1/fixed-deposits/%d", id), "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user, got %d", rec.Code)
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/fixed-deposits/%d", id), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/fixed-deposits/%d", id), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestFixedDepositFlow_ListIsPaginated(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "fdlist@test.com", "password123")
	bankID, _, _, _ := app.seedMasterData(t, token)

	start := time.Now().Add(-365 * 24 * time.Hour)
	maturity := time.Now().Add(365 * 24 * time.Hour)

	for i := 0; i < 3; i++ {
		rec := app.request("POST", "/api/v1/fixed-deposits",
			fixedDepositBody(bankID, 100000, 6, start, maturity), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d failed: %d %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := app.request("GET", "/api/v1/fixed-deposits?page=1&page_size=2", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Errorf("expected 2 items on page 1, got %d", len(data))
	}
	if got := result["total_items"].(float64); got != 3 {
		t.Errorf("expected total_items 3, got %v", got)
	}
}
