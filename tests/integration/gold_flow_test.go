package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestGoldFlow_CreateRequiresRateSnapshot(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "goldnorate@test.com", "password123")

	rec := app.request("POST", "/api/v1/gold",
		`{"gold_weight":10,"gold_purchase_price":20000,"purity_of_gold":24}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a rate snapshot, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "GOLD_RATE_MISSING" {
		t.Errorf("expected GOLD_RATE_MISSING, got %v", errObj["code"])
	}
}

func TestGoldFlow_ValuedAgainstLatestRate(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "gold@test.com", "password123")

	rec := app.pipelineRequest("POST", "/api/v1/pipeline/gold-rates",
		`{"rate_22k_per_gram":6000,"rate_24k_per_gram":7000}`, pipelineKey)
	if rec.Code != http.StatusCreated {
		t.Fatalf("ingest failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/gold",
		`{"gold_weight":10,"gold_purchase_price":20000,"purity_of_gold":22}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	gold := parseJSON(t, rec)["gold_investment"].(map[string]interface{})
	if got := gold["total_return_amount"].(float64); got != 60000 {
		t.Errorf("expected 22K valuation 60000, got %v", got)
	}
	id := int(gold["id"].(float64))

	// A newer snapshot changes the valuation on the next update.
	rec = app.pipelineRequest("POST", "/api/v1/pipeline/gold-rates",
		`{"rate_22k_per_gram":6500,"rate_24k_per_gram":7500}`, pipelineKey)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second ingest failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("PUT", fmt.Sprintf("/api/v1/gold/%d", id),
		`{"gold_weight":10,"gold_purchase_price":20000,"purity_of_gold":22}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	gold = parseJSON(t, rec)["gold_investment"].(map[string]interface{})
	if got := gold["total_return_amount"].(float64); got != 65000 {
		t.Errorf("expected revalued 65000, got %v", got)
	}
}

func TestGoldFlow_RejectsInvalidPurity(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "goldpurity@test.com", "password123")

	rec := app.request("POST", "/api/v1/gold",
		`{"gold_weight":10,"gold_purchase_price":20000,"purity_of_gold":18}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 18K, got %d: %s", rec.Code, rec.Body.String())
	}
}
