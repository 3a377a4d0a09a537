package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func stockOrderBody(symbol string, qty, price float64) string {
	return fmt.Sprintf(
		`{"stock_symbol":%q,"first_name":"Asha","last_name":"Rao","quantity":%g,"price":%g}`,
		symbol, qty, price)
}

func TestStockFlow_BuySellClose(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "stock@test.com", "password123")

	// Two buys fold into a single weighted-average position.
	rec := app.request("POST", "/api/v1/stocks/buy", stockOrderBody("INFY", 10, 100), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first buy failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/stocks/buy", stockOrderBody("INFY", 10, 200), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second buy failed: %d %s", rec.Code, rec.Body.String())
	}
	position := parseJSON(t, rec)["position"].(map[string]interface{})
	if got := position["quantity"].(float64); got != 20 {
		t.Errorf("expected quantity 20, got %v", got)
	}
	if got := position["buy_price"].(float64); got != 150 {
		t.Errorf("expected average buy price 150, got %v", got)
	}
	if got := position["total_invested_amount"].(float64); got != 3000 {
		t.Errorf("expected invested 3000, got %v", got)
	}

	// Partial sell realizes profit against the average cost.
	rec = app.request("POST", "/api/v1/stocks/sell", stockOrderBody("INFY", 15, 180), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("sell failed: %d %s", rec.Code, rec.Body.String())
	}
	position = parseJSON(t, rec)["position"].(map[string]interface{})
	if got := position["quantity"].(float64); got != 5 {
		t.Errorf("expected quantity 5 after sell, got %v", got)
	}
	if got := position["realized_profit_loss"].(float64); got != 450 {
		t.Errorf("expected realized P&L 450 against average cost, got %v", got)
	}
	if got := position["total_invested_amount"].(float64); got != 750 {
		t.Errorf("expected invested 750 after sell, got %v", got)
	}

	// Oversell is rejected.
	rec = app.request("POST", "/api/v1/stocks/sell", stockOrderBody("INFY", 50, 180), token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversell, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INSUFFICIENT_STOCK" {
		t.Errorf("expected INSUFFICIENT_STOCK, got %v", errObj["code"])
	}

	// Closing sell removes the position from the open list.
	rec = app.request("POST", "/api/v1/stocks/sell", stockOrderBody("INFY", 5, 180), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("closing sell failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/stocks/positions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list positions failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 0 {
		t.Errorf("expected no open positions after close, got %d", len(data))
	}

	// The transaction ledger keeps the full history.
	rec = app.request("GET", "/api/v1/stocks/transactions?symbol=INFY", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list transactions failed: %d %s", rec.Code, rec.Body.String())
	}
	txns := parseJSON(t, rec)["data"].([]interface{})
	if len(txns) != 4 {
		t.Errorf("expected 4 ledger entries, got %d", len(txns))
	}
}

func TestStockFlow_SellWithoutPosition(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "nostock@test.com", "password123")

	rec := app.request("POST", "/api/v1/stocks/sell", stockOrderBody("TCS", 5, 100), token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INSUFFICIENT_STOCK" {
		t.Errorf("expected INSUFFICIENT_STOCK, got %v", errObj["code"])
	}
}

func TestStockFlow_PositionsScopedToUser(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "stocka@test.com", "password123")
	otherToken, _ := app.registerUser(t, "stockb@test.com", "password123")

	rec := app.request("POST", "/api/v1/stocks/buy", stockOrderBody("INFY", 10, 100), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("buy failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/stocks/positions", "", otherToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 0 {
		t.Errorf("expected no positions for other user, got %d", len(data))
	}
}
