package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

type mockGoldService struct {
	createFn func(userID uint, weight, purchasePrice float64, purity int) (*models.GoldInvestment, error)
}

func (m *mockGoldService) Create(userID uint, weight, purchasePrice float64, purity int) (*models.GoldInvestment, error) {
	if m.createFn != nil {
		return m.createFn(userID, weight, purchasePrice, purity)
	}
	return &models.GoldInvestment{}, nil
}

func (m *mockGoldService) List(_ uint, page pagination.PageRequest) (*pagination.PageResponse[models.GoldInvestment], error) {
	page.Defaults()
	resp := pagination.NewPageResponse([]models.GoldInvestment{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockGoldService) GetByID(_, _ uint) (*models.GoldInvestment, error) {
	return &models.GoldInvestment{}, nil
}

func (m *mockGoldService) Update(_, _ uint, _, _ float64, _ int) (*models.GoldInvestment, error) {
	return &models.GoldInvestment{}, nil
}

func (m *mockGoldService) Delete(_, _ uint) error { return nil }

func setupGoldRouter(handler *GoldHandler) *gin.Engine {
	r := gin.New()
	r.POST("/gold", injectUserID(1), handler.Create)
	r.GET("/gold", injectUserID(1), handler.List)
	return r
}

func TestGoldHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockGoldService{
			createFn: func(userID uint, weight, purchasePrice float64, purity int) (*models.GoldInvestment, error) {
				return &models.GoldInvestment{
					Base:              models.Base{ID: 1},
					UserID:            userID,
					GoldWeight:        weight,
					GoldPurchasePrice: purchasePrice,
					PurityOfGold:      purity,
				}, nil
			},
		}
		handler := NewGoldHandler(svc, &mockAuditService{})
		r := setupGoldRouter(handler)

		rec := doRequest(r, "POST", "/gold",
			`{"gold_weight":10,"gold_purchase_price":50000,"purity_of_gold":24}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects unsupported purity at binding", func(t *testing.T) {
		handler := NewGoldHandler(&mockGoldService{}, &mockAuditService{})
		r := setupGoldRouter(handler)

		rec := doRequest(r, "POST", "/gold",
			`{"gold_weight":10,"gold_purchase_price":50000,"purity_of_gold":18}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 without rate snapshot", func(t *testing.T) {
		svc := &mockGoldService{
			createFn: func(_ uint, _, _ float64, _ int) (*models.GoldInvestment, error) {
				return nil, apperrors.ErrGoldRateMissing
			},
		}
		handler := NewGoldHandler(svc, &mockAuditService{})
		r := setupGoldRouter(handler)

		rec := doRequest(r, "POST", "/gold",
			`{"gold_weight":10,"gold_purchase_price":50000,"purity_of_gold":24}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOLD_RATE_MISSING")
	})
}
