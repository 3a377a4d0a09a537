package services

import (
	"context"
	"time"

	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

// UserServicer manages user registration and lookup.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// MasterServicer manages reference/master data: banks, states, cities,
// property types, area prices, and gold-rate snapshots.
type MasterServicer interface {
	CreateBank(name string) (*models.Bank, error)
	ListBanks() ([]models.Bank, error)
	GetBankByID(id uint) (*models.Bank, error)

	CreateState(name string) (*models.State, error)
	ListStates() ([]models.State, error)
	GetStateByID(id uint) (*models.State, error)

	CreateCity(name string, stateID uint) (*models.City, error)
	ListCities(stateID uint) ([]models.City, error)
	GetCityByID(id uint) (*models.City, error)

	CreatePropertyType(name string) (*models.PropertyType, error)
	ListPropertyTypes() ([]models.PropertyType, error)
	GetPropertyTypeByID(id uint) (*models.PropertyType, error)

	CreateSubPropertyType(name string, propertyTypeID uint) (*models.SubPropertyType, error)
	ListSubPropertyTypes(propertyTypeID uint) ([]models.SubPropertyType, error)

	CreateAreaPrice(areaName string, cityID, stateID uint, pricePerSquareFoot float64) (*models.AreaPrice, error)
	ListAreaPrices(cityID uint) ([]models.AreaPrice, error)
	FindAreaPrice(areaName string, cityID, stateID uint) (*models.AreaPrice, error)

	RecordGoldRate(rate22, rate24 float64, recordedAt time.Time) (*models.GoldRate, error)
	LatestGoldRate() (*models.GoldRate, error)
}

// FixedDepositServicer manages fixed deposit records and their derived
// return projections.
type FixedDepositServicer interface {
	Create(userID, bankID uint, invested, rate float64, start, maturity time.Time) (*models.FixedDeposit, error)
	List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FixedDeposit], error)
	GetByID(userID, id uint) (*models.FixedDeposit, error)
	Update(userID, id, bankID uint, invested, rate float64, start, maturity time.Time) (*models.FixedDeposit, error)
	Delete(userID, id uint) error
}

// GoldServicer manages gold holdings valued against the latest rate snapshot.
type GoldServicer interface {
	Create(userID uint, weight, purchasePrice float64, purity int) (*models.GoldInvestment, error)
	List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.GoldInvestment], error)
	GetByID(userID, id uint) (*models.GoldInvestment, error)
	Update(userID, id uint, weight, purchasePrice float64, purity int) (*models.GoldInvestment, error)
	Delete(userID, id uint) error
}

// RealEstateInput carries the user-entered fields of a property record.
type RealEstateInput struct {
	PropertyTypeID    uint
	SubPropertyTypeID uint
	StateID           uint
	CityID            uint
	AreaName          string
	AreaInSquareFeet  float64
	PurchasePrice     float64
}

// RealEstateServicer manages property holdings valued against area prices.
type RealEstateServicer interface {
	Create(userID uint, in RealEstateInput) (*models.RealEstateInvestment, error)
	List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.RealEstateInvestment], error)
	GetByID(userID, id uint) (*models.RealEstateInvestment, error)
	Update(userID, id uint, in RealEstateInput) (*models.RealEstateInvestment, error)
	Delete(userID, id uint) error
}

// StockServicer manages stock positions and their append-only transaction log.
type StockServicer interface {
	Buy(userID uint, symbol, firstName, lastName string, quantity, price float64, date time.Time) (*models.StockPosition, error)
	Sell(userID uint, symbol, firstName, lastName string, quantity, price float64, date time.Time) (*models.StockPosition, error)
	ListPositions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.StockPosition], error)
	ListTransactions(userID uint, symbol string, page pagination.PageRequest) (*pagination.PageResponse[models.StockTransaction], error)
}

// PortfolioServicer builds the cross-sector dashboard views.
type PortfolioServicer interface {
	Summary(userID uint, from, to *time.Time) (*PortfolioSummary, error)
	TopGainers(userID uint) ([]TopGainer, error)
	HighestGrowth(userID uint, sector Sector) (*SectorHighlight, error)
}

// AuditServicer records mutating actions; failures never propagate.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}

// Revaluer recomputes derived valuations across all records. Implemented
// by the daily batch; each record is processed independently and failures
// are logged and skipped.
type Revaluer interface {
	RevalueAll(ctx context.Context) *RevaluationResult
}
