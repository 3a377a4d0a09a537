package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"nivesh/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBank creates a bank master record with a unique name.
func CreateTestBank(t *testing.T, db *gorm.DB) *models.Bank {
	t.Helper()

	bank := &models.Bank{Name: fmt.Sprintf("Test Bank %d", nextID())}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("failed to create test bank: %v", err)
	}
	return bank
}

// CreateTestState creates a state master record with a unique name.
func CreateTestState(t *testing.T, db *gorm.DB) *models.State {
	t.Helper()

	state := &models.State{Name: fmt.Sprintf("Test State %d", nextID())}
	if err := db.Create(state).Error; err != nil {
		t.Fatalf("failed to create test state: %v", err)
	}
	return state
}

// CreateTestCity creates a city master record in the given state.
func CreateTestCity(t *testing.T, db *gorm.DB, stateID uint) *models.City {
	t.Helper()

	city := &models.City{Name: fmt.Sprintf("Test City %d", nextID()), StateID: stateID}
	if err := db.Create(city).Error; err != nil {
		t.Fatalf("failed to create test city: %v", err)
	}
	return city
}

// CreateTestPropertyType creates a property type master record.
func CreateTestPropertyType(t *testing.T, db *gorm.DB) *models.PropertyType {
	t.Helper()

	pt := &models.PropertyType{Name: fmt.Sprintf("Test Property Type %d", nextID())}
	if err := db.Create(pt).Error; err != nil {
		t.Fatalf("failed to create test property type: %v", err)
	}
	return pt
}

// CreateTestAreaPrice creates an area-price master record for the exact
// (area name, city, state) key.
func CreateTestAreaPrice(t *testing.T, db *gorm.DB, areaName string, cityID, stateID uint, pricePerSqFt float64) *models.AreaPrice {
	t.Helper()

	ap := &models.AreaPrice{
		AreaName:           areaName,
		CityID:             cityID,
		StateID:            stateID,
		PricePerSquareFoot: pricePerSqFt,
	}
	if err := db.Create(ap).Error; err != nil {
		t.Fatalf("failed to create test area price: %v", err)
	}
	return ap
}

// CreateTestGoldRate creates a gold-rate snapshot recorded at the given time.
func CreateTestGoldRate(t *testing.T, db *gorm.DB, rate22, rate24 float64, recordedAt time.Time) *models.GoldRate {
	t.Helper()

	rate := &models.GoldRate{
		Rate22KPerGram: rate22,
		Rate24KPerGram: rate24,
		RecordedAt:     recordedAt,
	}
	if err := db.Create(rate).Error; err != nil {
		t.Fatalf("failed to create test gold rate: %v", err)
	}
	return rate
}
