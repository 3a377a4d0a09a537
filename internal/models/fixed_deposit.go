package models

import "time"

// FixedDeposit represents a fixed-term, fixed-rate bank deposit owned by
// a user. The derived fields are recomputed on create, on update, and by
// the daily revaluation batch; the computation is idempotent for a given
// set of inputs.
type FixedDeposit struct {
	Base
	UserID uint `gorm:"not null;index" json:"user_id"`
	BankID uint `gorm:"not null" json:"bank_id"`

	TotalInvestedAmount float64   `gorm:"not null" json:"total_invested_amount"`
	InterestRate        float64   `gorm:"not null" json:"interest_rate"` // annual %, validated 0 < rate <= 12
	StartDate           time.Time `gorm:"not null" json:"start_date"`
	MaturityDate        time.Time `gorm:"not null" json:"maturity_date"`

	// Derived fields
	TenureInYears        float64 `json:"tenure_in_years"`
	TenureCompletedYears float64 `json:"tenure_completed_years"`
	CurrentReturnAmount  float64 `json:"current_return_amount"`
	TotalReturnedAmount  float64 `json:"total_returned_amount"`
	CurrentProfitAmount  float64 `json:"current_profit_amount"`
	TotalYears           string  `json:"total_years"` // human label, e.g. "2y 3M"

	Bank Bank `gorm:"foreignKey:BankID" json:"bank,omitempty"`
}
