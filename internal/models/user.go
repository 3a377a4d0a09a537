package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	FixedDeposits  []FixedDeposit         `gorm:"foreignKey:UserID" json:"fixed_deposits,omitempty"`
	GoldHoldings   []GoldInvestment       `gorm:"foreignKey:UserID" json:"gold_holdings,omitempty"`
	Properties     []RealEstateInvestment `gorm:"foreignKey:UserID" json:"properties,omitempty"`
	StockPositions []StockPosition        `gorm:"foreignKey:UserID" json:"stock_positions,omitempty"`
}
