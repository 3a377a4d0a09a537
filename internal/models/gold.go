package models

// GoldInvestment represents a user's physical gold holding. The valuation
// fields snapshot the latest GoldRate at write time; later rate updates do
// not retroactively change the record except via the daily revaluation.
type GoldInvestment struct {
	Base
	UserID uint `gorm:"not null;index" json:"user_id"`

	GoldWeight        float64 `gorm:"not null" json:"gold_weight"` // grams
	GoldPurchasePrice float64 `gorm:"not null" json:"gold_purchase_price"`
	PurityOfGold      int     `gorm:"not null" json:"purity_of_gold"` // 22 or 24 only

	// Derived fields
	TotalReturnAmount float64 `json:"total_return_amount"`
	Profit            float64 `json:"profit"`
}
