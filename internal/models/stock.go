package models

import (
	"time"

	"gorm.io/gorm"
)

// StockPosition is the aggregated open holding for one
// (user, symbol, first name, last name) identity. Buys fold into the
// weighted-average buy price; sells reduce quantity and accumulate
// realized P&L at the current average cost. When quantity reaches exactly
// zero the row is hard-deleted — history survives only in StockTransaction.
type StockPosition struct {
	Base
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	StockSymbol string `gorm:"not null" json:"stock_symbol"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`

	Quantity            float64 `gorm:"not null" json:"quantity"`
	TotalInvestedAmount float64 `gorm:"not null" json:"total_invested_amount"`
	BuyPrice            float64 `gorm:"not null" json:"buy_price"` // weighted average

	RealizedProfitLoss   float64 `gorm:"default:0" json:"realized_profit_loss"`
	UnrealizedProfitLoss float64 `gorm:"default:0" json:"unrealized_profit_loss"` // refreshed by the revaluation batch
	TotalReturnAmount    float64 `gorm:"default:0" json:"total_return_amount"`    // mark-to-market value

	BuyDate   time.Time  `json:"buy_date"`
	SellDate  *time.Time `json:"sell_date,omitempty"`
	SellPrice float64    `json:"sell_price,omitempty"`
}

// StockTransactionType represents the side of a stock transaction.
type StockTransactionType string

const (
	StockTransactionBuy  StockTransactionType = "buy"
	StockTransactionSell StockTransactionType = "sell"
)

// StockTransaction is an immutable append-only ledger entry for a buy or
// sell. It is never mutated after creation and is the only source of
// historical truth once a StockPosition is deleted. No Base embed, no
// soft deletes.
type StockTransaction struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	UserID      uint                 `gorm:"not null;index" json:"user_id"`
	StockSymbol string               `gorm:"not null" json:"stock_symbol"`
	Type        StockTransactionType `gorm:"not null" json:"type"`

	Price           float64   `gorm:"not null" json:"price"`
	Quantity        float64   `gorm:"not null" json:"quantity"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`
	TransactionDate time.Time `gorm:"not null" json:"transaction_date"`

	CreatedAt time.Time `json:"created_at"`
}

// DeleteClosed removes the position row outright. Positions are not
// archived when closed, so the soft-delete scope must be bypassed.
func (p *StockPosition) DeleteClosed(tx *gorm.DB) error {
	return tx.Unscoped().Delete(p).Error
}
