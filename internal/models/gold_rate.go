package models

import "time"

// GoldRate is a timestamped master snapshot of per-gram gold rates,
// produced by the external rate scraper. Valuation always reads the
// latest snapshot by recorded_at. Immutable time-series data — no Base
// embed, no soft deletes.
type GoldRate struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Rate22KPerGram float64   `gorm:"not null" json:"rate_22k_per_gram"`
	Rate24KPerGram float64   `gorm:"not null" json:"rate_24k_per_gram"`
	RecordedAt     time.Time `gorm:"not null;index" json:"recorded_at"`
}
