package models

// AreaPrice is a master record holding the per-square-foot price for an
// exact (area name, city, state) combination. Real estate valuation
// requires an exact match on all three; there is no city- or state-level
// fallback.
type AreaPrice struct {
	Base
	AreaName           string  `gorm:"not null;uniqueIndex:uq_area_prices_area_city_state" json:"area_name"`
	CityID             uint    `gorm:"not null;uniqueIndex:uq_area_prices_area_city_state" json:"city_id"`
	StateID            uint    `gorm:"not null;uniqueIndex:uq_area_prices_area_city_state" json:"state_id"`
	PricePerSquareFoot float64 `gorm:"not null" json:"price_per_square_foot"`

	City  City  `gorm:"foreignKey:CityID" json:"city,omitempty"`
	State State `gorm:"foreignKey:StateID" json:"state,omitempty"`
}
