package models

// RealEstateInvestment represents a user's property holding, valued
// against the AreaPrice master record matching its exact
// (area name, city, state) key.
type RealEstateInvestment struct {
	Base
	UserID uint `gorm:"not null;index" json:"user_id"`

	PropertyTypeID    uint   `gorm:"not null" json:"property_type_id"`
	SubPropertyTypeID uint   `json:"sub_property_type_id"`
	StateID           uint   `gorm:"not null" json:"state_id"`
	CityID            uint   `gorm:"not null" json:"city_id"`
	AreaName          string `gorm:"not null" json:"area_name"`

	AreaInSquareFeet float64 `gorm:"not null" json:"area_in_square_feet"`
	PurchasePrice    float64 `gorm:"not null" json:"purchase_price"`

	// Derived fields
	CurrentValue float64 `json:"current_value"`
	Profit       float64 `json:"profit"`

	PropertyType    PropertyType    `gorm:"foreignKey:PropertyTypeID" json:"property_type,omitempty"`
	SubPropertyType SubPropertyType `gorm:"foreignKey:SubPropertyTypeID" json:"sub_property_type,omitempty"`
	State           State           `gorm:"foreignKey:StateID" json:"state,omitempty"`
	City            City            `gorm:"foreignKey:CityID" json:"city,omitempty"`
}
