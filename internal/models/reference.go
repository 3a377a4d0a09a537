package models

// Bank is a master record for banks offering fixed deposits.
type Bank struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// State is a master record for states.
type State struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// City is a master record for cities, scoped to a state.
type City struct {
	Base
	Name    string `gorm:"not null;uniqueIndex:uq_cities_name_state" json:"name"`
	StateID uint   `gorm:"not null;uniqueIndex:uq_cities_name_state" json:"state_id"`
	State   State  `gorm:"foreignKey:StateID" json:"state,omitempty"`
}

// PropertyType is a master record for real estate property types.
type PropertyType struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// SubPropertyType is a master record for property sub-types, scoped to a property type.
type SubPropertyType struct {
	Base
	Name           string       `gorm:"not null;uniqueIndex:uq_sub_property_types_name_type" json:"name"`
	PropertyTypeID uint         `gorm:"not null;uniqueIndex:uq_sub_property_types_name_type" json:"property_type_id"`
	PropertyType   PropertyType `gorm:"foreignKey:PropertyTypeID" json:"property_type,omitempty"`
}
