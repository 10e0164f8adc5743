package models

import "github.com/google/uuid"

type Address struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Label       string     `json:"label"`
	AddressLine string     `json:"address_line"`
	City        string     `json:"city"`
	RegionID    *uuid.UUID `gorm:"type:uuid" json:"region_id"`
	SubregionID *uuid.UUID `gorm:"type:uuid" json:"subregion_id"`
	PostalCode  string     `json:"postal_code"`
	IsDefault   bool       `json:"is_default"`
}
