package models

import "github.com/google/uuid"

// DeliveryRegion is an admin-managed coverage area with a flat delivery fee.
type DeliveryRegion struct {
	BaseModel
	Name       string              `gorm:"uniqueIndex" json:"name"`
	Fee        float64             `json:"fee"`
	IsActive   bool                `gorm:"default:true" json:"is_active"`
	Subregions []DeliverySubregion `gorm:"foreignKey:RegionID" json:"subregions,omitempty"`
}

type DeliverySubregion struct {
	BaseModel
	RegionID uuid.UUID `gorm:"type:uuid;index" json:"region_id"`
	Name     string    `json:"name"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
}

// DeliveryProof stores privacy-preserving evidence of a completed delivery.
// The recipient signature and GPS fix are hashed before they reach the
// database; the raw values are never persisted.
type DeliveryProof struct {
	BaseModel
	OrderID          uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"order_id"`
	DeliveryPersonID uuid.UUID `gorm:"type:uuid;index" json:"delivery_person_id"`
	SignatureHash    string    `json:"signature_hash"`
	LocationHash     string    `json:"location_hash"`
	DeliveryToken    string    `json:"delivery_token"`
	Notes            string    `json:"notes"`
}
