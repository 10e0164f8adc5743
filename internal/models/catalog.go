package models

import "github.com/google/uuid"

type Category struct {
	BaseModel
	Name     string `json:"name"`
	Slug     string `gorm:"uniqueIndex" json:"slug"`
	ImageURL string `json:"image_url"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

type Product struct {
	BaseModel
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category  `json:"category,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"image_url"`
	Stock       int        `json:"stock"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
}
