package models

import (
	"time"

	"github.com/google/uuid"
)

// Order status values. CANCELLED is part of the persisted enumeration and is
// only reachable through the admin transition endpoint.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

// Payment status values.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
)

type Order struct {
	BaseModel
	UserID              uuid.UUID            `gorm:"type:uuid;index" json:"user_id"`
	User                *User                `json:"user,omitempty"`
	OrderNumber         string               `gorm:"uniqueIndex" json:"order_number"`
	Status              string               `gorm:"default:PENDING" json:"status"`
	PaymentStatus       string               `gorm:"default:PENDING" json:"payment_status"`
	PaymentMethod       string               `json:"payment_method"`
	PlacedAt            time.Time            `json:"placed_at"`
	Subtotal            float64              `json:"subtotal"`
	DeliveryFee         float64              `json:"delivery_fee"`
	TotalAmount         float64              `json:"total_amount"`
	DeliveryAddressLine string               `json:"delivery_address_line"`
	DeliveryCity        string               `json:"delivery_city"`
	DeliveryRegionID    *uuid.UUID           `gorm:"type:uuid" json:"delivery_region_id"`
	DeliverySubregionID *uuid.UUID           `gorm:"type:uuid" json:"delivery_subregion_id"`
	DeliveryPersonID    *uuid.UUID           `gorm:"type:uuid;index" json:"delivery_person_id"`
	DeliveryPerson      *User                `gorm:"foreignKey:DeliveryPersonID" json:"delivery_person,omitempty"`
	AdminNotes          string               `json:"admin_notes"`
	ShippedAt           *time.Time           `json:"shipped_at"`
	DeliveredAt         *time.Time           `json:"delivered_at"`
	CustomerConfirmedAt *time.Time           `json:"customer_confirmed_at"`
	Items               []OrderItem          `json:"items,omitempty"`
	StatusHistory       []OrderStatusHistory `json:"status_history,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	LineTotal   float64    `json:"line_total"`
}

// OrderStatusHistory is an append-only audit log. Rows are created exactly
// once per accepted status transition and never updated or deleted.
type OrderStatusHistory struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	Status  string    `json:"status"`
	Notes   string    `json:"notes"`
}

// OrderReview is the customer's post-delivery feedback, one per order.
type OrderReview struct {
	BaseModel
	OrderID          uuid.UUID `gorm:"type:uuid" json:"order_id"`
	OrderNumber      string    `gorm:"uniqueIndex" json:"order_number"`
	UserID           uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Rating           int       `json:"rating"`
	Comment          string    `json:"comment"`
	IssueType        string    `json:"issue_type"`
	IssueDescription string    `json:"issue_description"`
	IsResolved       bool      `json:"is_resolved"`
}
