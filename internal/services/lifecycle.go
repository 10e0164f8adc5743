package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/utils"
)

// Sentinel errors returned by lifecycle operations. Handlers map these to
// HTTP status codes.
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrUnknownStatus    = errors.New("invalid order status")
	ErrNotDelivered     = errors.New("order has not been delivered yet")
	ErrNotShipped       = errors.New("order is not out for delivery")
	ErrNotAssigned      = errors.New("order is not assigned to this delivery person")
	ErrAlreadyConfirmed = errors.New("delivery already confirmed")
)

var validStatuses = map[string]bool{
	models.StatusPending:   true,
	models.StatusConfirmed: true,
	models.StatusShipped:   true,
	models.StatusDelivered: true,
	models.StatusCancelled: true,
}

// OrderLifecycle owns every status mutation of an order. All writes that touch
// both the order row and the status history run inside one transaction.
type OrderLifecycle struct {
	db *gorm.DB
}

// NewOrderLifecycle constructs OrderLifecycle.
func NewOrderLifecycle(db *gorm.DB) *OrderLifecycle {
	return &OrderLifecycle{db: db}
}

// TransitionInput carries the admin-supplied fields of a status update.
type TransitionInput struct {
	Status           string
	PaymentStatus    string
	Notes            string
	DeliveryPersonID *uuid.UUID
}

// applyTransition mutates the order in memory and returns the history row to
// append, or nil when the status did not change. shippedAt and deliveredAt are
// stamped only on the first entry into their respective states.
func applyTransition(order *models.Order, in TransitionInput, now time.Time) (*models.OrderStatusHistory, error) {
	if !validStatuses[in.Status] {
		return nil, ErrUnknownStatus
	}

	if in.PaymentStatus != "" {
		order.PaymentStatus = in.PaymentStatus
	}
	if in.Notes != "" {
		order.AdminNotes = in.Notes
	}
	if in.DeliveryPersonID != nil {
		order.DeliveryPersonID = in.DeliveryPersonID
	}

	if in.Status == order.Status {
		return nil, nil
	}

	order.Status = in.Status

	if in.Status == models.StatusShipped && order.ShippedAt == nil {
		order.ShippedAt = &now
	}
	if in.Status == models.StatusDelivered && order.DeliveredAt == nil {
		order.DeliveredAt = &now
	}

	notes := in.Notes
	if notes == "" {
		notes = fmt.Sprintf("Order status updated to %s", in.Status)
	}

	return &models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  in.Status,
		Notes:   notes,
	}, nil
}

// Transition applies an admin status update to the order identified by
// orderNumber. The order update and the history append either both succeed or
// both roll back.
func (s *OrderLifecycle) Transition(orderNumber string, in TransitionInput) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		history, err := applyTransition(&order, in, time.Now())
		if err != nil {
			return err
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if history != nil {
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ConfirmDelivery marks the customer's confirmation on their own order. Only
// accepted while the order status is exactly DELIVERED.
func (s *OrderLifecycle) ConfirmDelivery(orderNumber string, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("order_number = ? AND user_id = ?", orderNumber, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.Status != models.StatusDelivered {
		return nil, ErrNotDelivered
	}
	if order.CustomerConfirmedAt != nil {
		return nil, ErrAlreadyConfirmed
	}

	now := time.Now()
	order.CustomerConfirmedAt = &now
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

// ProofInput carries the raw delivery evidence. Signature and coordinates are
// hashed before anything is written.
type ProofInput struct {
	Signature string
	Latitude  float64
	Longitude float64
	Notes     string
}

// MarkDelivered lets the assigned delivery person complete a shipped order.
// It records the hashed delivery proof, moves the order to DELIVERED, and
// appends the history row, all in one transaction.
func (s *OrderLifecycle) MarkDelivered(orderNumber string, deliveryPersonID uuid.UUID, in ProofInput) (*models.Order, *models.DeliveryProof, error) {
	var order models.Order
	var proof models.DeliveryProof

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.DeliveryPersonID == nil || *order.DeliveryPersonID != deliveryPersonID {
			return ErrNotAssigned
		}
		if order.Status != models.StatusShipped {
			return ErrNotShipped
		}

		now := time.Now()
		proof = models.DeliveryProof{
			OrderID:          order.ID,
			DeliveryPersonID: deliveryPersonID,
			SignatureHash:    utils.HashSignature(in.Signature),
			LocationHash:     utils.HashGPSLocation(in.Latitude, in.Longitude, 4),
			DeliveryToken:    utils.GenerateDeliveryToken(order.OrderNumber, deliveryPersonID.String(), now),
			Notes:            in.Notes,
		}
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}

		history, err := applyTransition(&order, TransitionInput{Status: models.StatusDelivered}, now)
		if err != nil {
			return err
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return tx.Create(history).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &order, &proof, nil
}
