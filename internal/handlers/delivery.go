package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/middleware"
	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/services"
	"github.com/example/rosenook/internal/utils"
)

// DeliveryHandler manages the delivery-personnel dashboard.
type DeliveryHandler struct {
	db        *gorm.DB
	lifecycle *services.OrderLifecycle
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(db *gorm.DB, lifecycle *services.OrderLifecycle) *DeliveryHandler {
	return &DeliveryHandler{db: db, lifecycle: lifecycle}
}

// Dashboard returns the courier's open assignments.
func (h *DeliveryHandler) Dashboard(c *fiber.Ctx) error {
	courierID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("delivery_person_id = ? AND status IN ?", courierID,
			[]string{models.StatusConfirmed, models.StatusShipped}).
		Order("placed_at asc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// History returns the courier's completed deliveries.
func (h *DeliveryHandler) History(c *fiber.Ctx) error {
	courierID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).
		Where("delivery_person_id = ? AND status = ?", courierID, models.StatusDelivered)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.
		Order("delivered_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type markDeliveredRequest struct {
	Signature string  `json:"signature"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     string  `json:"notes"`
}

// MarkDelivered completes a shipped order assigned to the calling courier,
// recording hashed delivery proof. The raw signature and coordinates never
// reach the database.
func (h *DeliveryHandler) MarkDelivered(c *fiber.Ctx) error {
	courierID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req markDeliveredRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Signature == "" {
		return fiber.NewError(fiber.StatusBadRequest, "signature is required")
	}

	order, proof, err := h.lifecycle.MarkDelivered(c.Params("orderNumber"), courierID, services.ProofInput{
		Signature: req.Signature,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Notes:     req.Notes,
	})
	if err != nil {
		return mapLifecycleError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_number":   order.OrderNumber,
			"status":         order.Status,
			"delivered_at":   order.DeliveredAt,
			"delivery_token": proof.DeliveryToken,
		},
	})
}
