package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/services"
	"github.com/example/rosenook/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	db        *gorm.DB
	lifecycle *services.OrderLifecycle
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, lifecycle *services.OrderLifecycle) *AdminHandler {
	return &AdminHandler{db: db, lifecycle: lifecycle}
}

// Stats returns aggregate statistics for the admin console.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var todayRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ? AND placed_at::date = CURRENT_DATE", models.StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	var activeCouriers int64
	if err := h.db.Model(&models.User{}).
		Where("role = ? AND is_active = true", models.RoleDelivery).
		Count(&activeCouriers).Error; err != nil {
		return err
	}

	var openReviews int64
	if err := h.db.Model(&models.OrderReview{}).
		Where("issue_type != '' AND is_resolved = false").
		Count(&openReviews).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_customers":    totalUsers,
			"total_orders":       totalOrders,
			"total_revenue":      totalRevenue,
			"today_revenue":      todayRevenue,
			"orders_by_status":   ordersByStatus,
			"active_couriers":    activeCouriers,
			"open_review_issues": openReviews,
		},
	})
}

// ListAllOrders returns all orders with pagination, filtering, and user info.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"order_number ILIKE ? OR delivery_address_line ILIKE ?",
			"%"+search+"%", "%"+search+"%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").Preload("DeliveryPerson").
		Order("placed_at desc").
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

type updateOrderStatusRequest struct {
	Status           string `json:"status"`
	PaymentStatus    string `json:"payment_status"`
	Notes            string `json:"notes"`
	DeliveryPersonID string `json:"delivery_person_id"`
}

// UpdateOrderStatus applies a status transition to an order. Only reachable
// through the admin group.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Status == "" {
		return fiber.NewError(fiber.StatusBadRequest, "status is required")
	}

	input := services.TransitionInput{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	}

	if req.DeliveryPersonID != "" {
		courierID, err := uuid.Parse(req.DeliveryPersonID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid delivery_person_id")
		}

		var courier models.User
		if err := h.db.First(&courier, "id = ? AND role = ?", courierID, models.RoleDelivery).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "delivery person not found")
			}
			return err
		}
		input.DeliveryPersonID = &courier.ID
	}

	order, err := h.lifecycle.Transition(c.Params("orderNumber"), input)
	if err != nil {
		return mapLifecycleError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_number":   order.OrderNumber,
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"shipped_at":     order.ShippedAt,
			"delivered_at":   order.DeliveredAt,
			"admin_notes":    order.AdminNotes,
		},
	})
}

// ListDeliveryPersonnel returns all delivery accounts with their open load.
func (h *AdminHandler) ListDeliveryPersonnel(c *fiber.Ctx) error {
	var couriers []models.User
	if err := h.db.Where("role = ?", models.RoleDelivery).
		Order("created_at desc").
		Find(&couriers).Error; err != nil {
		return err
	}

	type courierLoad struct {
		DeliveryPersonID string `json:"delivery_person_id"`
		OpenOrders       int64  `json:"open_orders"`
	}
	var loads []courierLoad
	h.db.Model(&models.Order{}).
		Select("delivery_person_id, count(*) as open_orders").
		Where("delivery_person_id IS NOT NULL AND status IN ?", []string{models.StatusConfirmed, models.StatusShipped}).
		Group("delivery_person_id").
		Scan(&loads)

	loadMap := make(map[string]int64)
	for _, l := range loads {
		loadMap[l.DeliveryPersonID] = l.OpenOrders
	}

	type courierResponse struct {
		models.User
		OpenOrders int64 `json:"open_orders"`
	}

	result := make([]courierResponse, len(couriers))
	for i, courier := range couriers {
		result[i] = courierResponse{User: courier}
		result[i].OpenOrders = loadMap[courier.ID.String()]
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}
