package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/config"
	"github.com/example/rosenook/internal/middleware"
	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/services"
	"github.com/example/rosenook/internal/utils"
)

// OrderHandler manages customer-facing order endpoints.
type OrderHandler struct {
	db        *gorm.DB
	cfg       *config.Config
	lifecycle *services.OrderLifecycle
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, cfg *config.Config, lifecycle *services.OrderLifecycle) *OrderHandler {
	return &OrderHandler{db: db, cfg: cfg, lifecycle: lifecycle}
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items         []orderItemRequest `json:"items"`
	AddressID     string             `json:"address_id"`
	PaymentMethod string             `json:"payment_method"`
}

// CreateOrder places a new order for the authenticated customer. Prices are
// taken from the catalog, the delivery fee from the address region.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}

	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid address_id")
	}

	var address models.Address
	if err := h.db.First(&address, "id = ? AND user_id = ?", addressID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "address not found")
		}
		return err
	}

	order := models.Order{
		UserID:              userID,
		OrderNumber:         utils.GenerateOrderNumber(),
		Status:              models.StatusPending,
		PaymentStatus:       models.PaymentPending,
		PaymentMethod:       req.PaymentMethod,
		PlacedAt:            time.Now(),
		DeliveryAddressLine: address.AddressLine,
		DeliveryCity:        address.City,
		DeliveryRegionID:    address.RegionID,
		DeliverySubregionID: address.SubregionID,
	}

	if address.RegionID != nil {
		var region models.DeliveryRegion
		if err := h.db.First(&region, "id = ?", *address.RegionID).Error; err == nil {
			order.DeliveryFee = region.Fee
		}
	}

	var subtotal float64
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
		}
		if item.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
		}

		var product models.Product
		if err := h.db.First(&product, "id = ? AND is_active = true", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "product not found")
			}
			return err
		}

		lineTotal := product.Price * float64(item.Quantity)
		subtotal += lineTotal
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   &product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
	}

	order.Subtotal = subtotal
	order.TotalAmount = subtotal + order.DeliveryFee

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"placed_at":    order.PlacedAt,
			"subtotal":     order.Subtotal,
			"delivery_fee": order.DeliveryFee,
			"total":        order.TotalAmount,
		},
	})
}

// ListOrders returns the authenticated user's orders.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("user_id = ?", userID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
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

// GetOrder returns a single order by order number. Customers can only see
// their own orders; admins can see any.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	role, _ := middleware.GetCurrentRole(c)

	query := h.db.Preload("Items").Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("order_number = ?", c.Params("orderNumber"))
	if role != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// ConfirmDelivery lets the order's customer acknowledge receipt. Accepted only
// while the order is in DELIVERED.
func (h *OrderHandler) ConfirmDelivery(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	order, err := h.lifecycle.ConfirmDelivery(c.Params("orderNumber"), userID)
	if err != nil {
		return mapLifecycleError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_number":          order.OrderNumber,
			"status":                order.Status,
			"customer_confirmed_at": order.CustomerConfirmedAt,
		},
	})
}

type reviewRequest struct {
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
	IssueType        string `json:"issue_type"`
	IssueDescription string `json:"issue_description"`
}

// ReviewOrder upserts the customer's review of a delivered order.
func (h *OrderHandler) ReviewOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	orderNumber := c.Params("orderNumber")

	var order models.Order
	if err := h.db.Where("order_number = ? AND user_id = ?", orderNumber, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if order.Status != models.StatusDelivered {
		return fiber.NewError(fiber.StatusBadRequest, "order has not been delivered yet")
	}

	var review models.OrderReview
	err := h.db.Where("order_number = ?", orderNumber).First(&review).Error
	switch {
	case err == nil:
		review.Rating = req.Rating
		review.Comment = req.Comment
		review.IssueType = req.IssueType
		review.IssueDescription = req.IssueDescription
		review.IsResolved = false
		if err := h.db.Save(&review).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.OrderReview{
			OrderID:          order.ID,
			OrderNumber:      orderNumber,
			UserID:           userID,
			Rating:           req.Rating,
			Comment:          req.Comment,
			IssueType:        req.IssueType,
			IssueDescription: req.IssueDescription,
		}
		if err := h.db.Create(&review).Error; err != nil {
			return err
		}
	default:
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": review})
}

// OrderQRCode returns the order's tracking QR code as a PNG data URL together
// with the receipt verification hash.
func (h *OrderHandler) OrderQRCode(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	role, _ := middleware.GetCurrentRole(c)

	query := h.db.Preload("User").Where("order_number = ?", c.Params("orderNumber"))
	if role != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	dataURL, err := utils.QRCodeDataURL(h.cfg.PublicBaseURL, order.OrderNumber)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate QR code")
	}

	email := ""
	if order.User != nil {
		email = order.User.Email
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_number": order.OrderNumber,
			"tracking_url": utils.TrackingURL(h.cfg.PublicBaseURL, order.OrderNumber),
			"qr_code":      dataURL,
			"verify_hash":  utils.TrackingHash(order.OrderNumber, email, h.cfg.TrackingSalt),
		},
	})
}

// TrackOrder is the public tracking endpoint behind the QR code. Without a
// valid verify hash it exposes status and history only; with one it also
// releases the receipt details.
func (h *OrderHandler) TrackOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := h.db.Preload("User").Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("order_number = ?", c.Params("orderNumber")).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	data := fiber.Map{
		"order_number":          order.OrderNumber,
		"status":                order.Status,
		"placed_at":             order.PlacedAt,
		"shipped_at":            order.ShippedAt,
		"delivered_at":          order.DeliveredAt,
		"customer_confirmed_at": order.CustomerConfirmedAt,
		"history":               order.StatusHistory,
	}

	if verify := c.Query("verify"); verify != "" && order.User != nil {
		expected := utils.TrackingHash(order.OrderNumber, order.User.Email, h.cfg.TrackingSalt)
		if verify == expected {
			var items []models.OrderItem
			if err := h.db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
				return err
			}
			data["items"] = items
			data["subtotal"] = order.Subtotal
			data["delivery_fee"] = order.DeliveryFee
			data["total"] = order.TotalAmount
			data["payment_status"] = order.PaymentStatus
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// mapLifecycleError converts lifecycle sentinel errors to HTTP errors.
func mapLifecycleError(err error) error {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAssigned):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrNotDelivered),
		errors.Is(err, services.ErrNotShipped),
		errors.Is(err, services.ErrAlreadyConfirmed):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
