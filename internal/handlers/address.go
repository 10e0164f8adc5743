package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/middleware"
	"github.com/example/rosenook/internal/models"
)

// AddressHandler manages the customer's saved delivery addresses.
type AddressHandler struct {
	db *gorm.DB
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(db *gorm.DB) *AddressHandler {
	return &AddressHandler{db: db}
}

// ListAddresses returns the authenticated user's addresses.
func (h *AddressHandler) ListAddresses(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var addresses []models.Address
	if err := h.db.Where("user_id = ?", userID).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": addresses})
}

type createAddressRequest struct {
	Label       string `json:"label"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	RegionID    string `json:"region_id"`
	SubregionID string `json:"subregion_id"`
	PostalCode  string `json:"postal_code"`
	IsDefault   bool   `json:"is_default"`
}

// CreateAddress saves a new address for the authenticated user.
func (h *AddressHandler) CreateAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.AddressLine == "" || req.City == "" {
		return fiber.NewError(fiber.StatusBadRequest, "address_line and city are required")
	}

	address := models.Address{
		UserID:      userID,
		Label:       req.Label,
		AddressLine: req.AddressLine,
		City:        req.City,
		PostalCode:  req.PostalCode,
		IsDefault:   req.IsDefault,
	}

	if req.RegionID != "" {
		regionID, err := uuid.Parse(req.RegionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid region_id")
		}

		var region models.DeliveryRegion
		if err := h.db.First(&region, "id = ? AND is_active = true", regionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusBadRequest, "delivery region not found")
			}
			return err
		}
		address.RegionID = &region.ID

		if req.SubregionID != "" {
			subregionID, err := uuid.Parse(req.SubregionID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid subregion_id")
			}

			var subregion models.DeliverySubregion
			if err := h.db.First(&subregion, "id = ? AND region_id = ?", subregionID, region.ID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusBadRequest, "subregion not found in region")
				}
				return err
			}
			address.SubregionID = &subregion.ID
		}
	}

	if req.IsDefault {
		if err := h.db.Model(&models.Address{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
	}

	if err := h.db.Create(&address).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": address})
}
