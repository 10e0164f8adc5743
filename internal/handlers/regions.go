package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/models"
)

// RegionHandler manages delivery-region administration.
type RegionHandler struct {
	db *gorm.DB
}

// NewRegionHandler constructs RegionHandler.
func NewRegionHandler(db *gorm.DB) *RegionHandler {
	return &RegionHandler{db: db}
}

// ListRegions returns all regions, including inactive ones, with subregions.
func (h *RegionHandler) ListRegions(c *fiber.Ctx) error {
	var regions []models.DeliveryRegion
	if err := h.db.Preload("Subregions").
		Order("name asc").
		Find(&regions).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": regions})
}

type createRegionRequest struct {
	Name string  `json:"name"`
	Fee  float64 `json:"fee"`
}

// CreateRegion adds a delivery coverage area.
func (h *RegionHandler) CreateRegion(c *fiber.Ctx) error {
	var req createRegionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.Fee < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "fee cannot be negative")
	}

	var existing models.DeliveryRegion
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "region already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	region := models.DeliveryRegion{
		Name:     req.Name,
		Fee:      req.Fee,
		IsActive: true,
	}
	if err := h.db.Create(&region).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": region})
}

// ListSubregions returns the subregions of one region.
func (h *RegionHandler) ListSubregions(c *fiber.Ctx) error {
	regionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var region models.DeliveryRegion
	if err := h.db.First(&region, "id = ?", regionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "region not found")
		}
		return err
	}

	var subregions []models.DeliverySubregion
	if err := h.db.Where("region_id = ?", regionID).
		Order("name asc").
		Find(&subregions).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": subregions})
}

type createSubregionRequest struct {
	Name string `json:"name"`
}

// CreateSubregion adds a subregion to an existing region.
func (h *RegionHandler) CreateSubregion(c *fiber.Ctx) error {
	regionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req createSubregionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	var region models.DeliveryRegion
	if err := h.db.First(&region, "id = ?", regionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "region not found")
		}
		return err
	}

	subregion := models.DeliverySubregion{
		RegionID: region.ID,
		Name:     req.Name,
		IsActive: true,
	}
	if err := h.db.Create(&subregion).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": subregion})
}
