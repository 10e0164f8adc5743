package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/utils"
)

// CatalogHandler serves the public storefront resources.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns active categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Where("is_active = true").
		Order("name asc").
		Find(&categories).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// ListProducts returns paginated active products, optionally filtered by
// category slug or search term.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{}).Where("is_active = true")

	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", category)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("products.name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").
		Order("products.created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListDeliveryRegions returns active regions with their subregions for the
// checkout address form.
func (h *CatalogHandler) ListDeliveryRegions(c *fiber.Ctx) error {
	var regions []models.DeliveryRegion
	if err := h.db.Where("is_active = true").
		Preload("Subregions", "is_active = true").
		Order("name asc").
		Find(&regions).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": regions})
}
