package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/rosenook/internal/config"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadHandler stores catalog images in the public static directory.
type UploadHandler struct {
	cfg *config.Config
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// Upload accepts a JPEG/PNG/WebP image up to 10 MB and stores it under a
// UUID-derived filename.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	if file.Size > maxUploadSize {
		return fiber.NewError(fiber.StatusBadRequest, "file exceeds 10 MB limit")
	}

	ext, ok := allowedImageTypes[file.Header.Get("Content-Type")]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "only JPEG, PNG, and WebP images are allowed")
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to prepare upload directory")
	}

	filename := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, filename)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save file")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"filename": filename,
			"url":      fmt.Sprintf("%s/uploads/%s", h.cfg.PublicBaseURL, filename),
		},
	})
}
