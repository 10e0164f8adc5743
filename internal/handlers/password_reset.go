package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/config"
	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/utils"
)

// forgotPasswordMessage is returned whether or not the email exists, so the
// endpoint cannot be used to probe for registered accounts.
const forgotPasswordMessage = "If that email is registered, a reset link has been sent"

// Reset-token redemption failures.
var (
	errResetTokenUsed    = errors.New("reset token already used")
	errResetTokenExpired = errors.New("reset token expired")
)

// PasswordResetHandler manages forgot-password endpoints.
type PasswordResetHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(db *gorm.DB, cfg *config.Config) *PasswordResetHandler {
	return &PasswordResetHandler{db: db, cfg: cfg}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a one-time reset token valid for one hour. The
// response is identical for known and unknown emails.
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"success": true, "message": forgotPasswordMessage})
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	record := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(h.cfg.ResetTokenTTL),
		Used:      false,
	}
	if err := h.db.Create(&record).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create reset token")
	}

	// Token delivery (email) happens out of band; the API never echoes it.
	return c.JSON(fiber.Map{"success": true, "message": forgotPasswordMessage})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword redeems a reset token. Expired tokens are deleted on the spot;
// used tokens are rejected. The password update and the token consumption
// happen in one transaction.
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "token and new_password are required")
	}
	if len(req.NewPassword) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	var record models.PasswordReset
	if err := h.db.Where("token = ?", req.Token).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "invalid reset token")
		}
		return err
	}

	if err := checkResetToken(&record, time.Now()); err != nil {
		if errors.Is(err, errResetTokenExpired) {
			h.db.Delete(&record)
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", record.UserID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}

		return tx.Model(&record).Update("used", true).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update password")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "password updated successfully",
	})
}

// checkResetToken reports why a token cannot be redeemed, or nil.
func checkResetToken(record *models.PasswordReset, now time.Time) error {
	if now.After(record.ExpiresAt) {
		return errResetTokenExpired
	}
	if record.Used {
		return errResetTokenUsed
	}
	return nil
}

func generateResetToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}
