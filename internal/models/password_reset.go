package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is a one-time reset token. Expired records are deleted on
// redemption attempts and swept hourly by the cleanup job.
type PasswordReset struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
}
