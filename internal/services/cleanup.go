package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/models"
)

// TokenCleanup sweeps expired password-reset tokens. Expired tokens are also
// deleted lazily on redemption attempts; the sweep keeps the table bounded
// when tokens are simply abandoned.
type TokenCleanup struct {
	db   *gorm.DB
	cron *cron.Cron
}

// NewTokenCleanup constructs TokenCleanup.
func NewTokenCleanup(db *gorm.DB) *TokenCleanup {
	return &TokenCleanup{db: db, cron: cron.New()}
}

// Start schedules the hourly sweep.
func (t *TokenCleanup) Start() error {
	if _, err := t.cron.AddFunc("@hourly", t.purge); err != nil {
		return err
	}
	t.cron.Start()
	return nil
}

// Stop halts the scheduler.
func (t *TokenCleanup) Stop() {
	t.cron.Stop()
}

func (t *TokenCleanup) purge() {
	result := t.db.Where("expires_at < ?", time.Now()).Delete(&models.PasswordReset{})
	if result.Error != nil {
		log.Printf("[cleanup] failed to purge expired reset tokens: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[cleanup] purged %d expired reset tokens", result.RowsAffected)
	}
}
