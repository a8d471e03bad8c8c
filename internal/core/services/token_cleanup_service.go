package services

import (
	"context"
	"log"
	"time"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// TokenCleanupService purges expired refresh token rows on a schedule.
// Revoked rows that have not yet expired are kept for audit.
type TokenCleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewTokenCleanupService creates a new token cleanup service
func NewTokenCleanupService(refreshTokenRepo repositories.RefreshTokenRepository) *TokenCleanupService {
	return &TokenCleanupService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the daily purge (03:00)
func (s *TokenCleanupService) Start() {
	s.cron.AddFunc("0 3 * * *", s.purgeExpired)
	s.cron.Start()
	log.Println("🚀 TokenCleanupService started (daily 03:00)")
}

// Stop stops the scheduler
func (s *TokenCleanupService) Stop() {
	s.cron.Stop()
	log.Println("🛑 TokenCleanupService stopped")
}

func (s *TokenCleanupService) purgeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpiredBefore(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Token cleanup error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Token cleanup removed %d expired tokens", deleted)
	}
}
