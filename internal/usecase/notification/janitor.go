package usecase

import (
	"context"
	"log/slog"
	"time"
)

// staleTokenAge is how long an unused push registration survives.
const staleTokenAge = 90 * 24 * time.Hour

// RunTokenCleanup removes push registrations whose last-used timestamp is
// older than 90 days, batched per recipient.
func (uc *DefaultNotificationUsecase) RunTokenCleanup(ctx context.Context) error {
	owners, err := uc.NotificationRepo.ListTokenOwners()
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-staleTokenAge)
	var removed int64
	for _, owner := range owners {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		count, err := uc.NotificationRepo.DeleteStaleTokens(owner, cutoff)
		if err != nil {
			slog.Error("failed to clean push tokens", "user_id", owner, "error", err.Error())
			continue
		}
		removed += count
	}

	if uc.Metrics != nil {
		uc.Metrics.TokensCleanedTotal.Add(float64(removed))
	}
	slog.Info("push token cleanup finished", "recipients", len(owners), "removed", removed)
	return nil
}

// StartTokenJanitor runs the cleanup once a day at the configured local
// hour.
func (uc *DefaultNotificationUsecase) StartTokenJanitor(ctx context.Context, hour int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		if err := uc.RunTokenCleanup(ctx); err != nil {
			slog.Error("push token cleanup failed", "error", err.Error())
		}
	}
}
