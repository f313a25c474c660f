package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const deferredBatchSize = 100

// ProcessDueDeferred redelivers notifications that quiet hours pushed past
// their window. Quiet hours are not re-checked: the deliver-after time
// already is the right time to send. Failed sends get the same DLQ safety
// net as the main dispatch path.
func (uc *DefaultNotificationUsecase) ProcessDueDeferred(ctx context.Context) error {
	due, err := uc.NotificationRepo.ClaimDueDeferred(time.Now(), deferredBatchSize)
	if err != nil {
		return fmt.Errorf("claiming due deferred notifications: %w", err)
	}

	for _, deferred := range due {
		uc.sendPush(ctx, deferred.StoreID, deferred.UserID, deferred.Subject, deferred.Body)
	}
	if len(due) > 0 {
		slog.Info("redelivered deferred notifications", "count", len(due))
	}
	return nil
}
