package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/kafka"
)

const deferredPollInterval = time.Minute

// StartDispatchWorker consumes the order-history topic and drives the
// dispatcher. Dispatch errors are logged, never fatal: the status change
// already succeeded and the DLQ holds whatever could not be delivered.
func (uc *DefaultNotificationUsecase) StartDispatchWorker(ctx context.Context, sub domain.SubscriberPort, topic, groupID string) {
	messages, err := sub.Subscribe(topic, groupID)
	if err != nil {
		slog.Error("failed to subscribe to history topic", "topic", topic, "error", err.Error())
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				slog.Error("history topic subscription closed", "topic", topic)
				return
			}
			var event kafka.HistoryEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				slog.Error("failed to decode history event", "error", err.Error())
				continue
			}
			if err := uc.Dispatch(ctx, event); err != nil {
				slog.Error("dispatch failed", "history_id", event.HistoryID, "error", err.Error())
			}
		}
	}
}

// StartDeferredProcessor polls the deferred-notification queue and
// redelivers whatever has come due.
func (uc *DefaultNotificationUsecase) StartDeferredProcessor(ctx context.Context) {
	ticker := time.NewTicker(deferredPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.ProcessDueDeferred(ctx); err != nil {
				slog.Error("deferred processing failed", "error", err.Error())
			}
		}
	}
}
