package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/kafka"
)

// Dispatch fans one history event out across the recipient's enabled
// channels. A channel failure lands in the DLQ and never blocks the next
// channel; nothing here propagates back to the status-change caller.
func (uc *DefaultNotificationUsecase) Dispatch(ctx context.Context, event kafka.HistoryEvent) error {
	order, err := uc.OrderRepo.GetOrderByID(event.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			// a history entry without its order is an inconsistency, not
			// something a retry can fix
			slog.Error("history event references missing order",
				"order_id", event.OrderID, "history_id", event.HistoryID)
			return nil
		}
		return fmt.Errorf("loading order %s: %w", event.OrderID, err)
	}

	store, err := uc.StoreRepo.GetStore(order.StoreID)
	if err != nil {
		slog.Error("history event references missing store",
			"store_id", order.StoreID, "order_id", order.ID)
		return nil
	}

	pref, err := uc.NotificationRepo.GetPreference(store.OwnerUserID)
	if err != nil {
		if !errors.Is(err, domain.ErrPreferenceNotFound) {
			return fmt.Errorf("loading preference for %s: %w", store.OwnerUserID, err)
		}
		pref = domain.DefaultPreference(store.OwnerUserID)
	}

	control, err := uc.NotificationRepo.GetDispatchControl()
	if err != nil {
		return fmt.Errorf("loading dispatch control: %w", err)
	}
	if control.Paused {
		slog.Info("dispatch paused, dropping event",
			"history_id", event.HistoryID, "control_version", control.Version)
		return nil
	}

	eventName := domain.EventForStatus(domain.OrderStatus(event.Status))
	if pref.OptedOutOf(eventName) {
		return nil
	}

	subject, body := uc.renderMessage(store, order, pref, eventName, event.Note)

	now := time.Now()
	if pref.QuietHours.Active(now) {
		deferred := &domain.DeferredNotification{
			ID:           uuid.New().String(),
			StoreID:      store.ID,
			OrderID:      order.ID,
			UserID:       pref.UserID,
			Subject:      subject,
			Body:         body,
			DeliverAfter: pref.QuietHours.NextEnd(now),
		}
		if err := uc.NotificationRepo.CreateDeferred(deferred); err != nil {
			return fmt.Errorf("deferring notification: %w", err)
		}
		if uc.Metrics != nil {
			uc.Metrics.NotificationDeferredTotal.WithLabelValues(store.ID).Inc()
		}
		return nil
	}

	for _, channel := range pref.Channels {
		switch channel {
		case domain.ChannelPush:
			uc.sendPush(ctx, store.ID, pref.UserID, subject, body)
		case domain.ChannelChat:
			uc.sendChat(ctx, store.ID, subject, body)
		default:
			slog.Warn("unknown notification channel", "channel", string(channel))
		}
	}
	return nil
}

// renderMessage resolves the event+locale template, falling back to a plain
// templated sentence so a missing template never kills a dispatch.
func (uc *DefaultNotificationUsecase) renderMessage(store *domain.Store, order *domain.Order, pref *domain.NotificationPreference, eventName, note string) (string, string) {
	data := domain.TemplateData{
		MerchantName: store.Name,
		OrderNo:      order.OrderNo,
		Status:       string(order.Status),
		Note:         note,
		OccurredAt:   time.Now().Format(time.RFC3339),
	}
	out, err := uc.TemplateUsecase.RenderTemplate(store.ID, domain.TemplateID(eventName, pref.Locale), data)
	if err != nil {
		slog.Warn("template render failed, using generic message",
			"store_id", store.ID, "event", eventName, "error", err.Error())
		subject := fmt.Sprintf("[%s] order update", store.Name)
		body := fmt.Sprintf("Order %s is now %s.", order.OrderNo, order.Status)
		return subject, body
	}
	return out.Subject, out.Body
}

func (uc *DefaultNotificationUsecase) sendPush(ctx context.Context, storeID, userID, subject, body string) {
	tokens, err := uc.NotificationRepo.ListPushTokens(userID)
	if err != nil {
		slog.Error("failed to list push tokens", "user_id", userID, "error", err.Error())
		uc.recordFailure(storeID, domain.ChannelPush, "", subject, body, err.Error())
		return
	}
	for _, token := range tokens {
		if err := uc.PushSender.Send(ctx, token.Token, subject, body); err != nil {
			uc.recordFailure(storeID, domain.ChannelPush, token.Token, subject, body, err.Error())
			continue
		}
		if uc.Metrics != nil {
			uc.Metrics.NotificationSentTotal.WithLabelValues(string(domain.ChannelPush)).Inc()
		}
	}
}

func (uc *DefaultNotificationUsecase) sendChat(ctx context.Context, storeID, subject, body string) {
	if uc.ChatWebhookURL == "" {
		return
	}
	text := subject + "\n" + body
	if err := uc.ChatSender.Send(ctx, uc.ChatWebhookURL, text); err != nil {
		uc.recordFailure(storeID, domain.ChannelChat, uc.ChatWebhookURL, subject, body, err.Error())
		return
	}
	if uc.Metrics != nil {
		uc.Metrics.NotificationSentTotal.WithLabelValues(string(domain.ChannelChat)).Inc()
	}
}

func (uc *DefaultNotificationUsecase) recordFailure(storeID string, channel domain.Channel, recipient, subject, body, reason string) {
	failure := &domain.NotificationFailure{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		Channel:   channel,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Reason:    reason,
	}
	if err := uc.NotificationRepo.CreateFailure(failure); err != nil {
		slog.Error("failed to write DLQ entry", "channel", string(channel), "error", err.Error())
	}
	if uc.Metrics != nil {
		uc.Metrics.NotificationFailedTotal.WithLabelValues(string(channel)).Inc()
	}
	slog.Warn("notification delivery failed",
		"channel", string(channel), "store_id", storeID, "reason", reason)
}
