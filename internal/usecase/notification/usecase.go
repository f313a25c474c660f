package usecase

import (
	"context"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/kafka"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/metrics"
	templateuc "github.com/maru-commerce/maru-order-service/internal/usecase/template"
)

type NotificationUsecase interface {
	Dispatch(ctx context.Context, event kafka.HistoryEvent) error
	RetryFailures(principal domain.Principal, failureIDs []string) (*RetryResult, error)
	ProcessDueDeferred(ctx context.Context) error
	RunTokenCleanup(ctx context.Context) error
}

type DefaultNotificationUsecase struct {
	NotificationRepo domain.NotificationRepository
	OrderRepo        domain.OrderRepository
	StoreRepo        domain.StoreRepository
	TemplateUsecase  templateuc.TemplateUsecase
	PushSender       domain.PushSender
	ChatSender       domain.ChatSender
	ChatWebhookURL   string
	Metrics          *metrics.ServiceMetrics
}

func NewDefaultNotificationUsecase(
	notificationRepo domain.NotificationRepository,
	orderRepo domain.OrderRepository,
	storeRepo domain.StoreRepository,
	templateUsecase templateuc.TemplateUsecase,
	pushSender domain.PushSender,
	chatSender domain.ChatSender,
	chatWebhookURL string,
	serviceMetrics *metrics.ServiceMetrics) *DefaultNotificationUsecase {

	return &DefaultNotificationUsecase{
		NotificationRepo: notificationRepo,
		OrderRepo:        orderRepo,
		StoreRepo:        storeRepo,
		TemplateUsecase:  templateUsecase,
		PushSender:       pushSender,
		ChatSender:       chatSender,
		ChatWebhookURL:   chatWebhookURL,
		Metrics:          serviceMetrics,
	}
}
