package usecase

import (
	"context"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/metrics"
	paymentdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	ConfirmPayment(ctx context.Context, input *paymentdto.ConfirmInput) (*paymentdto.ConfirmResult, error)
	HandleWebhook(ctx context.Context, input *paymentdto.WebhookInput) error
}

type DefaultPaymentUsecase struct {
	OrderRepo     domain.OrderRepository
	Gateway       domain.PaymentGatewayPort
	MerchantID    string
	SigningSecret string
	Metrics       *metrics.ServiceMetrics
}

func NewDefaultPaymentUsecase(
	orderRepo domain.OrderRepository,
	gateway domain.PaymentGatewayPort,
	merchantID, signingSecret string,
	serviceMetrics *metrics.ServiceMetrics) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		OrderRepo:     orderRepo,
		Gateway:       gateway,
		MerchantID:    merchantID,
		SigningSecret: signingSecret,
		Metrics:       serviceMetrics,
	}
}
