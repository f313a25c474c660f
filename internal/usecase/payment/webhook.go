package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	paymentdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/payment"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// gatewaySuccessCode is the result code the gateway sends for an approved
// transaction.
const gatewaySuccessCode = "0000"

// HandleWebhook is the unauthenticated gateway-callback path. The request
// authenticates itself through its signature; anything unsigned or
// mis-signed is rejected before any lookup.
func (uc *DefaultPaymentUsecase) HandleWebhook(ctx context.Context, input *paymentdto.WebhookInput) error {
	expected := signPayload(uc.SigningSecret, input.TransactionID, uc.MerchantID, input.Amount)
	if !signatureMatches(expected, input.Signature) {
		slog.Warn("webhook signature mismatch",
			"transaction_id", input.TransactionID,
			"order_moniker", input.OrderMoniker,
			"security_event", true,
		)
		return status.Error(codes.InvalidArgument, "invalid signature")
	}

	order, err := uc.OrderRepo.GetOrderByOrderNo(input.OrderMoniker)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return status.Errorf(codes.NotFound, "no order for moniker %s", input.OrderMoniker)
		}
		return status.Errorf(codes.Internal, "failed to load order: %v", err)
	}

	payment := order.Payment
	payment.TransactionID = input.TransactionID
	if input.ResultCode == gatewaySuccessCode {
		payment.Status = domain.PaymentCompleted
		payment.GatewayResponse = `{"resultCode":` + jsonQuote(input.ResultCode) + `}`
		if uc.Metrics != nil {
			uc.Metrics.PaymentCompletedTotal.WithLabelValues(order.StoreID).Inc()
		}
	} else {
		payment.Status = domain.PaymentFailed
		payment.GatewayResponse = `{"resultCode":` + jsonQuote(input.ResultCode) + `}`
		if uc.Metrics != nil {
			uc.Metrics.PaymentFailedTotal.WithLabelValues(order.StoreID).Inc()
		}
	}

	if err := uc.OrderRepo.UpdatePayment(order.ID, payment); err != nil {
		return status.Errorf(codes.Internal, "failed to persist payment: %v", err)
	}
	return nil
}
