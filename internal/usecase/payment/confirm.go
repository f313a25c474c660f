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

// ConfirmPayment is the client-confirmation path. The claimed amount is
// checked against the authoritative server-side total before the gateway is
// ever called; a mismatch is a tampering attempt, not a validation slip.
func (uc *DefaultPaymentUsecase) ConfirmPayment(ctx context.Context, input *paymentdto.ConfirmInput) (*paymentdto.ConfirmResult, error) {
	if input.OrderID == "" || input.TransactionID == "" {
		return nil, status.Error(codes.InvalidArgument, "orderId and transactionId are required")
	}
	if input.Amount <= 0 {
		return nil, status.Error(codes.InvalidArgument, "amount must be positive")
	}

	order, err := uc.OrderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, status.Error(codes.NotFound, "order not found")
		}
		return nil, status.Errorf(codes.Internal, "failed to load order: %v", err)
	}

	// webhook and client confirmation may race; both express the same
	// terminal payment state, so a second confirmation is a no-op
	if order.Payment.Status == domain.PaymentCompleted {
		return &paymentdto.ConfirmResult{
			Success: true,
			OrderID: order.ID,
			Status:  string(domain.PaymentCompleted),
			Result:  "already confirmed",
		}, nil
	}

	if input.Amount != order.Totals.Total {
		payment := order.Payment
		payment.Status = domain.PaymentTampered
		payment.TransactionID = input.TransactionID
		payment.Amount = input.Amount
		if err := uc.OrderRepo.UpdatePayment(order.ID, payment); err != nil {
			slog.Error("failed to record tamper status", "order_id", order.ID, "error", err.Error())
		}
		if uc.Metrics != nil {
			uc.Metrics.PaymentTamperTotal.WithLabelValues(order.StoreID).Inc()
		}
		slog.Warn("payment amount mismatch",
			"order_id", order.ID,
			"claimed", input.Amount,
			"expected", order.Totals.Total,
			"security_event", true,
		)
		return nil, status.Error(codes.Aborted, "claimed amount does not match order total")
	}

	result, err := uc.Gateway.Approve(ctx, input.TransactionID, input.Amount)
	if err != nil || !result.Approved {
		payment := order.Payment
		payment.Status = domain.PaymentFailed
		payment.TransactionID = input.TransactionID
		if err != nil {
			payment.GatewayResponse = `{"error":` + jsonQuote(err.Error()) + `}`
		} else {
			payment.GatewayResponse = result.RawPayload
		}
		if updateErr := uc.OrderRepo.UpdatePayment(order.ID, payment); updateErr != nil {
			slog.Error("failed to record payment failure", "order_id", order.ID, "error", updateErr.Error())
		}
		if uc.Metrics != nil {
			uc.Metrics.PaymentFailedTotal.WithLabelValues(order.StoreID).Inc()
		}
		return nil, status.Error(codes.Internal, "payment gateway rejected the transaction")
	}

	payment := order.Payment
	payment.Status = domain.PaymentCompleted
	payment.TransactionID = input.TransactionID
	payment.GatewayResponse = result.RawPayload
	if err := uc.OrderRepo.UpdatePayment(order.ID, payment); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to persist payment: %v", err)
	}
	if uc.Metrics != nil {
		uc.Metrics.PaymentCompletedTotal.WithLabelValues(order.StoreID).Inc()
	}

	return &paymentdto.ConfirmResult{
		Success: true,
		OrderID: order.ID,
		Status:  string(domain.PaymentCompleted),
		Result:  result.ResultCode,
	}, nil
}
