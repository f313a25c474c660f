package httpapi

import (
	"github.com/gofiber/fiber/v2"
	paymentdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/payment"
	paymentusecase "github.com/maru-commerce/maru-order-service/internal/usecase/payment"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type PaymentHandler struct {
	uc paymentusecase.PaymentUsecase
}

func NewPaymentHandler(uc paymentusecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req confirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, status.Error(codes.InvalidArgument, "invalid request body"))
	}

	result, err := h.uc.ConfirmPayment(c.Context(), &paymentdto.ConfirmInput{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(confirmPaymentResponse{
		Success: result.Success,
		OrderID: result.OrderID,
		Status:  result.Status,
		Result:  result.Result,
	})
}

// HandleWebhook is the gateway's unauthenticated callback. The signature in
// the body is the authentication.
func (h *PaymentHandler) HandleWebhook(c *fiber.Ctx) error {
	var req webhookRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, status.Error(codes.InvalidArgument, "invalid request body"))
	}

	if err := h.uc.HandleWebhook(c.Context(), &paymentdto.WebhookInput{
		TransactionID: req.TransactionID,
		OrderMoniker:  req.OrderMoniker,
		Amount:        req.Amount,
		ResultCode:    req.ResultCode,
		Signature:     req.Signature,
	}); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
