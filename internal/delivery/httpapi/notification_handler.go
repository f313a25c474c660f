package httpapi

import (
	"github.com/gofiber/fiber/v2"
	notificationusecase "github.com/maru-commerce/maru-order-service/internal/usecase/notification"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type NotificationHandler struct {
	uc notificationusecase.NotificationUsecase
}

func NewNotificationHandler(uc notificationusecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RetryFailures(c *fiber.Ctx) error {
	var req retryRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, status.Error(codes.InvalidArgument, "invalid request body"))
	}

	result, err := h.uc.RetryFailures(principalFrom(c), req.FailureIDs)
	if err != nil {
		return writeError(c, err)
	}

	resp := retryResponse{Success: result.Success}
	resp.Results.Success = result.SuccessCount
	resp.Results.Failed = result.FailedCount
	resp.Results.Errors = result.Errors
	if resp.Results.Errors == nil {
		resp.Results.Errors = []string{}
	}
	return c.JSON(resp)
}
