package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a usecase status error onto the HTTP response. The
// taxonomy code travels in the body so callers can tell invalid-argument
// from failed-precondition behind the shared 400.
func writeError(c *fiber.Ctx, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody{
			Code:    codes.Internal.String(),
			Message: err.Error(),
		})
	}

	httpStatus := fiber.StatusInternalServerError
	switch st.Code() {
	case codes.InvalidArgument, codes.FailedPrecondition:
		httpStatus = fiber.StatusBadRequest
	case codes.NotFound:
		httpStatus = fiber.StatusNotFound
	case codes.PermissionDenied:
		httpStatus = fiber.StatusForbidden
	case codes.Unauthenticated:
		httpStatus = fiber.StatusUnauthorized
	case codes.Aborted:
		httpStatus = fiber.StatusConflict
	}

	return c.Status(httpStatus).JSON(errorBody{
		Code:    st.Code().String(),
		Message: st.Message(),
	})
}
