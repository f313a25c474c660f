package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maru-commerce/maru-order-service/internal/domain"
	templateusecase "github.com/maru-commerce/maru-order-service/internal/usecase/template"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type TemplateHandler struct {
	uc templateusecase.TemplateUsecase
}

func NewTemplateHandler(uc templateusecase.TemplateUsecase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

func (h *TemplateHandler) RenderTemplate(c *fiber.Ctx) error {
	var req renderTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, status.Error(codes.InvalidArgument, "invalid request body"))
	}

	out, err := h.uc.RenderTemplate(req.StoreID, req.TemplateID, domain.TemplateData{
		MerchantName: req.Data.MerchantName,
		OrderNo:      req.Data.OrderNo,
		Status:       req.Data.Status,
		Note:         req.Data.Note,
		OccurredAt:   req.Data.OccurredAt,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(renderTemplateResponse{
		Subject: out.Subject,
		Body:    out.Body,
		Channel: string(out.Channel),
		Locale:  out.Locale,
	})
}
