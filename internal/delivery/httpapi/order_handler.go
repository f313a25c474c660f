package httpapi

import (
	"github.com/gofiber/fiber/v2"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
	orderusecase "github.com/maru-commerce/maru-order-service/internal/usecase/order"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type OrderHandler struct {
	uc orderusecase.OrderUsecase
}

func NewOrderHandler(uc orderusecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, status.Error(codes.InvalidArgument, "invalid request body"))
	}

	items := make([]orderdto.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderdto.OrderItemInput{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
		})
	}

	order, err := h.uc.CreateOrder(&orderdto.CreateOrderInput{
		StoreID:         req.StoreID,
		Items:           items,
		CustomerName:    req.Customer.Name,
		CustomerPhone:   req.Customer.Phone,
		OrderType:       req.OrderType,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		SpecialRequests: req.SpecialRequests,
		DeliveryFee:     req.DeliveryFee,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.uc.GetPublicOrder(c.Params("storeID"), c.Params("orderID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPublicOrderResponse(order))
}

func (h *OrderHandler) SetOrderStatus(c *fiber.Ctx) error {
	var req setStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, status.Error(codes.InvalidArgument, "invalid request body"))
	}

	result, err := h.uc.SetOrderStatus(principalFrom(c), &orderdto.SetStatusInput{
		StoreID:    c.Params("storeID"),
		OrderID:    c.Params("orderID"),
		Status:     req.Status,
		Note:       req.Note,
		MutationID: req.MutationID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(setStatusResponse{
		Success:    result.Success,
		HistoryID:  result.HistoryID,
		Idempotent: result.Idempotent,
	})
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	statusFilter := c.Query("status")

	orders, total, err := h.uc.ListStoreOrders(principalFrom(c), c.Params("storeID"), page, limit, statusFilter)
	if err != nil {
		return writeError(c, err)
	}

	resp := listOrdersResponse{Total: total, Orders: make([]orderResponse, 0, len(orders))}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, toPublicOrderResponse(order))
	}
	return c.JSON(resp)
}
