package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	App *fiber.App
}

func NewServer(
	auth *AuthMiddleware,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	notificationHandler *NotificationHandler,
	templateHandler *TemplateHandler) *Server {

	app := fiber.New()

	v1 := app.Group("/v1")

	// public surface
	v1.Post("/orders", orderHandler.CreateOrder)
	v1.Get("/stores/:storeID/orders/:orderID", orderHandler.GetOrder)

	// gateway callback authenticates through its own signature
	v1.Post("/payments/webhook", paymentHandler.HandleWebhook)

	// authenticated surface
	v1.Patch("/stores/:storeID/orders/:orderID/status", auth.Handle, orderHandler.SetOrderStatus)
	v1.Get("/stores/:storeID/orders", auth.Handle, orderHandler.ListOrders)
	v1.Post("/payments/confirm", auth.Handle, paymentHandler.ConfirmPayment)
	v1.Post("/notifications/retry", auth.Handle, notificationHandler.RetryFailures)
	v1.Post("/templates/render", auth.Handle, templateHandler.RenderTemplate)

	return &Server{App: app}
}

func (s *Server) Listen(addr string) error {
	return s.App.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
