package usecase

import (
	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/metrics"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(input *orderdto.CreateOrderInput) (*domain.Order, error)
	GetPublicOrder(storeID, orderID string) (*orderdto.PublicOrderOutput, error)
	SetOrderStatus(principal domain.Principal, input *orderdto.SetStatusInput) (*orderdto.SetStatusResult, error)
	ListStoreOrders(principal domain.Principal, storeID string, page, limit int, status string) ([]*orderdto.PublicOrderOutput, int64, error)
}

type DefaultOrderUsecase struct {
	OrderRepo            domain.OrderRepository
	Publisher            domain.PublisherPort
	HistoryTopic         string
	OnlinePaymentEnabled bool
	Metrics              *metrics.ServiceMetrics
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	pub domain.PublisherPort,
	historyTopic string,
	onlinePaymentEnabled bool,
	serviceMetrics *metrics.ServiceMetrics) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		OrderRepo:            orderRepo,
		Publisher:            pub,
		HistoryTopic:         historyTopic,
		OnlinePaymentEnabled: onlinePaymentEnabled,
		Metrics:              serviceMetrics,
	}
}
