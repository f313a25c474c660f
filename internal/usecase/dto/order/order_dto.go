package orderdto

import (
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
)

type OrderItemInput struct {
	Name     string
	Quantity int32
	Subtotal int64
}

type CreateOrderInput struct {
	StoreID         string
	Items           []OrderItemInput
	CustomerName    string
	CustomerPhone   string
	OrderType       string
	PaymentMethod   string
	DeliveryAddress string
	SpecialRequests string
	DeliveryFee     int64
}

type SetStatusInput struct {
	StoreID    string
	OrderID    string
	Status     string
	Note       string
	MutationID string
}

type SetStatusResult struct {
	Success    bool
	HistoryID  string
	Idempotent bool
}

// PublicOrderOutput is the PII-scrubbed projection served on the public
// read path: masked customer only, no raw contact fields.
type PublicOrderOutput struct {
	ID              string
	StoreID         string
	OrderNo         string
	Type            domain.OrderType
	Status          domain.OrderStatus
	Items           []domain.OrderItem
	Customer        domain.Customer
	DeliveryAddress string
	SpecialRequests string
	PaymentStatus   domain.PaymentStatus
	PaymentMethod   string
	Totals          domain.Totals
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ToPublicOrder(order *domain.Order) *PublicOrderOutput {
	return &PublicOrderOutput{
		ID:              order.ID,
		StoreID:         order.StoreID,
		OrderNo:         order.OrderNo,
		Type:            order.Type,
		Status:          order.Status,
		Items:           order.Items,
		Customer:        order.MaskedCustomer,
		DeliveryAddress: order.DeliveryAddress,
		SpecialRequests: order.SpecialRequests,
		PaymentStatus:   order.Payment.Status,
		PaymentMethod:   order.Payment.Method,
		Totals:          order.Totals,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
