package domain

import "time"

type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusFulfilled OrderStatus = "FULFILLED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type OrderType string

const (
	TypeDelivery OrderType = "DELIVERY"
	TypePickup   OrderType = "PICKUP"
)

// statusTransitions is the only source of truth for legal status moves.
// FULFILLED and CANCELLED are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusFulfilled, StatusCancelled},
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusFulfilled || s == StatusCancelled
}

type OrderItem struct {
	Name     string
	Quantity int32
	Subtotal int64
}

type Customer struct {
	Name  string
	Phone string
}

type Totals struct {
	Subtotal    int64
	Tax         int64
	DeliveryFee int64
	Total       int64
}

type Order struct {
	ID              string
	StoreID         string
	OrderNo         string
	Type            OrderType
	Status          OrderStatus
	Items           []OrderItem
	Customer        Customer
	MaskedCustomer  Customer
	DeliveryAddress string
	SpecialRequests string
	Payment         Payment
	Totals          Totals
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderFilters struct {
	Status OrderStatus
}
