package httpapi

import (
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
)

type orderItemRequest struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

type createOrderRequest struct {
	StoreID  string             `json:"storeId"`
	Items    []orderItemRequest `json:"items"`
	Customer struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"customer"`
	OrderType       string `json:"orderType"`
	PaymentMethod   string `json:"paymentMethod"`
	DeliveryAddress string `json:"deliveryAddress"`
	SpecialRequests string `json:"specialRequests"`
	DeliveryFee     int64  `json:"deliveryFee"`
}

type totalsResponse struct {
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

type customerResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type orderItemResponse struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	StoreID         string              `json:"storeId"`
	OrderNo         string              `json:"orderNo"`
	Type            string              `json:"orderType"`
	Status          string              `json:"status"`
	Items           []orderItemResponse `json:"items"`
	Customer        customerResponse    `json:"customer"`
	DeliveryAddress string              `json:"deliveryAddress,omitempty"`
	SpecialRequests string              `json:"specialRequests,omitempty"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	Totals          totalsResponse      `json:"totals"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func toOrderResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{Name: item.Name, Quantity: item.Quantity, Subtotal: item.Subtotal})
	}
	return orderResponse{
		ID:      order.ID,
		StoreID: order.StoreID,
		OrderNo: order.OrderNo,
		Type:    string(order.Type),
		Status:  string(order.Status),
		Items:   items,
		Customer: customerResponse{
			Name:  order.MaskedCustomer.Name,
			Phone: order.MaskedCustomer.Phone,
		},
		DeliveryAddress: order.DeliveryAddress,
		SpecialRequests: order.SpecialRequests,
		PaymentMethod:   order.Payment.Method,
		PaymentStatus:   string(order.Payment.Status),
		Totals: totalsResponse{
			Subtotal:    order.Totals.Subtotal,
			Tax:         order.Totals.Tax,
			DeliveryFee: order.Totals.DeliveryFee,
			Total:       order.Totals.Total,
		},
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func toPublicOrderResponse(order *orderdto.PublicOrderOutput) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{Name: item.Name, Quantity: item.Quantity, Subtotal: item.Subtotal})
	}
	return orderResponse{
		ID:      order.ID,
		StoreID: order.StoreID,
		OrderNo: order.OrderNo,
		Type:    string(order.Type),
		Status:  string(order.Status),
		Items:   items,
		Customer: customerResponse{
			Name:  order.Customer.Name,
			Phone: order.Customer.Phone,
		},
		DeliveryAddress: order.DeliveryAddress,
		SpecialRequests: order.SpecialRequests,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   string(order.PaymentStatus),
		Totals: totalsResponse{
			Subtotal:    order.Totals.Subtotal,
			Tax:         order.Totals.Tax,
			DeliveryFee: order.Totals.DeliveryFee,
			Total:       order.Totals.Total,
		},
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

type setStatusRequest struct {
	Status     string `json:"status"`
	Note       string `json:"note"`
	MutationID string `json:"mutationId"`
}

type setStatusResponse struct {
	Success    bool   `json:"success"`
	HistoryID  string `json:"historyId,omitempty"`
	Idempotent bool   `json:"idempotent,omitempty"`
}

type confirmPaymentRequest struct {
	OrderID       string `json:"orderId"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
}

type confirmPaymentResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Result  string `json:"result"`
}

type webhookRequest struct {
	TransactionID string `json:"transactionId"`
	OrderMoniker  string `json:"orderMoniker"`
	Amount        int64  `json:"amount"`
	ResultCode    string `json:"resultCode"`
	Signature     string `json:"signature"`
}

type retryRequest struct {
	FailureIDs []string `json:"failureIds"`
}

type retryResponse struct {
	Success bool `json:"success"`
	Results struct {
		Success int      `json:"success"`
		Failed  int      `json:"failed"`
		Errors  []string `json:"errors"`
	} `json:"results"`
}

type renderTemplateRequest struct {
	StoreID    string `json:"storeId"`
	TemplateID string `json:"templateId"`
	Data       struct {
		MerchantName string `json:"merchantName"`
		OrderNo      string `json:"orderNo"`
		Status       string `json:"status"`
		Note         string `json:"note"`
		OccurredAt   string `json:"occurredAt"`
	} `json:"data"`
}

type renderTemplateResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Channel string `json:"channel"`
	Locale  string `json:"locale"`
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int64           `json:"total"`
}
