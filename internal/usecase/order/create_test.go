package usecase

import (
	"fmt"
	"testing"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeOrderRepo struct {
	orders    map[string]*domain.Order
	mutations map[string]bool
	histories []domain.OrderHistoryEntry
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    make(map[string]*domain.Order),
		mutations: make(map[string]bool),
	}
}

func (r *fakeOrderRepo) CreateOrder(order *domain.Order) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetOrderByOrderNo(orderNo string) (*domain.Order, error) {
	for _, order := range r.orders {
		if order.OrderNo == orderNo {
			copied := *order
			return &copied, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListStoreOrders(storeID string, page, limit int, filters domain.OrderFilters) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, order := range r.orders {
		if order.StoreID != storeID {
			continue
		}
		if filters.Status != "" && order.Status != filters.Status {
			continue
		}
		copied := *order
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ApplyStatusTransition(orderID string, to domain.OrderStatus, note, actorID, mutationID string) (string, bool, error) {
	if mutationID != "" && r.mutations[mutationID] {
		return "", true, nil
	}
	order, ok := r.orders[orderID]
	if !ok {
		return "", false, domain.ErrOrderNotFound
	}
	if !domain.CanTransition(order.Status, to) {
		return "", false, domain.ErrIllegalTransition
	}
	order.Status = to
	historyID := fmt.Sprintf("hist-%d", len(r.histories)+1)
	r.histories = append(r.histories, domain.OrderHistoryEntry{
		ID:      historyID,
		OrderID: orderID,
		StoreID: order.StoreID,
		Status:  to,
		Note:    note,
		ActorID: actorID,
	})
	if mutationID != "" {
		r.mutations[mutationID] = true
	}
	return historyID, false, nil
}

func (r *fakeOrderRepo) UpdatePayment(orderID string, payment domain.Payment) error {
	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Payment = payment
	return nil
}

type fakePublisher struct {
	published chan domain.Message
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(chan domain.Message, 16)}
}

func (p *fakePublisher) Publish(topic string, msgs ...domain.Message) error {
	for _, m := range msgs {
		p.published <- m
	}
	return nil
}

func validCreateInput() *orderdto.CreateOrderInput {
	return &orderdto.CreateOrderInput{
		StoreID: "store-1",
		Items: []orderdto.OrderItemInput{
			{Name: "후라이드 치킨", Quantity: 1, Subtotal: 10000},
			{Name: "콜라", Quantity: 1, Subtotal: 5000},
		},
		CustomerName:  "김철수",
		CustomerPhone: "010-1234-5678",
		OrderType:     string(domain.TypeDelivery),
		PaymentMethod: "CASH",
	}
}

func newTestOrderUsecase(repo *fakeOrderRepo, onlineEnabled bool) *DefaultOrderUsecase {
	return NewDefaultOrderUsecase(repo, newFakePublisher(), "order-history-events", onlineEnabled, nil)
}

func TestCreateOrderTotals(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newTestOrderUsecase(repo, false)

	order, err := uc.CreateOrder(validCreateInput())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Totals.Subtotal != 15000 {
		t.Errorf("subtotal = %d, want 15000", order.Totals.Subtotal)
	}
	if order.Totals.Tax != 1500 {
		t.Errorf("tax = %d, want 1500", order.Totals.Tax)
	}
	if order.Totals.Total != 16500 {
		t.Errorf("total = %d, want 16500", order.Totals.Total)
	}
	if order.Status != domain.StatusNew {
		t.Errorf("status = %s, want NEW", order.Status)
	}
	if order.Totals.Total != order.Totals.Subtotal+order.Totals.Tax+order.Totals.DeliveryFee {
		t.Error("totals invariant violated")
	}
	if order.ID == "" || order.OrderNo == "" {
		t.Error("expected generated id and order number")
	}
}

func TestCreateOrderDeliveryFee(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newTestOrderUsecase(repo, false)

	input := validCreateInput()
	input.DeliveryFee = 3000
	order, err := uc.CreateOrder(input)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Totals.Total != 15000+1500+3000 {
		t.Errorf("total = %d, want 19500", order.Totals.Total)
	}
}

func TestCreateOrderMasksCustomer(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newTestOrderUsecase(repo, false)

	order, err := uc.CreateOrder(validCreateInput())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.MaskedCustomer.Name != "김*" {
		t.Errorf("masked name = %q, want 김*", order.MaskedCustomer.Name)
	}
	if order.MaskedCustomer.Phone != "010***78" {
		t.Errorf("masked phone = %q, want 010***78", order.MaskedCustomer.Phone)
	}
	if order.Customer.Name != "김철수" {
		t.Errorf("full name = %q, want 김철수", order.Customer.Name)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*orderdto.CreateOrderInput)
	}{
		{"missing store", func(in *orderdto.CreateOrderInput) { in.StoreID = "" }},
		{"empty items", func(in *orderdto.CreateOrderInput) { in.Items = nil }},
		{"missing customer name", func(in *orderdto.CreateOrderInput) { in.CustomerName = "" }},
		{"missing customer phone", func(in *orderdto.CreateOrderInput) { in.CustomerPhone = "" }},
		{"missing order type", func(in *orderdto.CreateOrderInput) { in.OrderType = "" }},
		{"unknown order type", func(in *orderdto.CreateOrderInput) { in.OrderType = "TELEPATHY" }},
		{"missing payment method", func(in *orderdto.CreateOrderInput) { in.PaymentMethod = "" }},
		{"negative delivery fee", func(in *orderdto.CreateOrderInput) { in.DeliveryFee = -1 }},
		{"zero item quantity", func(in *orderdto.CreateOrderInput) { in.Items[0].Quantity = 0 }},
	}

	repo := newFakeOrderRepo()
	uc := newTestOrderUsecase(repo, false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(input)
			_, err := uc.CreateOrder(input)
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("got %v, want InvalidArgument", err)
			}
			if len(repo.orders) != 0 {
				t.Error("validation failure must not persist anything")
			}
		})
	}
}

func TestCreateOrderOnlinePaymentGate(t *testing.T) {
	input := validCreateInput()
	input.PaymentMethod = "CARD"

	uc := newTestOrderUsecase(newFakeOrderRepo(), false)
	_, err := uc.CreateOrder(input)
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("got %v, want FailedPrecondition with online payment disabled", err)
	}

	uc = newTestOrderUsecase(newFakeOrderRepo(), true)
	order, err := uc.CreateOrder(input)
	if err != nil {
		t.Fatalf("CreateOrder with online payment enabled: %v", err)
	}
	if order.Payment.Channel != domain.PaymentChannelOnline {
		t.Errorf("payment channel = %s, want ONLINE", order.Payment.Channel)
	}
}
