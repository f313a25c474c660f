package usecase

import (
	"testing"
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func ownerPrincipal(storeID string) domain.Principal {
	return domain.Principal{UserID: "user-1", StoreID: storeID, Role: domain.RoleOwner}
}

func seedOrder(repo *fakeOrderRepo, storeID string, st domain.OrderStatus) *domain.Order {
	order := &domain.Order{
		ID:      "order-1",
		StoreID: storeID,
		OrderNo: "A1B2C3D4E5",
		Type:    domain.TypeDelivery,
		Status:  st,
	}
	repo.orders[order.ID] = order
	return order
}

func TestSetOrderStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "store-1", domain.StatusNew)
	pub := newFakePublisher()
	uc := NewDefaultOrderUsecase(repo, pub, "order-history-events", false, nil)

	result, err := uc.SetOrderStatus(ownerPrincipal("store-1"), &orderdto.SetStatusInput{
		StoreID: "store-1",
		OrderID: "order-1",
		Status:  "CONFIRMED",
		Note:    "accepted by kitchen",
	})
	if err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}
	if !result.Success || result.Idempotent {
		t.Errorf("result = %+v, want success and not idempotent", result)
	}
	if result.HistoryID == "" {
		t.Error("expected a history id")
	}
	if got := repo.orders["order-1"].Status; got != domain.StatusConfirmed {
		t.Errorf("stored status = %s, want CONFIRMED", got)
	}
	if len(repo.histories) != 1 {
		t.Fatalf("history entries = %d, want 1", len(repo.histories))
	}
	if repo.histories[0].Note != "accepted by kitchen" {
		t.Errorf("history note = %q", repo.histories[0].Note)
	}

	select {
	case msg := <-pub.published:
		if string(msg.Key) != "order-1" {
			t.Errorf("event key = %q, want order-1", msg.Key)
		}
	case <-time.After(time.Second):
		t.Error("expected a history event to be published")
	}
}

func TestSetOrderStatusIllegalTransition(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "store-1", domain.StatusNew)
	uc := newTestOrderUsecase(repo, false)

	_, err := uc.SetOrderStatus(ownerPrincipal("store-1"), &orderdto.SetStatusInput{
		StoreID: "store-1",
		OrderID: "order-1",
		Status:  "FULFILLED",
	})
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("got %v, want FailedPrecondition", err)
	}
	if got := repo.orders["order-1"].Status; got != domain.StatusNew {
		t.Errorf("stored status = %s, illegal transition must not mutate", got)
	}
	if len(repo.histories) != 0 {
		t.Error("illegal transition must not append history")
	}
}

func TestSetOrderStatusIdempotency(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "store-1", domain.StatusNew)
	uc := newTestOrderUsecase(repo, false)

	input := &orderdto.SetStatusInput{
		StoreID:    "store-1",
		OrderID:    "order-1",
		Status:     "CONFIRMED",
		MutationID: "mut-42",
	}
	first, err := uc.SetOrderStatus(ownerPrincipal("store-1"), input)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.Idempotent {
		t.Error("first call must not be idempotent")
	}

	second, err := uc.SetOrderStatus(ownerPrincipal("store-1"), input)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !second.Idempotent {
		t.Error("replayed mutation id must report idempotent")
	}
	if len(repo.histories) != 1 {
		t.Errorf("history entries = %d, replay must not duplicate", len(repo.histories))
	}
}

func TestSetOrderStatusAuthorization(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "store-1", domain.StatusNew)
	uc := newTestOrderUsecase(repo, false)

	_, err := uc.SetOrderStatus(ownerPrincipal("store-2"), &orderdto.SetStatusInput{
		StoreID: "store-1",
		OrderID: "order-1",
		Status:  "CONFIRMED",
	})
	if status.Code(err) != codes.PermissionDenied {
		t.Errorf("got %v, want PermissionDenied", err)
	}
}

func TestSetOrderStatusWrongStore(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "store-1", domain.StatusNew)
	uc := newTestOrderUsecase(repo, false)

	// caller legitimately manages store-2 but the order belongs elsewhere
	_, err := uc.SetOrderStatus(ownerPrincipal("store-2"), &orderdto.SetStatusInput{
		StoreID: "store-2",
		OrderID: "order-1",
		Status:  "CONFIRMED",
	})
	if status.Code(err) != codes.NotFound {
		t.Errorf("got %v, want NotFound for cross-store access", err)
	}
}

func TestSetOrderStatusUnknownStatus(t *testing.T) {
	uc := newTestOrderUsecase(newFakeOrderRepo(), false)

	_, err := uc.SetOrderStatus(ownerPrincipal("store-1"), &orderdto.SetStatusInput{
		StoreID: "store-1",
		OrderID: "order-1",
		Status:  "TELEPORTED",
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestGetPublicOrderMasksPII(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedOrder(repo, "store-1", domain.StatusNew)
	order.Customer = domain.Customer{Name: "김철수", Phone: "01012345678"}
	order.MaskedCustomer = order.Customer.Masked()
	uc := newTestOrderUsecase(repo, false)

	out, err := uc.GetPublicOrder("store-1", "order-1")
	if err != nil {
		t.Fatalf("GetPublicOrder: %v", err)
	}
	if out.Customer.Name != "김*" || out.Customer.Phone != "010***78" {
		t.Errorf("public customer = %+v, want masked", out.Customer)
	}
}

func TestGetPublicOrderWrongStore(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "store-1", domain.StatusNew)
	uc := newTestOrderUsecase(repo, false)

	if _, err := uc.GetPublicOrder("store-2", "order-1"); status.Code(err) != codes.NotFound {
		t.Errorf("got %v, want NotFound", err)
	}
}

func TestListStoreOrdersPermission(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "store-1", domain.StatusNew)
	uc := newTestOrderUsecase(repo, false)

	if _, _, err := uc.ListStoreOrders(ownerPrincipal("store-2"), "store-1", 1, 20, ""); status.Code(err) != codes.PermissionDenied {
		t.Errorf("got %v, want PermissionDenied", err)
	}

	orders, total, err := uc.ListStoreOrders(ownerPrincipal("store-1"), "store-1", 1, 20, "")
	if err != nil {
		t.Fatalf("ListStoreOrders: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Errorf("got %d orders (total %d), want 1", len(orders), total)
	}
}
