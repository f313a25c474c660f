package domain

type OrderRepository interface {
	CreateOrder(order *Order) error
	GetOrderByID(orderID string) (*Order, error)
	// GetOrderByOrderNo resolves the human-readable moniker the payment
	// gateway reports back. Backed by a secondary index on order_no.
	GetOrderByOrderNo(orderNo string) (*Order, error)
	ListStoreOrders(storeID string, page, limit int, filters OrderFilters) ([]*Order, int64, error)

	// ApplyStatusTransition performs the status update, the history insert
	// and the mutation-record insert as one transaction. A pre-existing
	// mutation record short-circuits with idempotent=true and no writes.
	ApplyStatusTransition(orderID string, to OrderStatus, note, actorID, mutationID string) (historyID string, idempotent bool, err error)

	UpdatePayment(orderID string, payment Payment) error
}

type Store struct {
	ID          string
	Name        string
	OwnerUserID string
}

type StoreRepository interface {
	GetStore(storeID string) (*Store, error)
}
