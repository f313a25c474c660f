package domain

import "time"

// OrderHistoryEntry is append-only. One entry per status transition;
// its creation is the trigger event for notification dispatch.
type OrderHistoryEntry struct {
	ID        string
	OrderID   string
	StoreID   string
	Status    OrderStatus
	Note      string
	ActorID   string
	CreatedAt time.Time
}

// MutationRecord is the idempotency ledger: existence means the mutation
// identified by ID has already been applied. Created once, never updated.
type MutationRecord struct {
	ID        string
	OrderID   string
	CreatedAt time.Time
}
