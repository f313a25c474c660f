package kafka

// HistoryEvent is the message published when a status transition commits.
// Writing the history row is the "publish"; the notification dispatcher is
// the subscriber (outbox-style trigger).
type HistoryEvent struct {
	HistoryID string `json:"history_id"`
	OrderID   string `json:"order_id"`
	StoreID   string `json:"store_id"`
	Status    string `json:"status"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}
