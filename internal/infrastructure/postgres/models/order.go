package models

import (
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
)

type OrderModel struct {
	ID              string             `gorm:"primaryKey;type:uuid"`
	StoreID         string             `gorm:"index:idx_store_created,priority:1;not null"`
	OrderNo         string             `gorm:"uniqueIndex:idx_order_no;not null"`
	Type            string             `gorm:"not null"`
	Status          domain.OrderStatus `gorm:"index;not null"`
	ItemsJSON       string             `gorm:"type:jsonb;not null"`
	CustomerName    string
	CustomerPhone   string
	MaskedName      string
	MaskedPhone     string
	DeliveryAddress string
	SpecialRequests string

	PaymentEnabled  bool
	PaymentMethod   string
	PaymentChannel  string
	PaymentStatus   domain.PaymentStatus
	TransactionID   string `gorm:"index"`
	PaymentAmount   int64
	GatewayResponse string `gorm:"type:jsonb;default:'{}'"`

	Subtotal    int64
	Tax         int64
	DeliveryFee int64
	Total       int64

	CreatedAt time.Time `gorm:"index:idx_store_created,priority:2"`
	UpdatedAt time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderHistoryModel struct {
	ID        string             `gorm:"primaryKey;type:uuid"`
	OrderID   string             `gorm:"index;not null"`
	StoreID   string             `gorm:"not null"`
	Status    domain.OrderStatus `gorm:"not null"`
	Note      string
	ActorID   string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (OrderHistoryModel) TableName() string {
	return "order_history"
}

// MutationModel is keyed by the caller-supplied idempotency token; the
// primary key is the put-if-absent primitive the status machine relies on.
type MutationModel struct {
	ID        string    `gorm:"primaryKey"`
	OrderID   string    `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (MutationModel) TableName() string {
	return "order_mutations"
}

type StoreModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Name        string `gorm:"not null"`
	OwnerUserID string `gorm:"index"`
}

func (StoreModel) TableName() string {
	return "stores"
}
