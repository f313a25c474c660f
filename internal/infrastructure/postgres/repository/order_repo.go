package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(order *domain.Order) error {
	model, err := toOrderModel(order)
	if err != nil {
		return err
	}
	if err := r.DB.Create(model).Error; err != nil {
		return err
	}
	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.First(&model, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return toDomainOrder(&model)
}

func (r *DefaultOrderRepository) GetOrderByOrderNo(orderNo string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.First(&model, "order_no = ?", orderNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return toDomainOrder(&model)
}

func (r *DefaultOrderRepository) ListStoreOrders(storeID string, page, limit int, filters domain.OrderFilters) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.DB.Model(&models.OrderModel{}).Where("store_id = ?", storeID)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.OrderModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, 0, len(orderModels))
	for i := range orderModels {
		order, err := toDomainOrder(&orderModels[i])
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, total, nil
}

// ApplyStatusTransition applies the (status update, history insert,
// mutation insert) triple atomically. The current status is re-read under
// FOR UPDATE so concurrent transitions on one order serialize here.
func (r *DefaultOrderRepository) ApplyStatusTransition(orderID string, to domain.OrderStatus, note, actorID, mutationID string) (string, bool, error) {
	var historyID string
	var idempotent bool

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if mutationID != "" {
			var existing models.MutationModel
			err := tx.First(&existing, "id = ?", mutationID).Error
			if err == nil {
				idempotent = true
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var current models.OrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		if !domain.CanTransition(current.Status, to) {
			return domain.ErrIllegalTransition
		}

		if err := tx.Model(&models.OrderModel{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{"status": to, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		history := models.OrderHistoryModel{
			ID:      uuid.New().String(),
			OrderID: orderID,
			StoreID: current.StoreID,
			Status:  to,
			Note:    note,
			ActorID: actorID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		historyID = history.ID

		if mutationID != "" {
			mutation := models.MutationModel{
				ID:      mutationID,
				OrderID: orderID,
			}
			if err := tx.Create(&mutation).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return historyID, idempotent, nil
}

func (r *DefaultOrderRepository) UpdatePayment(orderID string, payment domain.Payment) error {
	result := r.DB.Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status":   payment.Status,
			"transaction_id":   payment.TransactionID,
			"payment_amount":   payment.Amount,
			"gateway_response": payment.GatewayResponse,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func toOrderModel(order *domain.Order) (*models.OrderModel, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, err
	}
	gatewayResponse := order.Payment.GatewayResponse
	if gatewayResponse == "" {
		gatewayResponse = "{}"
	}
	return &models.OrderModel{
		ID:              order.ID,
		StoreID:         order.StoreID,
		OrderNo:         order.OrderNo,
		Type:            string(order.Type),
		Status:          order.Status,
		ItemsJSON:       string(itemsJSON),
		CustomerName:    order.Customer.Name,
		CustomerPhone:   order.Customer.Phone,
		MaskedName:      order.MaskedCustomer.Name,
		MaskedPhone:     order.MaskedCustomer.Phone,
		DeliveryAddress: order.DeliveryAddress,
		SpecialRequests: order.SpecialRequests,
		PaymentEnabled:  order.Payment.Enabled,
		PaymentMethod:   order.Payment.Method,
		PaymentChannel:  string(order.Payment.Channel),
		PaymentStatus:   order.Payment.Status,
		TransactionID:   order.Payment.TransactionID,
		PaymentAmount:   order.Payment.Amount,
		GatewayResponse: gatewayResponse,
		Subtotal:        order.Totals.Subtotal,
		Tax:             order.Totals.Tax,
		DeliveryFee:     order.Totals.DeliveryFee,
		Total:           order.Totals.Total,
	}, nil
}

func toDomainOrder(model *models.OrderModel) (*domain.Order, error) {
	var items []domain.OrderItem
	if model.ItemsJSON != "" {
		if err := json.Unmarshal([]byte(model.ItemsJSON), &items); err != nil {
			return nil, err
		}
	}
	return &domain.Order{
		ID:      model.ID,
		StoreID: model.StoreID,
		OrderNo: model.OrderNo,
		Type:    domain.OrderType(model.Type),
		Status:  model.Status,
		Items:   items,
		Customer: domain.Customer{
			Name:  model.CustomerName,
			Phone: model.CustomerPhone,
		},
		MaskedCustomer: domain.Customer{
			Name:  model.MaskedName,
			Phone: model.MaskedPhone,
		},
		DeliveryAddress: model.DeliveryAddress,
		SpecialRequests: model.SpecialRequests,
		Payment: domain.Payment{
			Enabled:         model.PaymentEnabled,
			Method:          model.PaymentMethod,
			Channel:         domain.PaymentChannel(model.PaymentChannel),
			Status:          model.PaymentStatus,
			TransactionID:   model.TransactionID,
			Amount:          model.PaymentAmount,
			GatewayResponse: model.GatewayResponse,
		},
		Totals: domain.Totals{
			Subtotal:    model.Subtotal,
			Tax:         model.Tax,
			DeliveryFee: model.DeliveryFee,
			Total:       model.Total,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
