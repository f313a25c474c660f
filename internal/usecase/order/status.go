package usecase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/kafka"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var settableStatuses = map[domain.OrderStatus]bool{
	domain.StatusConfirmed: true,
	domain.StatusPreparing: true,
	domain.StatusReady:     true,
	domain.StatusFulfilled: true,
	domain.StatusCancelled: true,
}

// SetOrderStatus drives one transition through the state machine. The
// status update, history entry and mutation record commit atomically; the
// history event is published after commit and never blocks the caller.
func (uc *DefaultOrderUsecase) SetOrderStatus(principal domain.Principal, input *orderdto.SetStatusInput) (*orderdto.SetStatusResult, error) {
	if input.StoreID == "" || input.OrderID == "" {
		return nil, status.Error(codes.InvalidArgument, "storeId and orderId are required")
	}
	newStatus := domain.OrderStatus(input.Status)
	if !settableStatuses[newStatus] {
		return nil, status.Errorf(codes.InvalidArgument, "unknown status %q", input.Status)
	}

	// authorization precedes the transaction
	if !principal.CanManageStore(input.StoreID) {
		return nil, status.Error(codes.PermissionDenied, "caller is not bound to this store")
	}

	order, err := uc.OrderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, status.Error(codes.NotFound, "order not found")
		}
		return nil, status.Errorf(codes.Internal, "failed to load order: %v", err)
	}
	if order.StoreID != input.StoreID {
		return nil, status.Error(codes.NotFound, "order not found")
	}

	historyID, idempotent, err := uc.OrderRepo.ApplyStatusTransition(
		input.OrderID, newStatus, input.Note, principal.UserID, input.MutationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIllegalTransition):
			return nil, status.Errorf(codes.FailedPrecondition, "cannot transition %s -> %s", order.Status, newStatus)
		case errors.Is(err, domain.ErrOrderNotFound):
			return nil, status.Error(codes.NotFound, "order not found")
		default:
			return nil, status.Errorf(codes.Internal, "failed to apply transition: %v", err)
		}
	}

	if idempotent {
		return &orderdto.SetStatusResult{Success: true, Idempotent: true}, nil
	}

	if uc.Metrics != nil {
		uc.Metrics.StatusTransitionTotal.WithLabelValues(string(newStatus)).Inc()
	}
	uc.publishHistoryEvent(kafka.HistoryEvent{
		HistoryID: historyID,
		OrderID:   order.ID,
		StoreID:   order.StoreID,
		Status:    string(newStatus),
		Note:      input.Note,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return &orderdto.SetStatusResult{Success: true, HistoryID: historyID}, nil
}

func (uc *DefaultOrderUsecase) publishHistoryEvent(event kafka.HistoryEvent) {
	go func() {
		value, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal history event", "order_id", event.OrderID, "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(uc.HistoryTopic, domain.Message{
			Key:   []byte(event.OrderID),
			Value: value,
		}); err != nil {
			slog.Error("failed to publish history event", "order_id", event.OrderID, "error", err.Error())
		}
	}()
}
