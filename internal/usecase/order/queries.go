package usecase

import (
	"errors"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (uc *DefaultOrderUsecase) GetPublicOrder(storeID, orderID string) (*orderdto.PublicOrderOutput, error) {
	if storeID == "" || orderID == "" {
		return nil, status.Error(codes.InvalidArgument, "storeId and orderId are required")
	}

	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, status.Error(codes.NotFound, "order not found")
		}
		return nil, status.Errorf(codes.Internal, "failed to load order: %v", err)
	}
	if order.StoreID != storeID {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	return orderdto.ToPublicOrder(order), nil
}

func (uc *DefaultOrderUsecase) ListStoreOrders(principal domain.Principal, storeID string, page, limit int, statusFilter string) ([]*orderdto.PublicOrderOutput, int64, error) {
	if storeID == "" {
		return nil, 0, status.Error(codes.InvalidArgument, "storeId is required")
	}
	if !principal.CanManageStore(storeID) {
		return nil, 0, status.Error(codes.PermissionDenied, "caller is not bound to this store")
	}

	orders, total, err := uc.OrderRepo.ListStoreOrders(storeID, page, limit, domain.OrderFilters{
		Status: domain.OrderStatus(statusFilter),
	})
	if err != nil {
		return nil, 0, status.Errorf(codes.Internal, "failed to list orders: %v", err)
	}

	outputs := make([]*orderdto.PublicOrderOutput, 0, len(orders))
	for _, order := range orders {
		outputs = append(outputs, orderdto.ToPublicOrder(order))
	}
	return outputs, total, nil
}
