package usecase

import (
	"math"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/maru-commerce/maru-order-service/internal/domain"
	orderdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/order"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// taxRate is the fixed Korean VAT rate applied server-side; the
// client-submitted amount is never trusted past creation.
const taxRate = 0.10

// order numbers skip lookalike characters so staff can read them aloud
const orderNoAlphabet = "0123456789ABCDEFGHJKMNPQRSTUVWXYZ"

func (uc *DefaultOrderUsecase) CreateOrder(input *orderdto.CreateOrderInput) (*domain.Order, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	if domain.IsOnlineMethod(input.PaymentMethod) && !uc.OnlinePaymentEnabled {
		return nil, status.Error(codes.FailedPrecondition, "online payment is disabled; use an offline method")
	}

	var subtotal int64
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		subtotal += item.Subtotal
		items = append(items, domain.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
		})
	}
	tax := int64(math.Round(float64(subtotal) * taxRate))
	total := subtotal + tax + input.DeliveryFee

	orderNoGen, err := nanoid.CustomASCII(orderNoAlphabet, 10)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to init order number generator")
	}

	channel := domain.PaymentChannelOffline
	if domain.IsOnlineMethod(input.PaymentMethod) {
		channel = domain.PaymentChannelOnline
	}

	customer := domain.Customer{
		Name:  input.CustomerName,
		Phone: input.CustomerPhone,
	}
	order := &domain.Order{
		ID:              uuid.New().String(),
		StoreID:         input.StoreID,
		OrderNo:         orderNoGen(),
		Type:            domain.OrderType(input.OrderType),
		Status:          domain.StatusNew,
		Items:           items,
		Customer:        customer,
		MaskedCustomer:  customer.Masked(),
		DeliveryAddress: input.DeliveryAddress,
		SpecialRequests: input.SpecialRequests,
		Payment: domain.Payment{
			Enabled: true,
			Method:  input.PaymentMethod,
			Channel: channel,
			Status:  domain.PaymentNotPaid,
			Amount:  total,
		},
		Totals: domain.Totals{
			Subtotal:    subtotal,
			Tax:         tax,
			DeliveryFee: input.DeliveryFee,
			Total:       total,
		},
	}

	if err := uc.OrderRepo.CreateOrder(order); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to persist order: %v", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.OrdersCreatedTotal.WithLabelValues(order.StoreID, string(order.Type)).Inc()
		uc.Metrics.OrdersCreatedAmount.WithLabelValues(order.StoreID).Add(float64(total))
	}

	// No notification fires at creation; the first dispatch happens on the
	// first status transition.
	return order, nil
}

func validateCreateInput(input *orderdto.CreateOrderInput) error {
	switch {
	case input.StoreID == "":
		return status.Error(codes.InvalidArgument, "storeId is required")
	case len(input.Items) == 0:
		return status.Error(codes.InvalidArgument, "at least one order item is required")
	case input.CustomerName == "" || input.CustomerPhone == "":
		return status.Error(codes.InvalidArgument, "customer name and phone are required")
	case input.OrderType == "":
		return status.Error(codes.InvalidArgument, "orderType is required")
	case input.PaymentMethod == "":
		return status.Error(codes.InvalidArgument, "paymentMethod is required")
	case input.OrderType != string(domain.TypeDelivery) && input.OrderType != string(domain.TypePickup):
		return status.Errorf(codes.InvalidArgument, "unknown orderType %q", input.OrderType)
	case input.DeliveryFee < 0:
		return status.Error(codes.InvalidArgument, "deliveryFee must not be negative")
	}
	for _, item := range input.Items {
		if item.Subtotal < 0 || item.Quantity <= 0 {
			return status.Error(codes.InvalidArgument, "order items need a positive quantity and a non-negative subtotal")
		}
	}
	return nil
}
