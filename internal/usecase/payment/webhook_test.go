package usecase

import (
	"context"
	"testing"

	"github.com/maru-commerce/maru-order-service/internal/domain"
	paymentdto "github.com/maru-commerce/maru-order-service/internal/usecase/dto/payment"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func webhookInput(secret string, amount int64, resultCode string) *paymentdto.WebhookInput {
	return &paymentdto.WebhookInput{
		TransactionID: "txn-1",
		OrderMoniker:  "A1B2C3D4E5",
		Amount:        amount,
		ResultCode:    resultCode,
		Signature:     signPayload(secret, "txn-1", "merchant-1", amount),
	}
}

func TestHandleWebhookSuccess(t *testing.T) {
	repo := newFakeOrderRepo(onlineOrder())
	uc := NewDefaultPaymentUsecase(repo, &fakeGateway{}, "merchant-1", "secret", nil)

	if err := uc.HandleWebhook(context.Background(), webhookInput("secret", 16500, "0000")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	stored := repo.orders["order-1"].Payment
	if stored.Status != domain.PaymentCompleted {
		t.Errorf("payment status = %s, want COMPLETED", stored.Status)
	}
	if stored.TransactionID != "txn-1" {
		t.Errorf("transaction id = %q", stored.TransactionID)
	}
}

func TestHandleWebhookFailureCode(t *testing.T) {
	repo := newFakeOrderRepo(onlineOrder())
	uc := NewDefaultPaymentUsecase(repo, &fakeGateway{}, "merchant-1", "secret", nil)

	if err := uc.HandleWebhook(context.Background(), webhookInput("secret", 16500, "4042")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if got := repo.orders["order-1"].Payment.Status; got != domain.PaymentFailed {
		t.Errorf("payment status = %s, want FAILED", got)
	}
}

func TestHandleWebhookBadSignature(t *testing.T) {
	repo := newFakeOrderRepo(onlineOrder())
	uc := NewDefaultPaymentUsecase(repo, &fakeGateway{}, "merchant-1", "secret", nil)

	input := webhookInput("wrong-secret", 16500, "0000")
	err := uc.HandleWebhook(context.Background(), input)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("got %v, want InvalidArgument", err)
	}
	if got := repo.orders["order-1"].Payment.Status; got != domain.PaymentNotPaid {
		t.Errorf("payment status = %s, mis-signed webhook must not mutate", got)
	}
}

func TestHandleWebhookTamperedAmount(t *testing.T) {
	repo := newFakeOrderRepo(onlineOrder())
	uc := NewDefaultPaymentUsecase(repo, &fakeGateway{}, "merchant-1", "secret", nil)

	// a valid signature over a different amount still fails verification
	// against the original payload fields
	input := webhookInput("secret", 16500, "0000")
	input.Amount = 100
	err := uc.HandleWebhook(context.Background(), input)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("got %v, want InvalidArgument", err)
	}
}

func TestHandleWebhookUnknownOrder(t *testing.T) {
	uc := NewDefaultPaymentUsecase(newFakeOrderRepo(), &fakeGateway{}, "merchant-1", "secret", nil)

	input := webhookInput("secret", 16500, "0000")
	input.OrderMoniker = "NOPE"
	if err := uc.HandleWebhook(context.Background(), input); status.Code(err) != codes.NotFound {
		t.Errorf("got %v, want NotFound", err)
	}
}

func TestSignPayloadStable(t *testing.T) {
	a := signPayload("secret", "txn-1", "merchant-1", 16500)
	b := signPayload("secret", "txn-1", "merchant-1", 16500)
	if a != b {
		t.Error("signature must be deterministic")
	}
	if a == signPayload("secret", "txn-1", "merchant-1", 16501) {
		t.Error("signature must depend on the amount")
	}
	if a == signPayload("other", "txn-1", "merchant-1", 16500) {
		t.Error("signature must depend on the secret")
	}
}
