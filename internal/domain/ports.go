package domain

import "context"

// PushSender delivers one message to a push registration token.
type PushSender interface {
	Send(ctx context.Context, token, subject, body string) error
}

// ChatSender posts one message to a chat webhook URL.
type ChatSender interface {
	Send(ctx context.Context, webhookURL, text string) error
}

// PaymentGatewayPort approves a transaction at the card/bank gateway.
type PaymentGatewayPort interface {
	Approve(ctx context.Context, transactionID string, amount int64) (*GatewayResult, error)
}
