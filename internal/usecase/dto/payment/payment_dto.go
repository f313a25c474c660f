package paymentdto

type ConfirmInput struct {
	OrderID       string
	Amount        int64
	TransactionID string
}

type ConfirmResult struct {
	Success bool
	OrderID string
	Status  string
	Result  string
}

type WebhookInput struct {
	TransactionID string
	OrderMoniker  string
	Amount        int64
	ResultCode    string
	Signature     string
}
