package domain

type PaymentStatus string

const (
	PaymentNotPaid   PaymentStatus = "NOT_PAID"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	// PaymentTampered marks a confirmation whose claimed amount disagreed
	// with the server-side total. Alerting treats it separately from FAILED.
	PaymentTampered PaymentStatus = "AMOUNT_TAMPERED"
)

type PaymentChannel string

const (
	PaymentChannelOnline  PaymentChannel = "ONLINE"
	PaymentChannelOffline PaymentChannel = "OFFLINE"
)

// Online payment methods require the global online-payment capability flag.
var onlineMethods = map[string]bool{
	"CARD":          true,
	"BANK_TRANSFER": true,
	"KAKAOPAY":      true,
	"TOSS":          true,
}

func IsOnlineMethod(method string) bool {
	return onlineMethods[method]
}

type Payment struct {
	Enabled         bool
	Method          string
	Channel         PaymentChannel
	Status          PaymentStatus
	TransactionID   string
	Amount          int64
	GatewayResponse string
}

// GatewayResult is what the payment gateway returns for an approval call.
type GatewayResult struct {
	Approved   bool
	ResultCode string
	RawPayload string
}
