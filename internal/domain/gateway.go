package domain

import "context"

// PaymentStatus is the gateway's view of a checkout session.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentSession is the narrow slice of gateway state reconciliation needs.
type PaymentSession struct {
	Ref           string
	Status        PaymentStatus
	ExternalTxnID string
}

// PaymentGateway retrieves payment status by external session id. It is the
// only capability consumed from the payment processor.
type PaymentGateway interface {
	LookupSession(ctx context.Context, ref string) (*PaymentSession, error)
}
