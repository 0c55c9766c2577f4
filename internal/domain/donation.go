package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationStatus enumerates the donation states. Pending is the only initial
// state; verified and rejected are terminal.
type DonationStatus string

const (
	DonationPending  DonationStatus = "pending"
	DonationVerified DonationStatus = "verified"
	DonationRejected DonationStatus = "rejected"
)

// Terminal reports whether the status admits no further transition.
func (s DonationStatus) Terminal() bool {
	return s == DonationVerified || s == DonationRejected
}

// Donation represents a supporter contribution against a campaign.
//
// Amount is immutable after creation. SessionRef is the external checkout
// session id when the donation was initiated through the payment gateway;
// it is unique across donations when present. ExternalTxnID is set exactly
// once during reconciliation.
type Donation struct {
	ID            string
	CampaignID    string
	DonorID       *string // nil for anonymous donations
	Amount        decimal.Decimal
	PaymentMethod string
	SessionRef    string
	ExternalTxnID string
	Status        DonationStatus
	VerifiedBy    *string
	VerifiedAt    *time.Time
	ReceiptPath   string
	CreatedAt     time.Time
}

// DonationFilter narrows donation listings. Zero values mean "no filter".
type DonationFilter struct {
	Status     DonationStatus
	CampaignID string
}
