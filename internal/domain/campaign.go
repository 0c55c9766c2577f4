package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus enumerates the campaign lifecycle states.
type CampaignStatus string

const (
	CampaignDraft           CampaignStatus = "draft"
	CampaignPendingApproval CampaignStatus = "pending_approval"
	CampaignActive          CampaignStatus = "active"
	CampaignCompleted       CampaignStatus = "completed"
	CampaignClosed          CampaignStatus = "closed"
	CampaignRejected        CampaignStatus = "rejected"
)

// Valid reports whether s is a known campaign status.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignPendingApproval, CampaignActive,
		CampaignCompleted, CampaignClosed, CampaignRejected:
		return true
	}
	return false
}

// Campaign is a fundraising campaign. CurrentAmount is the cached sum of
// verified donation amounts; it is mutated only through
// LedgerStore.ApplyVerification so it never drifts from the donation records.
type Campaign struct {
	ID              string
	Name            string
	Description     string
	TargetAmount    decimal.Decimal
	CurrentAmount   decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
	Category        string
	Status          CampaignStatus
	BannerPath      string
	CreatedBy       string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
