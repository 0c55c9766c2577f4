package domain

import (
	"context"
	"time"
)

// LedgerStore is the single source of truth for campaigns and donations.
//
// ApplyVerification is the only operation allowed to change a donation status
// or a campaign CurrentAmount, and it must apply both as one atomic unit: a
// concurrent reader never observes a verified donation without the campaign
// total reflecting it, or vice versa. It must also be serializable per
// donation id so two concurrent resolutions of the same donation cannot both
// apply their side effects.
type LedgerStore interface {
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context, status CampaignStatus) ([]Campaign, error)

	GetDonation(ctx context.Context, id string) (*Donation, error)
	GetDonationBySessionRef(ctx context.Context, ref string) (*Donation, error)
	ListDonations(ctx context.Context, filter DonationFilter) ([]Donation, error)

	CreateCampaign(ctx context.Context, campaign *Campaign) error
	// CreateDonation persists a new pending donation. A duplicate session ref
	// fails with ErrConflict.
	CreateDonation(ctx context.Context, donation *Donation) error

	// ApplyVerification resolves a pending donation to outcome (verified or
	// rejected) and, for verified, adds its amount to the owning campaign's
	// CurrentAmount. A donation already resolved to the requested outcome is
	// an idempotent no-op (applied=false, no error); resolved to the opposite
	// outcome fails with ErrInvalidTransition. Returns the owning campaign as
	// of the commit.
	ApplyVerification(ctx context.Context, donationID string, outcome DonationStatus, verifierID string) (campaign *Campaign, applied bool, err error)

	// SetExternalTxn records the external transaction id on a donation.
	// Set-once: a second call with the same value is a no-op, a different
	// value fails with ErrConflict.
	SetExternalTxn(ctx context.Context, donationID, txnID string) error

	// ApproveCampaign moves a campaign from pending_approval to active,
	// recording the approver and clearing any prior rejection reason.
	// Fails with ErrInvalidTransition from any other state.
	ApproveCampaign(ctx context.Context, id, approverID string, at time.Time) (*Campaign, error)
	// RejectCampaign moves a campaign from pending_approval to rejected,
	// recording the reason and clearing the approver fields.
	RejectCampaign(ctx context.Context, id, reason string) (*Campaign, error)
	// TransitionCampaign moves a campaign to status to, provided its current
	// status is one of from. Fails with ErrInvalidTransition otherwise.
	TransitionCampaign(ctx context.Context, id string, from []CampaignStatus, to CampaignStatus) (*Campaign, error)
	// OverrideCampaignStatus forces a campaign into status to regardless of
	// its current state. Used by the admin quick-status action; bypasses
	// approval semantics.
	OverrideCampaignStatus(ctx context.Context, id string, to CampaignStatus) (*Campaign, error)
}

// ActivityLog records audit entries for ledger mutations. Record is
// fire-and-forget from the caller's perspective: a failure here must never
// roll back the mutation it describes.
type ActivityLog interface {
	Record(ctx context.Context, actorID, action, entityType, entityID string) error
	ListRecent(ctx context.Context, limit int) ([]Activity, error)
}
