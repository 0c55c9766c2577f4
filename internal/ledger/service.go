// Package ledger implements the donation ledger core: the donation state
// machine, the campaign lifecycle, and payment reconciliation. All durable
// state lives in a domain.LedgerStore; everything in this package is
// stateless logic over it.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"kopugive/internal/domain"
)

// Service governs donation status transitions and the paired campaign-total
// mutation. It is the only legitimate write path for donation status: admin
// actions and payment reconciliation both route through Verify/Reject here.
type Service struct {
	store    domain.LedgerStore
	activity domain.ActivityLog
	logger   zerolog.Logger
}

func NewService(store domain.LedgerStore, activity domain.ActivityLog, logger zerolog.Logger) *Service {
	return &Service{store: store, activity: activity, logger: logger}
}

// DonationInput carries the caller-supplied fields for a new donation.
type DonationInput struct {
	CampaignID    string
	DonorID       *string
	Amount        decimal.Decimal
	PaymentMethod string
	SessionRef    string
	ReceiptPath   string
}

// CreateDonation validates and persists a new pending donation.
func (s *Service) CreateDonation(ctx context.Context, in DonationInput, actorID string) (*domain.Donation, error) {
	if in.CampaignID == "" {
		return nil, &domain.ValidationError{Field: "campaign_id", Reason: "must not be empty"}
	}
	if !in.Amount.IsPositive() {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	if in.PaymentMethod == "" {
		return nil, &domain.ValidationError{Field: "payment_method", Reason: "must not be empty"}
	}
	if _, err := s.store.GetCampaign(ctx, in.CampaignID); err != nil {
		return nil, fmt.Errorf("resolve campaign %s: %w", in.CampaignID, err)
	}

	donation := &domain.Donation{
		ID:            uuid.NewString(),
		CampaignID:    in.CampaignID,
		DonorID:       in.DonorID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		SessionRef:    in.SessionRef,
		Status:        domain.DonationPending,
		ReceiptPath:   in.ReceiptPath,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateDonation(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	s.record(ctx, actorID, "donation_created", "donation", donation.ID)
	return donation, nil
}

// Verify resolves a pending donation to verified and adds its amount to the
// owning campaign total, as one atomic store operation. A donation that is
// already verified is an idempotent no-op: payment callbacks may be delivered
// more than once and an admin may double-click. A rejected donation fails
// with ErrInvalidTransition. The returned bool reports whether this call
// applied the transition.
func (s *Service) Verify(ctx context.Context, donationID, verifierID string) (*domain.Campaign, bool, error) {
	campaign, applied, err := s.store.ApplyVerification(ctx, donationID, domain.DonationVerified, verifierID)
	if err != nil {
		return nil, false, err
	}
	if applied {
		s.record(ctx, verifierID, "donation_verified", "donation", donationID)
	}
	return campaign, applied, nil
}

// Reject resolves a pending donation to rejected. The campaign total is
// unaffected. A donation that is already rejected is a no-op; a verified
// donation fails with ErrInvalidTransition, since verified donations are
// never retroactively rejected.
func (s *Service) Reject(ctx context.Context, donationID, verifierID string) (*domain.Campaign, bool, error) {
	campaign, applied, err := s.store.ApplyVerification(ctx, donationID, domain.DonationRejected, verifierID)
	if err != nil {
		return nil, false, err
	}
	if applied {
		s.record(ctx, verifierID, "donation_rejected", "donation", donationID)
	}
	return campaign, applied, nil
}

// Donation returns a single donation record.
func (s *Service) Donation(ctx context.Context, id string) (*domain.Donation, error) {
	return s.store.GetDonation(ctx, id)
}

// record writes an activity entry. Failures are logged and swallowed: the
// audit log must never roll back the mutation it describes.
func (s *Service) record(ctx context.Context, actorID, action, entityType, entityID string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, actorID, action, entityType, entityID); err != nil {
		s.logger.Warn().Err(err).
			Str("action", action).
			Str("entity_id", entityID).
			Msg("activity record failed")
	}
}
