package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"kopugive/internal/domain"
)

// ReconcileOutcome classifies the result of one reconciliation attempt.
type ReconcileOutcome string

const (
	// ReconcilePaid means the donation is verified, either by this call or a
	// previous one.
	ReconcilePaid ReconcileOutcome = "paid"
	// ReconcilePending means the gateway has not confirmed payment yet; the
	// caller may retry later, nothing was mutated.
	ReconcilePending ReconcileOutcome = "pending"
	// ReconcileFailed means the gateway reported the payment as failed;
	// nothing was mutated and retrying will not help.
	ReconcileFailed ReconcileOutcome = "failed"
)

// ReconciliationResult reports what a Reconcile call did.
type ReconciliationResult struct {
	Outcome       ReconcileOutcome
	DonationID    string
	CampaignID    string
	ExternalTxnID string
	// Applied is true only when this call performed the pending→verified
	// transition; replayed callbacks see Applied=false with Outcome=paid.
	Applied bool
}

// Reconciler translates an asynchronous payment confirmation (webhook or
// browser redirect) into a single idempotent verify call.
type Reconciler struct {
	gateway domain.PaymentGateway
	service *Service
	store   domain.LedgerStore
	actorID string
	logger  zerolog.Logger
}

// NewReconciler constructs a Reconciler. actorID is the identity recorded on
// gateway-driven verifications.
func NewReconciler(gateway domain.PaymentGateway, service *Service, store domain.LedgerStore, actorID string, logger zerolog.Logger) *Reconciler {
	return &Reconciler{gateway: gateway, service: service, store: store, actorID: actorID, logger: logger}
}

// Reconcile resolves sessionRef against the gateway and, if the payment is
// confirmed, verifies the matching donation. All-or-nothing per invocation:
// either the donation+campaign pair is updated atomically or nothing changes.
// Replays after a successful reconciliation are no-op successes.
func (r *Reconciler) Reconcile(ctx context.Context, sessionRef string) (*ReconciliationResult, error) {
	if sessionRef == "" {
		return nil, &domain.ValidationError{Field: "session_ref", Reason: "must not be empty"}
	}

	session, err := r.gateway.LookupSession(ctx, sessionRef)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("session %s: %w", sessionRef, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lookup session %s: %v", domain.ErrUpstreamUnavailable, sessionRef, err)
	}

	// The donation must already reference this session; anything else is a
	// forged or garbled callback parameter.
	donation, err := r.store.GetDonationBySessionRef(ctx, sessionRef)
	if err != nil {
		return nil, fmt.Errorf("resolve session %s: %w", sessionRef, err)
	}

	switch session.Status {
	case domain.PaymentPending:
		return &ReconciliationResult{
			Outcome:    ReconcilePending,
			DonationID: donation.ID,
			CampaignID: donation.CampaignID,
		}, nil
	case domain.PaymentFailed:
		return &ReconciliationResult{
			Outcome:    ReconcileFailed,
			DonationID: donation.ID,
			CampaignID: donation.CampaignID,
		}, nil
	}

	if session.ExternalTxnID != "" {
		if err := r.store.SetExternalTxn(ctx, donation.ID, session.ExternalTxnID); err != nil {
			r.logger.Error().Err(err).
				Str("donation_id", donation.ID).
				Str("session_ref", sessionRef).
				Msg("external transaction id mismatch")
			return nil, fmt.Errorf("record external txn for donation %s: %w", donation.ID, err)
		}
	}

	_, applied, err := r.service.Verify(ctx, donation.ID, r.actorID)
	if err != nil {
		return nil, err
	}

	return &ReconciliationResult{
		Outcome:       ReconcilePaid,
		DonationID:    donation.ID,
		CampaignID:    donation.CampaignID,
		ExternalTxnID: session.ExternalTxnID,
		Applied:       applied,
	}, nil
}
