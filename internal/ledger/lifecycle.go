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

// Lifecycle governs campaign status transitions. It is independent of
// donation verification: a campaign's status never blocks the ledger from
// verifying a donation against it.
type Lifecycle struct {
	store    domain.LedgerStore
	activity domain.ActivityLog
	logger   zerolog.Logger
}

func NewLifecycle(store domain.LedgerStore, activity domain.ActivityLog, logger zerolog.Logger) *Lifecycle {
	return &Lifecycle{store: store, activity: activity, logger: logger}
}

// CampaignInput carries the caller-supplied fields for a new campaign.
type CampaignInput struct {
	Name         string
	Description  string
	TargetAmount decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	Category     string
	BannerPath   string
	Status       domain.CampaignStatus // initial status; empty means draft
}

// Create validates and persists a new campaign. All validation happens
// before any persistence: a rejected input writes nothing.
func (l *Lifecycle) Create(ctx context.Context, in CampaignInput, creatorID string) (*domain.Campaign, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Description == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if !in.TargetAmount.IsPositive() {
		return nil, &domain.ValidationError{Field: "target_amount", Reason: "must be greater than 0"}
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, &domain.ValidationError{Field: "end_date", Reason: "must not be before start date"}
	}
	if in.Category == "" {
		return nil, &domain.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	status := in.Status
	if status == "" {
		status = domain.CampaignDraft
	}
	if status != domain.CampaignDraft && status != domain.CampaignPendingApproval {
		return nil, &domain.ValidationError{Field: "status", Reason: "new campaigns start as draft or pending_approval"}
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: decimal.Zero,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Category:      in.Category,
		Status:        status,
		BannerPath:    in.BannerPath,
		CreatedBy:     creatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.store.CreateCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	l.record(ctx, creatorID, "campaign_created", campaign.ID)
	return campaign, nil
}

// Submit moves a draft campaign into the approval queue.
func (l *Lifecycle) Submit(ctx context.Context, id, actorID string) (*domain.Campaign, error) {
	campaign, err := l.store.TransitionCampaign(ctx, id,
		[]domain.CampaignStatus{domain.CampaignDraft}, domain.CampaignPendingApproval)
	if err != nil {
		return nil, err
	}
	l.record(ctx, actorID, "campaign_submitted", id)
	return campaign, nil
}

// Approve activates a campaign awaiting approval, recording the approver and
// clearing any prior rejection reason. Legal only from pending_approval.
func (l *Lifecycle) Approve(ctx context.Context, id, approverID string) (*domain.Campaign, error) {
	campaign, err := l.store.ApproveCampaign(ctx, id, approverID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	l.record(ctx, approverID, "campaign_approved", id)
	return campaign, nil
}

// Reject declines a campaign awaiting approval. A non-empty reason is
// required; the approver fields are cleared.
func (l *Lifecycle) Reject(ctx context.Context, id, actorID, reason string) (*domain.Campaign, error) {
	if reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	campaign, err := l.store.RejectCampaign(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	l.record(ctx, actorID, "campaign_rejected", id)
	return campaign, nil
}

// Complete marks an active campaign as completed.
func (l *Lifecycle) Complete(ctx context.Context, id, actorID string) (*domain.Campaign, error) {
	campaign, err := l.store.TransitionCampaign(ctx, id,
		[]domain.CampaignStatus{domain.CampaignActive}, domain.CampaignCompleted)
	if err != nil {
		return nil, err
	}
	l.record(ctx, actorID, "campaign_completed", id)
	return campaign, nil
}

// Close marks an active campaign as closed.
func (l *Lifecycle) Close(ctx context.Context, id, actorID string) (*domain.Campaign, error) {
	campaign, err := l.store.TransitionCampaign(ctx, id,
		[]domain.CampaignStatus{domain.CampaignActive}, domain.CampaignClosed)
	if err != nil {
		return nil, err
	}
	l.record(ctx, actorID, "campaign_closed", id)
	return campaign, nil
}

// OverrideStatus forces a campaign into an arbitrary status, bypassing
// approval semantics. This backs the admin quick-status action; funding level
// is deliberately not checked.
func (l *Lifecycle) OverrideStatus(ctx context.Context, id, actorID string, status domain.CampaignStatus) (*domain.Campaign, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	campaign, err := l.store.OverrideCampaignStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	l.record(ctx, actorID, "campaign_status_overridden", id)
	return campaign, nil
}

// Campaign returns a single campaign record.
func (l *Lifecycle) Campaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return l.store.GetCampaign(ctx, id)
}

func (l *Lifecycle) record(ctx context.Context, actorID, action, campaignID string) {
	if l.activity == nil {
		return
	}
	if err := l.activity.Record(ctx, actorID, action, "campaign", campaignID); err != nil {
		l.logger.Warn().Err(err).
			Str("action", action).
			Str("entity_id", campaignID).
			Msg("activity record failed")
	}
}
