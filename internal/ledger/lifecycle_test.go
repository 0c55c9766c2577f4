package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"kopugive/internal/adapter/memstore"
	"kopugive/internal/domain"
)

func newTestLifecycle(t *testing.T) (*Lifecycle, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return NewLifecycle(store, memstore.NewActivityLog(), zerolog.Nop()), store
}

func validCampaignInput() CampaignInput {
	now := time.Now().UTC()
	return CampaignInput{
		Name:         "School Library",
		Description:  "Books for the new library",
		TargetAmount: decimal.RequireFromString("2500"),
		StartDate:    now,
		EndDate:      now.AddDate(0, 2, 0),
		Category:     "education",
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	lc, store := newTestLifecycle(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *CampaignInput)
	}{
		{"missing name", func(in *CampaignInput) { in.Name = "" }},
		{"missing description", func(in *CampaignInput) { in.Description = "" }},
		{"zero target", func(in *CampaignInput) { in.TargetAmount = decimal.Zero }},
		{"end before start", func(in *CampaignInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }},
		{"missing category", func(in *CampaignInput) { in.Category = "" }},
		{"active as initial status", func(in *CampaignInput) { in.Status = domain.CampaignActive }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validCampaignInput()
			tc.mutate(&in)
			_, err := lc.Create(ctx, in, "admin-1")
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// Rejected inputs persist nothing.
	campaigns, err := store.ListCampaigns(ctx, "")
	require.NoError(t, err)
	require.Empty(t, campaigns)
}

func TestCreateCampaignDefaultsToDraft(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	campaign, err := lc.Create(context.Background(), validCampaignInput(), "admin-1")
	require.NoError(t, err)
	require.Equal(t, domain.CampaignDraft, campaign.Status)
	require.True(t, campaign.CurrentAmount.IsZero())
	require.Equal(t, "admin-1", campaign.CreatedBy)
}

func TestSubmitApproveFlow(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	campaign, err := lc.Create(ctx, validCampaignInput(), "admin-1")
	require.NoError(t, err)

	campaign, err = lc.Submit(ctx, campaign.ID, "admin-1")
	require.NoError(t, err)
	require.Equal(t, domain.CampaignPendingApproval, campaign.Status)

	campaign, err = lc.Approve(ctx, campaign.ID, "reviewer-1")
	require.NoError(t, err)
	require.Equal(t, domain.CampaignActive, campaign.Status)
	require.NotNil(t, campaign.ApprovedBy)
	require.Equal(t, "reviewer-1", *campaign.ApprovedBy)
	require.NotNil(t, campaign.ApprovedAt)
	require.Empty(t, campaign.RejectionReason)
}

func TestApproveRequiresPendingApproval(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	campaign, err := lc.Create(ctx, validCampaignInput(), "admin-1")
	require.NoError(t, err)

	_, err = lc.Approve(ctx, campaign.ID, "reviewer-1")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRejectRequiresReason(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	campaign, err := lc.Create(ctx, validCampaignInput(), "admin-1")
	require.NoError(t, err)
	_, err = lc.Submit(ctx, campaign.ID, "admin-1")
	require.NoError(t, err)

	_, err = lc.Reject(ctx, campaign.ID, "reviewer-1", "")
	require.ErrorIs(t, err, domain.ErrValidation)

	campaign, err = lc.Reject(ctx, campaign.ID, "reviewer-1", "target amount unrealistic")
	require.NoError(t, err)
	require.Equal(t, domain.CampaignRejected, campaign.Status)
	require.Equal(t, "target amount unrealistic", campaign.RejectionReason)
	require.Nil(t, campaign.ApprovedBy)
}

func TestCompleteAndCloseRequireActive(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	campaign, err := lc.Create(ctx, validCampaignInput(), "admin-1")
	require.NoError(t, err)

	_, err = lc.Complete(ctx, campaign.ID, "admin-1")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = lc.Close(ctx, campaign.ID, "admin-1")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = lc.Submit(ctx, campaign.ID, "admin-1")
	require.NoError(t, err)
	_, err = lc.Approve(ctx, campaign.ID, "reviewer-1")
	require.NoError(t, err)

	campaign, err = lc.Complete(ctx, campaign.ID, "admin-1")
	require.NoError(t, err)
	require.Equal(t, domain.CampaignCompleted, campaign.Status)

	// Completed is terminal for the normal flow.
	_, err = lc.Close(ctx, campaign.ID, "admin-1")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOverrideStatusBypassesApproval(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	campaign, err := lc.Create(ctx, validCampaignInput(), "admin-1")
	require.NoError(t, err)

	// Draft straight to active, no approval step.
	campaign, err = lc.OverrideStatus(ctx, campaign.ID, "admin-1", domain.CampaignActive)
	require.NoError(t, err)
	require.Equal(t, domain.CampaignActive, campaign.Status)
	require.Nil(t, campaign.ApprovedBy)

	// Any valid status goes, including backwards.
	campaign, err = lc.OverrideStatus(ctx, campaign.ID, "admin-1", domain.CampaignDraft)
	require.NoError(t, err)
	require.Equal(t, domain.CampaignDraft, campaign.Status)

	_, err = lc.OverrideStatus(ctx, campaign.ID, "admin-1", "archived")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestLifecycleUnknownCampaign(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	_, err := lc.Submit(ctx, "missing", "admin-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = lc.Approve(ctx, "missing", "admin-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = lc.Reject(ctx, "missing", "admin-1", "reason")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = lc.OverrideStatus(ctx, "missing", "admin-1", domain.CampaignClosed)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
