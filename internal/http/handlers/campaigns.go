package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"kopugive/internal/domain"
	"kopugive/internal/ledger"
	"kopugive/internal/middleware"
)

type campaignRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Category     string `json:"category"`
	BannerPath   string `json:"banner_path"`
	Status       string `json:"status"`
}

// CampaignsBrowse is the donor-facing listing: active campaigns only, with
// totals recomputed from the donation records.
func (a *App) CampaignsBrowse(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	summaries, err := a.Reports.BrowseActive(r.Context(), search, category)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(summaries))
	for i := range summaries {
		payload := campaignPayload(&summaries[i].Campaign)
		payload["total_raised"] = summaries[i].TotalRaised.String()
		payload["donation_count"] = summaries[i].DonationCount
		items = append(items, payload)
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// CampaignsGet is the donor-facing detail view. Non-active campaigns are not
// browsable by donors, so they read as absent here.
func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Store.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.Status != domain.CampaignActive {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}
	a.json(w, http.StatusOK, campaignPayload(campaign))
}

func (a *App) AdminCampaignsCreate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := a.requireActor(w, r)
	if !ok {
		return
	}
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	input, err := campaignInputFromRequest(req)
	if err != nil {
		a.domainError(w, err)
		return
	}
	campaign, err := a.Campaigns.Create(r.Context(), input, actorID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, campaignPayload(campaign))
}

func (a *App) AdminCampaignsList(w http.ResponseWriter, r *http.Request) {
	status := domain.CampaignStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown status filter")
		return
	}
	campaigns, err := a.Store.ListCampaigns(r.Context(), status)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, campaignPayload(&campaigns[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// AdminCampaignsGet returns the campaign with its donations and stats
// recomputed from the donation records, so an admin can eyeball the cached
// total against the derived one.
func (a *App) AdminCampaignsGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := a.Store.GetCampaign(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	donations, err := a.Store.ListDonations(r.Context(), domain.DonationFilter{CampaignID: id})
	if err != nil {
		a.domainError(w, err)
		return
	}
	totalRaised := decimal.Zero
	for i := range donations {
		if donations[i].Status == domain.DonationVerified {
			totalRaised = totalRaised.Add(donations[i].Amount)
		}
	}
	items := make([]map[string]any, 0, len(donations))
	for i := range donations {
		items = append(items, donationPayload(&donations[i]))
	}
	payload := campaignPayload(campaign)
	payload["donations"] = items
	payload["donation_count"] = len(donations)
	payload["total_raised"] = totalRaised.String()
	a.json(w, http.StatusOK, payload)
}

func (a *App) AdminCampaignsSubmit(w http.ResponseWriter, r *http.Request) {
	a.campaignTransition(w, r, a.Campaigns.Submit)
}

func (a *App) AdminCampaignsApprove(w http.ResponseWriter, r *http.Request) {
	a.campaignTransition(w, r, a.Campaigns.Approve)
}

func (a *App) AdminCampaignsComplete(w http.ResponseWriter, r *http.Request) {
	a.campaignTransition(w, r, a.Campaigns.Complete)
}

func (a *App) AdminCampaignsClose(w http.ResponseWriter, r *http.Request) {
	a.campaignTransition(w, r, a.Campaigns.Close)
}

func (a *App) AdminCampaignsReject(w http.ResponseWriter, r *http.Request) {
	actorID, ok := a.requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	campaign, err := a.Campaigns.Reject(r.Context(), chi.URLParam(r, "id"), actorID, req.Reason)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, campaignPayload(campaign))
}

// AdminCampaignsStatus is the quick-status action: force any status,
// bypassing approval semantics.
func (a *App) AdminCampaignsStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := a.requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	campaign, err := a.Campaigns.OverrideStatus(r.Context(), chi.URLParam(r, "id"), actorID, domain.CampaignStatus(req.Status))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, campaignPayload(campaign))
}

func (a *App) campaignTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, actorID string) (*domain.Campaign, error)) {
	actorID, ok := a.requireActor(w, r)
	if !ok {
		return
	}
	campaign, err := fn(r.Context(), chi.URLParam(r, "id"), actorID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, campaignPayload(campaign))
}

func (a *App) requireActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := middleware.ActorFromContext(r.Context())
	if actorID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "actor identity required")
		return "", false
	}
	return actorID, true
}

func campaignInputFromRequest(req campaignRequest) (ledger.CampaignInput, error) {
	var input ledger.CampaignInput
	amount, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return input, &domain.ValidationError{Field: "target_amount", Reason: "must be a decimal number"}
	}
	start, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		return input, &domain.ValidationError{Field: "start_date", Reason: "must be YYYY-MM-DD"}
	}
	end, err := time.Parse(dateFormat, req.EndDate)
	if err != nil {
		return input, &domain.ValidationError{Field: "end_date", Reason: "must be YYYY-MM-DD"}
	}
	input = ledger.CampaignInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: amount,
		StartDate:    start,
		EndDate:      end,
		Category:     req.Category,
		BannerPath:   req.BannerPath,
		Status:       domain.CampaignStatus(req.Status),
	}
	return input, nil
}
