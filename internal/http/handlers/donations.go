package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"kopugive/internal/domain"
	"kopugive/internal/ledger"
	"kopugive/internal/middleware"
)

type donationRequest struct {
	CampaignID    string  `json:"campaign_id"`
	DonorID       *string `json:"donor_id"`
	Amount        string  `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	SessionRef    string  `json:"session_ref"`
	ReceiptPath   string  `json:"receipt_path"`
}

// DonationsCreate records a new pending donation. Donors may be anonymous,
// so no actor identity is required; when present it is used as the audit
// actor.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be a decimal number")
		return
	}

	// Donations are only accepted against active campaigns at this surface.
	// The ledger itself does not enforce this; see the lifecycle docs.
	campaign, err := a.Store.GetCampaign(r.Context(), req.CampaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.Status != domain.CampaignActive {
		a.error(w, http.StatusConflict, "campaign_not_active", "campaign is not accepting donations")
		return
	}

	actorID := middleware.ActorFromContext(r.Context())
	if actorID == "" {
		actorID = "donor"
	}
	donation, err := a.Ledger.CreateDonation(r.Context(), ledger.DonationInput{
		CampaignID:    req.CampaignID,
		DonorID:       req.DonorID,
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		SessionRef:    req.SessionRef,
		ReceiptPath:   req.ReceiptPath,
	}, actorID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, donationPayload(donation))
}

func (a *App) AdminDonationsList(w http.ResponseWriter, r *http.Request) {
	status := domain.DonationStatus(r.URL.Query().Get("status"))
	if status != "" && status != domain.DonationPending && !status.Terminal() {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown status filter")
		return
	}
	donations, err := a.Store.ListDonations(r.Context(), domain.DonationFilter{
		Status:     status,
		CampaignID: r.URL.Query().Get("campaign_id"),
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(donations))
	for i := range donations {
		items = append(items, donationPayload(&donations[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// AdminDonationsVerify marks a donation verified and bumps the campaign
// total. Safe to replay: a second click reports ok without a second
// increment.
func (a *App) AdminDonationsVerify(w http.ResponseWriter, r *http.Request) {
	actorID, ok := a.requireActor(w, r)
	if !ok {
		return
	}
	donationID := chi.URLParam(r, "id")
	campaign, applied, err := a.Ledger.Verify(r.Context(), donationID, actorID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"donation_id": donationID,
		"applied":     applied,
		"campaign":    campaignPayload(campaign),
	})
}

func (a *App) AdminDonationsReject(w http.ResponseWriter, r *http.Request) {
	actorID, ok := a.requireActor(w, r)
	if !ok {
		return
	}
	donationID := chi.URLParam(r, "id")
	campaign, applied, err := a.Ledger.Reject(r.Context(), donationID, actorID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"donation_id": donationID,
		"applied":     applied,
		"campaign":    campaignPayload(campaign),
	})
}
