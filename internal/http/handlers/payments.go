package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"kopugive/internal/domain"
	"kopugive/internal/ledger"
	"kopugive/internal/middleware"
)

var thankYouByLocale = map[string]string{
	"en": "Thank you! Your donation has been processed successfully.",
	"ms": "Terima kasih! Sumbangan anda telah berjaya diproses.",
}

var processingByLocale = map[string]string{
	"en": "Payment is being processed. Please check your donation status later.",
	"ms": "Pembayaran sedang diproses. Sila semak status sumbangan anda kemudian.",
}

func localized(messages map[string]string, locale string) string {
	if msg, ok := messages[locale]; ok {
		return msg
	}
	return messages["en"]
}

// PaymentsSuccess handles the browser redirect from the payment gateway.
// Reloading the success URL replays the reconciliation, which is a no-op
// after the first confirmation.
func (a *App) PaymentsSuccess(w http.ResponseWriter, r *http.Request) {
	sessionRef := r.URL.Query().Get("session_id")
	a.reconcile(w, r, sessionRef)
}

type webhookEvent struct {
	SessionID string `json:"session_id"`
	Data      struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// PaymentsWebhook handles asynchronous gateway delivery. The gateway retries
// on non-2xx, so transient upstream failures answer 202 to let redelivery be
// the recovery path.
func (a *App) PaymentsWebhook(w http.ResponseWriter, r *http.Request) {
	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	sessionRef := event.SessionID
	if sessionRef == "" {
		sessionRef = event.Data.Object.ID
	}
	a.reconcile(w, r, sessionRef)
}

func (a *App) reconcile(w http.ResponseWriter, r *http.Request, sessionRef string) {
	locale := middleware.LocaleFromContext(r.Context())
	result, err := a.Reconciler.Reconcile(r.Context(), sessionRef)
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		// Not reconciled yet; the gateway will redeliver.
		a.json(w, http.StatusAccepted, map[string]any{
			"outcome": ledger.ReconcilePending,
			"message": localized(processingByLocale, locale),
		})
		return
	}
	if err != nil {
		a.domainError(w, err)
		return
	}

	payload := map[string]any{
		"outcome":     result.Outcome,
		"donation_id": result.DonationID,
		"campaign_id": result.CampaignID,
		"applied":     result.Applied,
	}
	switch result.Outcome {
	case ledger.ReconcilePaid:
		payload["message"] = localized(thankYouByLocale, locale)
		if result.ExternalTxnID != "" {
			payload["external_txn_id"] = result.ExternalTxnID
		}
		a.json(w, http.StatusOK, payload)
	case ledger.ReconcileFailed:
		payload["message"] = "Payment failed. No donation has been recorded as verified."
		a.json(w, http.StatusOK, payload)
	default:
		payload["message"] = localized(processingByLocale, locale)
		a.json(w, http.StatusAccepted, payload)
	}
}
