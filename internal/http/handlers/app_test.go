package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"kopugive/internal/adapter/memstore"
	"kopugive/internal/domain"
	"kopugive/internal/ledger"
	"kopugive/internal/middleware"
)

// testEnv wires the handlers against the in-memory store with the same route
// shapes the real router uses.
type testEnv struct {
	app      *App
	store    *memstore.Store
	svc      *ledger.Service
	lc       *ledger.Lifecycle
	gateway  *stubGateway
	handler  http.Handler
	activity *memstore.ActivityLog
}

type stubGateway struct {
	sessions map[string]*domain.PaymentSession
	err      error
}

func (g *stubGateway) LookupSession(_ context.Context, ref string) (*domain.PaymentSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	session, ok := g.sessions[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	activity := memstore.NewActivityLog()
	logger := zerolog.Nop()
	svc := ledger.NewService(store, activity, logger)
	lc := ledger.NewLifecycle(store, activity, logger)
	gw := &stubGateway{sessions: make(map[string]*domain.PaymentSession)}
	rec := ledger.NewReconciler(gw, svc, store, "payment-gateway", logger)

	app := &App{
		Ledger:     svc,
		Campaigns:  lc,
		Reconciler: rec,
		Store:      store,
		Activity:   activity,
		Logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Actor)
	r.Use(middleware.I18N("en"))
	r.Get("/v1/campaigns/{id}", app.CampaignsGet)
	r.Post("/v1/donations", app.DonationsCreate)
	r.Get("/v1/payments/success", app.PaymentsSuccess)
	r.Post("/v1/payments/webhook", app.PaymentsWebhook)
	r.Post("/v1/admin/campaigns", app.AdminCampaignsCreate)
	r.Post("/v1/admin/campaigns/{id}/submit", app.AdminCampaignsSubmit)
	r.Post("/v1/admin/campaigns/{id}/approve", app.AdminCampaignsApprove)
	r.Post("/v1/admin/campaigns/{id}/reject", app.AdminCampaignsReject)
	r.Post("/v1/admin/campaigns/{id}/status", app.AdminCampaignsStatus)
	r.Get("/v1/admin/donations", app.AdminDonationsList)
	r.Post("/v1/admin/donations/{id}/verify", app.AdminDonationsVerify)
	r.Post("/v1/admin/donations/{id}/reject", app.AdminDonationsReject)

	return &testEnv{app: app, store: store, svc: svc, lc: lc, gateway: gw, handler: r, activity: activity}
}

func (e *testEnv) seedCampaign(t *testing.T, status domain.CampaignStatus) *domain.Campaign {
	t.Helper()
	now := time.Now().UTC()
	campaign := &domain.Campaign{
		ID:            uuid.NewString(),
		Name:          "Clean Water",
		Description:   "Wells for three villages",
		TargetAmount:  decimal.RequireFromString("8000"),
		CurrentAmount: decimal.Zero,
		StartDate:     now,
		EndDate:       now.AddDate(0, 3, 0),
		Category:      "infrastructure",
		Status:        status,
		CreatedBy:     "admin-1",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.store.CreateCampaign(context.Background(), campaign); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return campaign
}

func (e *testEnv) seedDonation(t *testing.T, campaignID, sessionRef string) *domain.Donation {
	t.Helper()
	donation, err := e.svc.CreateDonation(context.Background(), ledger.DonationInput{
		CampaignID:    campaignID,
		Amount:        decimal.RequireFromString("30"),
		PaymentMethod: "stripe",
		SessionRef:    sessionRef,
	}, "donor")
	if err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return donation
}

func (e *testEnv) do(t *testing.T, method, target, actorID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, jsonBody(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func jsonBody(body string) *strings.Reader {
	return strings.NewReader(body)
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
