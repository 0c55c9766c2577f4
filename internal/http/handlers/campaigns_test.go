package handlers

import (
	"net/http"
	"testing"
	"time"

	"kopugive/internal/domain"
)

func TestCampaignsGetHidesNonActive(t *testing.T) {
	env := newTestEnv(t)
	active := env.seedCampaign(t, domain.CampaignActive)
	draft := env.seedCampaign(t, domain.CampaignDraft)

	rr := env.do(t, http.MethodGet, "/v1/campaigns/"+active.ID, "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("active campaign status: got %d, want 200", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/v1/campaigns/"+draft.ID, "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("draft campaign status: got %d, want 404", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/v1/campaigns/missing", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing campaign status: got %d, want 404", rr.Code)
	}
}

func TestAdminCampaignsCreate(t *testing.T) {
	env := newTestEnv(t)
	start := time.Now().UTC().Format(dateFormat)
	end := time.Now().UTC().AddDate(0, 1, 0).Format(dateFormat)

	body := `{"name":"Orphanage Roof","description":"Replace the leaking roof","target_amount":"12000",` +
		`"start_date":"` + start + `","end_date":"` + end + `","category":"shelter"}`
	rr := env.do(t, http.MethodPost, "/v1/admin/campaigns", "admin-1", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d, want 201: %s", rr.Code, rr.Body.String())
	}
	payload := decodeJSON(t, rr)
	if payload["status"] != "draft" {
		t.Fatalf("status = %v, want draft", payload["status"])
	}
	if payload["current_amount"] != "0" {
		t.Fatalf("current_amount = %v, want 0", payload["current_amount"])
	}
	if payload["created_by"] != "admin-1" {
		t.Fatalf("created_by = %v, want admin-1", payload["created_by"])
	}
}

func TestAdminCampaignsCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad amount", `{"name":"x","description":"y","target_amount":"NaN","start_date":"2026-01-01","end_date":"2026-02-01","category":"z"}`},
		{"bad date", `{"name":"x","description":"y","target_amount":"100","start_date":"January","end_date":"2026-02-01","category":"z"}`},
		{"missing name", `{"description":"y","target_amount":"100","start_date":"2026-01-01","end_date":"2026-02-01","category":"z"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/v1/admin/campaigns", "admin-1", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status: got %d, want 400: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAdminCampaignsCreateRequiresActor(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPost, "/v1/admin/campaigns", "", `{}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d, want 401", rr.Code)
	}
}

func TestAdminCampaignsApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignDraft)

	rr := env.do(t, http.MethodPost, "/v1/admin/campaigns/"+campaign.ID+"/approve", "reviewer-1", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("approve from draft status: got %d, want 409", rr.Code)
	}

	rr = env.do(t, http.MethodPost, "/v1/admin/campaigns/"+campaign.ID+"/submit", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("submit status: got %d, want 200", rr.Code)
	}
	if payload := decodeJSON(t, rr); payload["status"] != "pending_approval" {
		t.Fatalf("status after submit = %v, want pending_approval", payload["status"])
	}

	rr = env.do(t, http.MethodPost, "/v1/admin/campaigns/"+campaign.ID+"/approve", "reviewer-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("approve status: got %d, want 200", rr.Code)
	}
	payload := decodeJSON(t, rr)
	if payload["status"] != "active" {
		t.Fatalf("status after approve = %v, want active", payload["status"])
	}
	if payload["approved_by"] != "reviewer-1" {
		t.Fatalf("approved_by = %v, want reviewer-1", payload["approved_by"])
	}
}

func TestAdminCampaignsRejectNeedsReason(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignPendingApproval)

	rr := env.do(t, http.MethodPost, "/v1/admin/campaigns/"+campaign.ID+"/reject", "reviewer-1", `{"reason":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty reason status: got %d, want 400", rr.Code)
	}

	rr = env.do(t, http.MethodPost, "/v1/admin/campaigns/"+campaign.ID+"/reject", "reviewer-1", `{"reason":"duplicate of another campaign"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("reject status: got %d, want 200", rr.Code)
	}
	payload := decodeJSON(t, rr)
	if payload["status"] != "rejected" {
		t.Fatalf("status = %v, want rejected", payload["status"])
	}
	if payload["rejection_reason"] != "duplicate of another campaign" {
		t.Fatalf("rejection_reason = %v", payload["rejection_reason"])
	}
}

func TestAdminCampaignsStatusOverride(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignDraft)

	rr := env.do(t, http.MethodPost, "/v1/admin/campaigns/"+campaign.ID+"/status", "admin-1", `{"status":"active"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("override status: got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if payload := decodeJSON(t, rr); payload["status"] != "active" {
		t.Fatalf("status = %v, want active", payload["status"])
	}

	rr = env.do(t, http.MethodPost, "/v1/admin/campaigns/"+campaign.ID+"/status", "admin-1", `{"status":"archived"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown status override: got %d, want 400", rr.Code)
	}
}
