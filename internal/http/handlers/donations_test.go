package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"kopugive/internal/domain"
)

func TestDonationsCreate(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignActive)

	body := fmt.Sprintf(`{"campaign_id":%q,"amount":"45.00","payment_method":"bank_transfer"}`, campaign.ID)
	rr := env.do(t, http.MethodPost, "/v1/donations", "", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d, want 201: %s", rr.Code, rr.Body.String())
	}
	payload := decodeJSON(t, rr)
	if payload["status"] != "pending" {
		t.Fatalf("new donation status = %v, want pending", payload["status"])
	}
	if payload["amount"] != "45" {
		t.Fatalf("amount = %v, want 45", payload["amount"])
	}
	if _, ok := payload["donor_id"]; ok {
		t.Fatalf("anonymous donation must not carry donor_id: %v", payload["donor_id"])
	}
}

func TestDonationsCreateBadAmount(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignActive)

	body := fmt.Sprintf(`{"campaign_id":%q,"amount":"lots","payment_method":"stripe"}`, campaign.ID)
	rr := env.do(t, http.MethodPost, "/v1/donations", "", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d, want 400", rr.Code)
	}
}

func TestDonationsCreateInactiveCampaign(t *testing.T) {
	env := newTestEnv(t)
	for _, status := range []domain.CampaignStatus{
		domain.CampaignDraft, domain.CampaignPendingApproval,
		domain.CampaignCompleted, domain.CampaignClosed,
	} {
		t.Run(string(status), func(t *testing.T) {
			campaign := env.seedCampaign(t, status)
			body := fmt.Sprintf(`{"campaign_id":%q,"amount":"10","payment_method":"stripe"}`, campaign.ID)
			rr := env.do(t, http.MethodPost, "/v1/donations", "", body)
			if rr.Code != http.StatusConflict {
				t.Fatalf("unexpected status: got %d, want 409", rr.Code)
			}
			if payload := decodeJSON(t, rr); payload["error"] != "campaign_not_active" {
				t.Fatalf("error code = %v, want campaign_not_active", payload["error"])
			}
		})
	}
}

func TestDonationsCreateUnknownCampaign(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPost, "/v1/donations", "",
		`{"campaign_id":"missing","amount":"10","payment_method":"stripe"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d, want 404", rr.Code)
	}
}

func TestAdminDonationsVerify(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignActive)
	donation := env.seedDonation(t, campaign.ID, "")

	rr := env.do(t, http.MethodPost, "/v1/admin/donations/"+donation.ID+"/verify", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	payload := decodeJSON(t, rr)
	if payload["applied"] != true {
		t.Fatalf("applied = %v, want true", payload["applied"])
	}
	campaignBody, ok := payload["campaign"].(map[string]any)
	if !ok {
		t.Fatalf("missing campaign payload: %v", payload)
	}
	if campaignBody["current_amount"] != "30" {
		t.Fatalf("current_amount = %v, want 30", campaignBody["current_amount"])
	}

	// Double-click: still 200, applied=false, total unchanged.
	rr = env.do(t, http.MethodPost, "/v1/admin/donations/"+donation.ID+"/verify", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("replay status: got %d, want 200", rr.Code)
	}
	payload = decodeJSON(t, rr)
	if payload["applied"] != false {
		t.Fatalf("replay applied = %v, want false", payload["applied"])
	}
	campaignBody = payload["campaign"].(map[string]any)
	if campaignBody["current_amount"] != "30" {
		t.Fatalf("replay current_amount = %v, want 30", campaignBody["current_amount"])
	}
}

func TestAdminDonationsVerifyRequiresActor(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignActive)
	donation := env.seedDonation(t, campaign.ID, "")

	rr := env.do(t, http.MethodPost, "/v1/admin/donations/"+donation.ID+"/verify", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d, want 401", rr.Code)
	}
}

func TestAdminDonationsVerifyUnknown(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPost, "/v1/admin/donations/missing/verify", "admin-1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d, want 404", rr.Code)
	}
}

func TestAdminDonationsRejectAfterVerifyConflicts(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignActive)
	donation := env.seedDonation(t, campaign.ID, "")

	rr := env.do(t, http.MethodPost, "/v1/admin/donations/"+donation.ID+"/verify", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("verify status: got %d, want 200", rr.Code)
	}

	rr = env.do(t, http.MethodPost, "/v1/admin/donations/"+donation.ID+"/reject", "admin-1", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d, want 409", rr.Code)
	}
	if payload := decodeJSON(t, rr); payload["error"] != "invalid_transition" {
		t.Fatalf("error code = %v, want invalid_transition", payload["error"])
	}
}

func TestAdminDonationsListFilters(t *testing.T) {
	env := newTestEnv(t)
	campaign := env.seedCampaign(t, domain.CampaignActive)
	other := env.seedCampaign(t, domain.CampaignActive)
	d1 := env.seedDonation(t, campaign.ID, "")
	env.seedDonation(t, other.ID, "")

	rr := env.do(t, http.MethodPost, "/v1/admin/donations/"+d1.ID+"/verify", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("verify status: got %d, want 200", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/v1/admin/donations?status=verified", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status: got %d, want 200", rr.Code)
	}
	payload := decodeJSON(t, rr)
	items := payload["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("verified items = %d, want 1", len(items))
	}

	rr = env.do(t, http.MethodGet, "/v1/admin/donations?status=bogus", "admin-1", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bogus filter status: got %d, want 400", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/v1/admin/donations?campaign_id="+other.ID, "admin-1", "")
	payload = decodeJSON(t, rr)
	items = payload["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("campaign filter items = %d, want 1", len(items))
	}
}
