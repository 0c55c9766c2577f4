package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kopugive/internal/domain"
)

func newTestStripe(t *testing.T, handler http.HandlerFunc) *Stripe {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewStripe(Options{
		SecretKey:  "sk_test_123",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewStripe: %v", err)
	}
	return client
}

func TestNewStripeRequiresSecretKey(t *testing.T) {
	if _, err := NewStripe(Options{}); !errors.Is(err, ErrMissingSecretKey) {
		t.Fatalf("NewStripe() error = %v, want ErrMissingSecretKey", err)
	}
}

func TestLookupSessionPaid(t *testing.T) {
	client := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_test_1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","status":"complete","payment_status":"paid","payment_intent":"pi_3OqXYZAbCdEfGh12"}`))
	})

	session, err := client.LookupSession(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("LookupSession: %v", err)
	}
	if session.Status != domain.PaymentPaid {
		t.Fatalf("status = %v, want paid", session.Status)
	}
	if session.ExternalTxnID != "STRIPE_YZAbCdEfGh12" {
		// Last 12 characters of the intent, prefixed.
		t.Fatalf("external txn id = %q", session.ExternalTxnID)
	}
}

func TestLookupSessionStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.PaymentStatus
	}{
		{"unpaid open session", `{"id":"cs_1","status":"open","payment_status":"unpaid"}`, domain.PaymentPending},
		{"expired session", `{"id":"cs_1","status":"expired","payment_status":"unpaid"}`, domain.PaymentFailed},
		{"paid", `{"id":"cs_1","status":"complete","payment_status":"paid"}`, domain.PaymentPaid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			session, err := client.LookupSession(context.Background(), "cs_1")
			if err != nil {
				t.Fatalf("LookupSession: %v", err)
			}
			if session.Status != tc.want {
				t.Fatalf("status = %v, want %v", session.Status, tc.want)
			}
		})
	}
}

func TestLookupSessionNotFound(t *testing.T) {
	client := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := client.LookupSession(context.Background(), "cs_missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("LookupSession() error = %v, want ErrNotFound", err)
	}
}

func TestLookupSessionServerError(t *testing.T) {
	client := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.LookupSession(context.Background(), "cs_1")
	if err == nil {
		t.Fatal("LookupSession() expected error")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("server error must not map to ErrNotFound: %v", err)
	}
}

func TestTxnIDFromIntent(t *testing.T) {
	tests := []struct {
		intent string
		want   string
	}{
		{"", ""},
		{"pi_short", "STRIPE_pi_short"},
		{"pi_3OqXYZAbCdEfGh12", "STRIPE_YZAbCdEfGh12"},
	}
	for _, tc := range tests {
		if got := txnIDFromIntent(tc.intent); got != tc.want {
			t.Fatalf("txnIDFromIntent(%q) = %q, want %q", tc.intent, got, tc.want)
		}
	}
}
