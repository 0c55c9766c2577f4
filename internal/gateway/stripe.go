// Package gateway implements the payment-gateway capability consumed by
// reconciliation: retrieving a checkout session's payment status by its
// external session id.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"kopugive/internal/domain"
)

// ErrMissingSecretKey indicates that the client was configured without credentials.
var ErrMissingSecretKey = errors.New("stripe: secret key is required")

const (
	defaultBaseURL = "https://api.stripe.com"
	defaultTimeout = 15 * time.Second
)

// Options configures the Stripe checkout-session client.
type Options struct {
	SecretKey      string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
}

// Stripe performs HTTP calls to the Stripe checkout sessions API. Only the
// session-retrieval endpoint is used; everything else about the gateway stays
// outside this service.
type Stripe struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewStripe constructs a Stripe client from options.
func NewStripe(opts Options) (*Stripe, error) {
	if opts.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Stripe{
		secretKey:  opts.SecretKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

type checkoutSession struct {
	ID            string `json:"id"`
	Status        string `json:"status"`         // open | complete | expired
	PaymentStatus string `json:"payment_status"` // paid | unpaid | no_payment_required
	PaymentIntent string `json:"payment_intent"`
}

// LookupSession retrieves the checkout session ref and maps it to the narrow
// payment-status view reconciliation consumes. An unknown session id maps to
// domain.ErrNotFound; transport and server failures surface as plain errors
// so the caller can treat them as retryable.
func (s *Stripe) LookupSession(ctx context.Context, ref string) (*domain.PaymentSession, error) {
	url := fmt.Sprintf("%s/v1/checkout/sessions/%s", s.baseURL, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("stripe: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("stripe: session %s: %w", ref, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Error().Int("status", resp.StatusCode).Str("session_ref", ref).Msg("stripe session lookup failed")
		return nil, fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	var session checkoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("stripe: decode session: %w", err)
	}

	return &domain.PaymentSession{
		Ref:           session.ID,
		Status:        mapPaymentStatus(session),
		ExternalTxnID: txnIDFromIntent(session.PaymentIntent),
	}, nil
}

func mapPaymentStatus(session checkoutSession) domain.PaymentStatus {
	if session.PaymentStatus == "paid" {
		return domain.PaymentPaid
	}
	if session.Status == "expired" {
		return domain.PaymentFailed
	}
	return domain.PaymentPending
}

// txnIDFromIntent derives the ledger's external transaction id from a payment
// intent id, keeping the last 12 characters for readability on receipts.
func txnIDFromIntent(intent string) string {
	if intent == "" {
		return ""
	}
	suffix := intent
	if len(suffix) > 12 {
		suffix = suffix[len(suffix)-12:]
	}
	return "STRIPE_" + suffix
}

var _ domain.PaymentGateway = (*Stripe)(nil)
