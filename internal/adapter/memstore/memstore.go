// Package memstore provides in-memory implementations of the ledger store
// and activity log, used by tests and local development. A single mutex
// around every read-modify-write gives the same per-donation serializability
// the Postgres store gets from row locks.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kopugive/internal/domain"
)

type Store struct {
	mu        sync.RWMutex
	campaigns map[string]*domain.Campaign
	donations map[string]*domain.Donation
	bySession map[string]string // session ref -> donation id
}

func New() *Store {
	return &Store{
		campaigns: make(map[string]*domain.Campaign),
		donations: make(map[string]*domain.Donation),
		bySession: make(map[string]string),
	}
}

func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return cloneCampaign(campaign), nil
}

func (s *Store) ListCampaigns(_ context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.Campaign
	for _, campaign := range s.campaigns {
		if status != "" && campaign.Status != status {
			continue
		}
		items = append(items, *cloneCampaign(campaign))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) GetDonation(_ context.Context, id string) (*domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donation, ok := s.donations[id]
	if !ok {
		return nil, fmt.Errorf("donation %s: %w", id, domain.ErrNotFound)
	}
	return cloneDonation(donation), nil
}

func (s *Store) GetDonationBySessionRef(_ context.Context, ref string) (*domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.bySession[ref]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", ref, domain.ErrNotFound)
	}
	return cloneDonation(s.donations[id]), nil
}

func (s *Store) ListDonations(_ context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.Donation
	for _, donation := range s.donations {
		if filter.Status != "" && donation.Status != filter.Status {
			continue
		}
		if filter.CampaignID != "" && donation.CampaignID != filter.CampaignID {
			continue
		}
		items = append(items, *cloneDonation(donation))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) CreateCampaign(_ context.Context, campaign *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.campaigns[campaign.ID]; exists {
		return fmt.Errorf("campaign %s: %w", campaign.ID, domain.ErrConflict)
	}
	s.campaigns[campaign.ID] = cloneCampaign(campaign)
	return nil
}

func (s *Store) CreateDonation(_ context.Context, donation *domain.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donations[donation.ID]; exists {
		return fmt.Errorf("donation %s: %w", donation.ID, domain.ErrConflict)
	}
	if donation.SessionRef != "" {
		if _, exists := s.bySession[donation.SessionRef]; exists {
			return fmt.Errorf("session %s already referenced: %w", donation.SessionRef, domain.ErrConflict)
		}
	}
	stored := cloneDonation(donation)
	stored.Status = domain.DonationPending
	s.donations[stored.ID] = stored
	if stored.SessionRef != "" {
		s.bySession[stored.SessionRef] = stored.ID
	}
	return nil
}

// ApplyVerification holds the store lock for the whole read-modify-write, so
// the donation status and campaign total always move together.
func (s *Store) ApplyVerification(_ context.Context, donationID string, outcome domain.DonationStatus, verifierID string) (*domain.Campaign, bool, error) {
	if outcome != domain.DonationVerified && outcome != domain.DonationRejected {
		return nil, false, fmt.Errorf("outcome %q: %w", outcome, domain.ErrInvalidTransition)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	donation, ok := s.donations[donationID]
	if !ok {
		return nil, false, fmt.Errorf("donation %s: %w", donationID, domain.ErrNotFound)
	}
	campaign, ok := s.campaigns[donation.CampaignID]
	if !ok {
		return nil, false, fmt.Errorf("campaign %s: %w", donation.CampaignID, domain.ErrNotFound)
	}

	if donation.Status == outcome {
		return cloneCampaign(campaign), false, nil
	}
	if donation.Status.Terminal() {
		return nil, false, fmt.Errorf("donation %s already %s: %w", donationID, donation.Status, domain.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	donation.Status = outcome
	donation.VerifiedBy = &verifierID
	donation.VerifiedAt = &now
	if outcome == domain.DonationVerified {
		campaign.CurrentAmount = campaign.CurrentAmount.Add(donation.Amount)
		campaign.UpdatedAt = now
	}
	return cloneCampaign(campaign), true, nil
}

func (s *Store) SetExternalTxn(_ context.Context, donationID, txnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	donation, ok := s.donations[donationID]
	if !ok {
		return fmt.Errorf("donation %s: %w", donationID, domain.ErrNotFound)
	}
	if donation.ExternalTxnID != "" && donation.ExternalTxnID != txnID {
		return fmt.Errorf("donation %s already has txn %s: %w", donationID, donation.ExternalTxnID, domain.ErrConflict)
	}
	donation.ExternalTxnID = txnID
	return nil
}

func (s *Store) ApproveCampaign(_ context.Context, id, approverID string, at time.Time) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	if campaign.Status != domain.CampaignPendingApproval {
		return nil, fmt.Errorf("campaign %s is %s: %w", id, campaign.Status, domain.ErrInvalidTransition)
	}
	campaign.Status = domain.CampaignActive
	campaign.ApprovedBy = &approverID
	campaign.ApprovedAt = &at
	campaign.RejectionReason = ""
	campaign.UpdatedAt = at
	return cloneCampaign(campaign), nil
}

func (s *Store) RejectCampaign(_ context.Context, id, reason string) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	if campaign.Status != domain.CampaignPendingApproval {
		return nil, fmt.Errorf("campaign %s is %s: %w", id, campaign.Status, domain.ErrInvalidTransition)
	}
	campaign.Status = domain.CampaignRejected
	campaign.RejectionReason = reason
	campaign.ApprovedBy = nil
	campaign.ApprovedAt = nil
	campaign.UpdatedAt = time.Now().UTC()
	return cloneCampaign(campaign), nil
}

func (s *Store) TransitionCampaign(_ context.Context, id string, from []domain.CampaignStatus, to domain.CampaignStatus) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	allowed := false
	for _, status := range from {
		if campaign.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("campaign %s is %s: %w", id, campaign.Status, domain.ErrInvalidTransition)
	}
	campaign.Status = to
	campaign.UpdatedAt = time.Now().UTC()
	return cloneCampaign(campaign), nil
}

func (s *Store) OverrideCampaignStatus(_ context.Context, id string, to domain.CampaignStatus) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	campaign.Status = to
	campaign.UpdatedAt = time.Now().UTC()
	return cloneCampaign(campaign), nil
}

func cloneCampaign(c *domain.Campaign) *domain.Campaign {
	out := *c
	if c.ApprovedBy != nil {
		v := *c.ApprovedBy
		out.ApprovedBy = &v
	}
	if c.ApprovedAt != nil {
		v := *c.ApprovedAt
		out.ApprovedAt = &v
	}
	return &out
}

func cloneDonation(d *domain.Donation) *domain.Donation {
	out := *d
	if d.DonorID != nil {
		v := *d.DonorID
		out.DonorID = &v
	}
	if d.VerifiedBy != nil {
		v := *d.VerifiedBy
		out.VerifiedBy = &v
	}
	if d.VerifiedAt != nil {
		v := *d.VerifiedAt
		out.VerifiedAt = &v
	}
	return &out
}

var _ domain.LedgerStore = (*Store)(nil)

// ActivityLog is an in-memory audit log.
type ActivityLog struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

func (l *ActivityLog) Record(_ context.Context, actorID, action, entityType, entityID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, domain.Activity{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	})
	return nil
}

func (l *ActivityLog) ListRecent(_ context.Context, limit int) ([]domain.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Activity, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

var _ domain.ActivityLog = (*ActivityLog)(nil)
