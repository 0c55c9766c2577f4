// Package repo implements the domain repositories on PostgreSQL via pgx.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kopugive/internal/domain"
	"kopugive/internal/infra"
	"kopugive/internal/sqlinline"
)

const uniqueViolation = "23505"

// LedgerRepositoryPG implements domain.LedgerStore using PostgreSQL. It owns
// the pool rather than an executor because ApplyVerification needs a real
// transaction with a row lock.
type LedgerRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new ledger repo.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepositoryPG {
	return &LedgerRepositoryPG{pool: pool}
}

func (r *LedgerRepositoryPG) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := scanCampaign(r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QSelectCampaign), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return campaign, err
}

func (r *LedgerRepositoryPG) ListCampaigns(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, infra.SQLText(sqlinline.QListCampaigns), string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *campaign)
	}
	return items, rows.Err()
}

func (r *LedgerRepositoryPG) GetDonation(ctx context.Context, id string) (*domain.Donation, error) {
	donation, err := scanDonation(r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QSelectDonation), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("donation %s: %w", id, domain.ErrNotFound)
	}
	return donation, err
}

func (r *LedgerRepositoryPG) GetDonationBySessionRef(ctx context.Context, ref string) (*domain.Donation, error) {
	donation, err := scanDonation(r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QSelectDonationBySession), ref))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", ref, domain.ErrNotFound)
	}
	return donation, err
}

func (r *LedgerRepositoryPG) ListDonations(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, infra.SQLText(sqlinline.QListDonations), string(filter.Status), filter.CampaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *donation)
	}
	return items, rows.Err()
}

func (r *LedgerRepositoryPG) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, infra.SQLText(sqlinline.QInsertCampaign),
		campaign.ID, campaign.Name, campaign.Description, campaign.TargetAmount.String(),
		campaign.StartDate, campaign.EndDate, campaign.Category, string(campaign.Status),
		campaign.BannerPath, campaign.CreatedBy)
	if isUniqueViolation(err) {
		return fmt.Errorf("campaign %s: %w", campaign.ID, domain.ErrConflict)
	}
	return err
}

func (r *LedgerRepositoryPG) CreateDonation(ctx context.Context, donation *domain.Donation) error {
	_, err := r.pool.Exec(ctx, infra.SQLText(sqlinline.QInsertDonation),
		donation.ID, donation.CampaignID, donation.DonorID, donation.Amount.String(),
		donation.PaymentMethod, donation.SessionRef, donation.ReceiptPath)
	if isUniqueViolation(err) {
		return fmt.Errorf("donation %s: %w", donation.ID, domain.ErrConflict)
	}
	return err
}

// ApplyVerification runs the read-check-write on the donation+campaign pair
// inside one transaction. The SELECT ... FOR UPDATE on the donation row
// serializes concurrent resolutions of the same donation; the campaign total
// only ever moves in the same commit that flips the donation status.
func (r *LedgerRepositoryPG) ApplyVerification(ctx context.Context, donationID string, outcome domain.DonationStatus, verifierID string) (*domain.Campaign, bool, error) {
	if outcome != domain.DonationVerified && outcome != domain.DonationRejected {
		return nil, false, fmt.Errorf("outcome %q: %w", outcome, domain.ErrInvalidTransition)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var status, campaignID, amountText string
	err = tx.QueryRow(ctx, infra.SQLText(sqlinline.QSelectDonationForUpdate), donationID).
		Scan(&status, &campaignID, &amountText)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("donation %s: %w", donationID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, false, fmt.Errorf("lock donation %s: %w", donationID, err)
	}

	current := domain.DonationStatus(status)
	if current == outcome {
		// Replayed resolution: report success without touching anything.
		campaign, err := scanCampaign(tx.QueryRow(ctx, infra.SQLText(sqlinline.QSelectCampaign), campaignID))
		if err != nil {
			return nil, false, err
		}
		return campaign, false, tx.Commit(ctx)
	}
	if current != domain.DonationPending {
		return nil, false, fmt.Errorf("donation %s already %s: %w", donationID, current, domain.ErrInvalidTransition)
	}

	if _, err := tx.Exec(ctx, infra.SQLText(sqlinline.QResolveDonation),
		donationID, string(outcome), verifierID, time.Now().UTC()); err != nil {
		return nil, false, fmt.Errorf("resolve donation %s: %w", donationID, err)
	}
	if outcome == domain.DonationVerified {
		if _, err := tx.Exec(ctx, infra.SQLText(sqlinline.QAddToCampaignTotal), campaignID, amountText); err != nil {
			return nil, false, fmt.Errorf("update campaign %s total: %w", campaignID, err)
		}
	}

	campaign, err := scanCampaign(tx.QueryRow(ctx, infra.SQLText(sqlinline.QSelectCampaign), campaignID))
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit verification of %s: %w", donationID, err)
	}
	return campaign, true, nil
}

func (r *LedgerRepositoryPG) SetExternalTxn(ctx context.Context, donationID, txnID string) error {
	tag, err := r.pool.Exec(ctx, infra.SQLText(sqlinline.QSetExternalTxn), donationID, txnID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var existing string
	err = r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QSelectExternalTxn), donationID).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("donation %s: %w", donationID, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("donation %s already has txn %s: %w", donationID, existing, domain.ErrConflict)
}

func (r *LedgerRepositoryPG) ApproveCampaign(ctx context.Context, id, approverID string, at time.Time) (*domain.Campaign, error) {
	campaign, err := scanCampaign(r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QApproveCampaign), id, approverID, at))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionFailure(ctx, id)
	}
	return campaign, err
}

func (r *LedgerRepositoryPG) RejectCampaign(ctx context.Context, id, reason string) (*domain.Campaign, error) {
	campaign, err := scanCampaign(r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QRejectCampaign), id, reason))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionFailure(ctx, id)
	}
	return campaign, err
}

func (r *LedgerRepositoryPG) TransitionCampaign(ctx context.Context, id string, from []domain.CampaignStatus, to domain.CampaignStatus) (*domain.Campaign, error) {
	states := make([]string, len(from))
	for i, status := range from {
		states[i] = string(status)
	}
	campaign, err := scanCampaign(r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QTransitionCampaign), id, string(to), states))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionFailure(ctx, id)
	}
	return campaign, err
}

func (r *LedgerRepositoryPG) OverrideCampaignStatus(ctx context.Context, id string, to domain.CampaignStatus) (*domain.Campaign, error) {
	campaign, err := scanCampaign(r.pool.QueryRow(ctx, infra.SQLText(sqlinline.QOverrideCampaignStatus), id, string(to)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return campaign, err
}

// transitionFailure decides whether a zero-row conditional update means a
// missing campaign or a state-machine violation.
func (r *LedgerRepositoryPG) transitionFailure(ctx context.Context, id string) error {
	campaign, err := r.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("campaign %s is %s: %w", id, campaign.Status, domain.ErrInvalidTransition)
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c                       domain.Campaign
		targetText, currentText string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Description, &targetText, &currentText,
		&c.StartDate, &c.EndDate, &c.Category, &c.Status, &c.BannerPath, &c.CreatedBy,
		&c.ApprovedBy, &c.ApprovedAt, &c.RejectionReason, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.TargetAmount, err = decimal.NewFromString(targetText); err != nil {
		return nil, fmt.Errorf("parse target amount: %w", err)
	}
	if c.CurrentAmount, err = decimal.NewFromString(currentText); err != nil {
		return nil, fmt.Errorf("parse current amount: %w", err)
	}
	return &c, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var (
		d          domain.Donation
		amountText string
	)
	err := row.Scan(&d.ID, &d.CampaignID, &d.DonorID, &amountText, &d.PaymentMethod,
		&d.SessionRef, &d.ExternalTxnID, &d.Status, &d.VerifiedBy, &d.VerifiedAt,
		&d.ReceiptPath, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if d.Amount, err = decimal.NewFromString(amountText); err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	return &d, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ domain.LedgerStore = (*LedgerRepositoryPG)(nil)
