package handlers

import (
	"time"

	"kopugive/internal/domain"
)

const dateFormat = "2006-01-02"

func campaignPayload(c *domain.Campaign) map[string]any {
	payload := map[string]any{
		"id":             c.ID,
		"name":           c.Name,
		"description":    c.Description,
		"target_amount":  c.TargetAmount.String(),
		"current_amount": c.CurrentAmount.String(),
		"start_date":     c.StartDate.Format(dateFormat),
		"end_date":       c.EndDate.Format(dateFormat),
		"category":       c.Category,
		"status":         c.Status,
		"banner_path":    c.BannerPath,
		"created_by":     c.CreatedBy,
		"created_at":     c.CreatedAt,
		"updated_at":     c.UpdatedAt,
	}
	if c.ApprovedBy != nil {
		payload["approved_by"] = *c.ApprovedBy
	}
	if c.ApprovedAt != nil {
		payload["approved_at"] = c.ApprovedAt.Format(time.RFC3339)
	}
	if c.RejectionReason != "" {
		payload["rejection_reason"] = c.RejectionReason
	}
	return payload
}

func donationPayload(d *domain.Donation) map[string]any {
	payload := map[string]any{
		"id":             d.ID,
		"campaign_id":    d.CampaignID,
		"amount":         d.Amount.String(),
		"payment_method": d.PaymentMethod,
		"status":         d.Status,
		"receipt_path":   d.ReceiptPath,
		"created_at":     d.CreatedAt,
	}
	if d.DonorID != nil {
		payload["donor_id"] = *d.DonorID
	}
	if d.SessionRef != "" {
		payload["session_ref"] = d.SessionRef
	}
	if d.ExternalTxnID != "" {
		payload["external_txn_id"] = d.ExternalTxnID
	}
	if d.VerifiedBy != nil {
		payload["verified_by"] = *d.VerifiedBy
	}
	if d.VerifiedAt != nil {
		payload["verified_at"] = d.VerifiedAt.Format(time.RFC3339)
	}
	return payload
}
