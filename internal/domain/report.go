package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportSummary aggregates ledger-wide counters for the admin dashboard.
type ReportSummary struct {
	CampaignsByStatus map[CampaignStatus]int
	DonationsByStatus map[DonationStatus]int
	TotalRaised       decimal.Decimal
	TotalDonors       int
}

// MonthlyTotal is the verified donation volume for one calendar month.
type MonthlyTotal struct {
	Month string // YYYY-MM
	Count int
	Total decimal.Decimal
}

// CampaignRanking ranks a campaign by verified amount raised.
type CampaignRanking struct {
	CampaignID    string
	Name          string
	DonationCount int
	TotalRaised   decimal.Decimal
	TargetAmount  decimal.Decimal
}

// DonorRanking ranks an identified donor by verified amount given.
type DonorRanking struct {
	DonorID       string
	DonationCount int
	TotalDonated  decimal.Decimal
}

// CampaignSummary is a donor-facing campaign card: the campaign plus totals
// recomputed from the donation records.
type CampaignSummary struct {
	Campaign
	TotalRaised   decimal.Decimal
	DonationCount int
}

// ReportStore is the read-only aggregation view over the ledger. Everything
// here is derived from the campaign and donation tables at query time; no
// result is cached in-process.
type ReportStore interface {
	Summary(ctx context.Context) (*ReportSummary, error)
	MonthlyTotals(ctx context.Context, limit int) ([]MonthlyTotal, error)
	TopCampaigns(ctx context.Context, limit int) ([]CampaignRanking, error)
	TopDonors(ctx context.Context, limit int) ([]DonorRanking, error)
	BrowseActive(ctx context.Context, search, category string) ([]CampaignSummary, error)
}
