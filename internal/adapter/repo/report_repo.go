package repo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"kopugive/internal/domain"
	"kopugive/internal/infra"
	"kopugive/internal/sqlinline"
)

// ReportRepositoryPG implements the read-only aggregation view. Every result
// is computed from the campaign and donation tables at query time; nothing is
// cached, so totals always reflect the latest committed verification.
type ReportRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewReportRepository creates a new report repo.
func NewReportRepository(sql infra.SQLExecutor) *ReportRepositoryPG {
	return &ReportRepositoryPG{sql: sql}
}

func (r *ReportRepositoryPG) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	summary := &domain.ReportSummary{
		CampaignsByStatus: make(map[domain.CampaignStatus]int),
		DonationsByStatus: make(map[domain.DonationStatus]int),
	}

	rows, err := r.sql.Query(ctx, sqlinline.QCampaignStatusCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		summary.CampaignsByStatus[domain.CampaignStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.sql.Query(ctx, sqlinline.QDonationStatusCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		summary.DonationsByStatus[domain.DonationStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var raisedText string
	if err := r.sql.QueryRow(ctx, sqlinline.QTotalsRaised).Scan(&raisedText, &summary.TotalDonors); err != nil {
		return nil, err
	}
	if summary.TotalRaised, err = decimal.NewFromString(raisedText); err != nil {
		return nil, fmt.Errorf("parse total raised: %w", err)
	}
	return summary, nil
}

func (r *ReportRepositoryPG) MonthlyTotals(ctx context.Context, limit int) ([]domain.MonthlyTotal, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QMonthlyTotals, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MonthlyTotal
	for rows.Next() {
		var item domain.MonthlyTotal
		var totalText string
		if err := rows.Scan(&item.Month, &item.Count, &totalText); err != nil {
			return nil, err
		}
		if item.Total, err = decimal.NewFromString(totalText); err != nil {
			return nil, fmt.Errorf("parse monthly total: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ReportRepositoryPG) TopCampaigns(ctx context.Context, limit int) ([]domain.CampaignRanking, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QTopCampaigns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CampaignRanking
	for rows.Next() {
		var item domain.CampaignRanking
		var raisedText, targetText string
		if err := rows.Scan(&item.CampaignID, &item.Name, &item.DonationCount, &raisedText, &targetText); err != nil {
			return nil, err
		}
		if item.TotalRaised, err = decimal.NewFromString(raisedText); err != nil {
			return nil, fmt.Errorf("parse raised total: %w", err)
		}
		if item.TargetAmount, err = decimal.NewFromString(targetText); err != nil {
			return nil, fmt.Errorf("parse target amount: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ReportRepositoryPG) TopDonors(ctx context.Context, limit int) ([]domain.DonorRanking, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QTopDonors, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DonorRanking
	for rows.Next() {
		var item domain.DonorRanking
		var totalText string
		if err := rows.Scan(&item.DonorID, &item.DonationCount, &totalText); err != nil {
			return nil, err
		}
		if item.TotalDonated, err = decimal.NewFromString(totalText); err != nil {
			return nil, fmt.Errorf("parse donated total: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ReportRepositoryPG) BrowseActive(ctx context.Context, search, category string) ([]domain.CampaignSummary, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QBrowseActiveCampaigns, search, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CampaignSummary
	for rows.Next() {
		var item domain.CampaignSummary
		var targetText, currentText, raisedText string
		err := rows.Scan(&item.ID, &item.Name, &item.Description, &targetText, &currentText,
			&item.StartDate, &item.EndDate, &item.Category, &item.Status, &item.BannerPath, &item.CreatedBy,
			&item.ApprovedBy, &item.ApprovedAt, &item.RejectionReason, &item.CreatedAt, &item.UpdatedAt,
			&raisedText, &item.DonationCount)
		if err != nil {
			return nil, err
		}
		if item.TargetAmount, err = decimal.NewFromString(targetText); err != nil {
			return nil, fmt.Errorf("parse target amount: %w", err)
		}
		if item.CurrentAmount, err = decimal.NewFromString(currentText); err != nil {
			return nil, fmt.Errorf("parse current amount: %w", err)
		}
		if item.TotalRaised, err = decimal.NewFromString(raisedText); err != nil {
			return nil, fmt.Errorf("parse raised total: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

var _ domain.ReportStore = (*ReportRepositoryPG)(nil)
