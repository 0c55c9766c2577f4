package handlers

import (
	"net/http"
	"strconv"
)

func (a *App) ReportsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Reports.Summary(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaigns_by_status": summary.CampaignsByStatus,
		"donations_by_status": summary.DonationsByStatus,
		"total_raised":        summary.TotalRaised.String(),
		"total_donors":        summary.TotalDonors,
	})
}

func (a *App) ReportsMonthly(w http.ResponseWriter, r *http.Request) {
	totals, err := a.Reports.MonthlyTotals(r.Context(), queryLimit(r, 12))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(totals))
	for _, t := range totals {
		items = append(items, map[string]any{
			"month": t.Month,
			"count": t.Count,
			"total": t.Total.String(),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ReportsTopCampaigns(w http.ResponseWriter, r *http.Request) {
	rankings, err := a.Reports.TopCampaigns(r.Context(), queryLimit(r, 10))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(rankings))
	for _, ranking := range rankings {
		items = append(items, map[string]any{
			"campaign_id":    ranking.CampaignID,
			"name":           ranking.Name,
			"donation_count": ranking.DonationCount,
			"total_raised":   ranking.TotalRaised.String(),
			"target_amount":  ranking.TargetAmount.String(),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ReportsTopDonors(w http.ResponseWriter, r *http.Request) {
	rankings, err := a.Reports.TopDonors(r.Context(), queryLimit(r, 10))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(rankings))
	for _, ranking := range rankings {
		items = append(items, map[string]any{
			"donor_id":       ranking.DonorID,
			"donation_count": ranking.DonationCount,
			"total_donated":  ranking.TotalDonated.String(),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func queryLimit(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= 100 {
			return limit
		}
	}
	return fallback
}
