package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"kopugive/internal/http/handlers"
	"kopugive/internal/infra"
	"kopugive/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Actor)
	r.Use(middleware.I18N(cfg.DefaultLocale))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Actor-ID", "X-Locale", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Health
	r.Get("/v1/healthz", app.Health)

	// Donor-facing browsing and giving
	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsBrowse)
		r.Get("/{id}", app.CampaignsGet)
	})
	r.Post("/v1/donations", app.DonationsCreate)

	// Payment gateway callbacks
	r.Route("/v1/payments", func(r chi.Router) {
		r.Get("/success", app.PaymentsSuccess)
		r.Post("/webhook", app.PaymentsWebhook)
	})

	// Admin surface; authentication happens upstream, identity arrives via
	// the actor header.
	r.Route("/v1/admin", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", app.AdminCampaignsCreate)
			r.Get("/", app.AdminCampaignsList)
			r.Get("/{id}", app.AdminCampaignsGet)
			r.Post("/{id}/submit", app.AdminCampaignsSubmit)
			r.Post("/{id}/approve", app.AdminCampaignsApprove)
			r.Post("/{id}/reject", app.AdminCampaignsReject)
			r.Post("/{id}/complete", app.AdminCampaignsComplete)
			r.Post("/{id}/close", app.AdminCampaignsClose)
			r.Post("/{id}/status", app.AdminCampaignsStatus)
		})
		r.Route("/donations", func(r chi.Router) {
			r.Get("/", app.AdminDonationsList)
			r.Post("/{id}/verify", app.AdminDonationsVerify)
			r.Post("/{id}/reject", app.AdminDonationsReject)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", app.ReportsSummary)
			r.Get("/monthly", app.ReportsMonthly)
			r.Get("/top-campaigns", app.ReportsTopCampaigns)
			r.Get("/top-donors", app.ReportsTopDonors)
		})
		r.Get("/activity", app.ActivityRecent)
	})

	return r
}
