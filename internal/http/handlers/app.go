package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"kopugive/internal/domain"
	"kopugive/internal/ledger"
)

// App bundles the core services behind the HTTP surface. Handlers never
// write status fields directly; every mutation goes through the ledger
// services.
type App struct {
	Ledger     *ledger.Service
	Campaigns  *ledger.Lifecycle
	Reconciler *ledger.Reconciler
	Store      domain.LedgerStore
	Reports    domain.ReportStore
	Activity   domain.ActivityLog
	Logger     zerolog.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": errCode, "message": message})
}

// domainError maps the core error taxonomy onto HTTP statuses.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		a.error(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		a.error(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
