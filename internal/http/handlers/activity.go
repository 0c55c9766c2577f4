package handlers

import (
	"net/http"
)

func (a *App) ActivityRecent(w http.ResponseWriter, r *http.Request) {
	entries, err := a.Activity.ListRecent(r.Context(), queryLimit(r, 50))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		items = append(items, map[string]any{
			"id":          entry.ID,
			"actor_id":    entry.ActorID,
			"action":      entry.Action,
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
			"created_at":  entry.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
