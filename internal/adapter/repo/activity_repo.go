package repo

import (
	"context"

	"github.com/google/uuid"

	"kopugive/internal/domain"
	"kopugive/internal/infra"
	"kopugive/internal/sqlinline"
)

// ActivityRepositoryPG implements domain.ActivityLog using PostgreSQL.
// Entries are append-only.
type ActivityRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewActivityRepository creates a new activity log repo.
func NewActivityRepository(sql infra.SQLExecutor) *ActivityRepositoryPG {
	return &ActivityRepositoryPG{sql: sql}
}

func (r *ActivityRepositoryPG) Record(ctx context.Context, actorID, action, entityType, entityID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertActivity,
		uuid.NewString(), actorID, action, entityType, entityID)
	return err
}

func (r *ActivityRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListActivity, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Activity
	for rows.Next() {
		var entry domain.Activity
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, entry)
	}
	return items, rows.Err()
}

var _ domain.ActivityLog = (*ActivityRepositoryPG)(nil)
