package domain

import "time"

// Activity is a single audit record: who did what to which entity.
type Activity struct {
	ID         string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	CreatedAt  time.Time
}
