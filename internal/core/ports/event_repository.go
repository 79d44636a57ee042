package ports

import (
	"context"

	"github.com/workbase/console-api/internal/core/domain"
)

// EventRepository persists dashboard activity events.
type EventRepository interface {
	Insert(ctx context.Context, event domain.ActivityEvent) error
	// ListRecent returns the newest events for one actor, newest first.
	ListRecent(ctx context.Context, actorID string, limit int64) ([]domain.ActivityEvent, error)
}
