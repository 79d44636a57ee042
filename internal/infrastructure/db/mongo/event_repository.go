package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

const eventsCollection = "activity_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

// Insert persists an activity event to the audit collection.
func (r *EventRepository) Insert(ctx context.Context, event domain.ActivityEvent) error {
	doc := bson.M{
		"actor_id":     event.ActorID,
		"action":       event.Action,
		"subject":      event.Subject,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListRecent returns the newest events for one actor, newest first.
func (r *EventRepository) ListRecent(ctx context.Context, actorID string, limit int64) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	cur, err := r.coll.Find(ctx, bson.M{"actor_id": actorID},
		options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.ActivityEvent
	for cur.Next(ctx) {
		var row struct {
			ActorID   string    `bson:"actor_id"`
			Action    string    `bson:"action"`
			Subject   string    `bson:"subject"`
			Timestamp time.Time `bson:"timestamp"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, domain.ActivityEvent{
			ActorID:   row.ActorID,
			Action:    row.Action,
			Subject:   row.Subject,
			Timestamp: row.Timestamp,
		})
	}
	return events, cur.Err()
}
