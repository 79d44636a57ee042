package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder persists activity events asynchronously through a fixed set of
// workers sharded by actor, so request latency is decoupled from the events
// collection while per-actor ordering is preserved.
type Recorder struct {
	workers []chan domain.ActivityEvent
	repo    ports.EventRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.EventRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for the worker responsible for its actor.
// Non-blocking up to channelBuffer capacity.
func (r *Recorder) Record(event domain.ActivityEvent) {
	r.workers[r.shardIndex(event.ActorID)] <- event
}

// shardIndex maps an actor ID deterministically to a worker index.
func (r *Recorder) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := r.repo.Insert(ctx, event); err != nil {
				r.log.Error().Err(err).
					Str("actor_id", event.ActorID).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("activity event persistence failed")
			}
		}
	}
}
