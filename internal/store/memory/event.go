package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
)

// EventRepository keeps calendar events in memory.
type EventRepository struct {
	mu     sync.RWMutex
	seq    int
	events map[int]types.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[int]types.Event)}
}

func (r *EventRepository) Get(ctx context.Context, id int) (types.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return types.Event{}, store.ErrNotFound
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]types.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]types.Event, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}
	sortByID(events, func(e types.Event) int { return e.ID })
	return events, nil
}

// ListUpcoming returns events starting strictly after now, soonest
// first, at most limit of them. Equal start times fall back to
// creation order.
func (r *EventRepository) ListUpcoming(ctx context.Context, limit int) ([]types.Event, error) {
	now := time.Now()

	r.mu.RLock()
	upcoming := make([]types.Event, 0, len(r.events))
	for _, event := range r.events {
		if event.StartTime.After(now) {
			upcoming = append(upcoming, event)
		}
	}
	r.mu.RUnlock()

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].StartTime.Equal(upcoming[j].StartTime) {
			return upcoming[i].ID < upcoming[j].ID
		}
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

func (r *EventRepository) Create(ctx context.Context, event types.Event) (types.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	event.ID = r.seq
	event.CreatedAt = time.Now()
	r.events[event.ID] = event
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, id int, upd types.EventUpdate) (types.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return types.Event{}, store.ErrNotFound
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.EventType != nil {
		event.EventType = *upd.EventType
	}
	if upd.StartTime != nil {
		event.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		event.EndTime = *upd.EndTime
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}

	r.events[id] = event
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.events, id)
	return nil
}
