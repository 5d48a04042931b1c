package services

import (
	"context"

	"github.com/churchhub/apiserver/types"
)

const (
	defaultUpcomingLimit = 5
	maxUpcomingLimit     = 50
)

// EventRepository defines persistence operations for calendar events.
type EventRepository interface {
	Get(ctx context.Context, id int) (types.Event, error)
	List(ctx context.Context) ([]types.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]types.Event, error)
	Create(ctx context.Context, event types.Event) (types.Event, error)
	Update(ctx context.Context, id int, upd types.EventUpdate) (types.Event, error)
	Delete(ctx context.Context, id int) error
}

// EventService encapsulates event use-cases.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) Get(ctx context.Context, id int) (types.Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]types.Event, error) {
	return s.repo.List(ctx)
}

// ListUpcoming returns the next events on the calendar. A non-positive
// limit falls back to the default of 5; oversized requests are clamped.
func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]types.Event, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	if limit > maxUpcomingLimit {
		limit = maxUpcomingLimit
	}
	return s.repo.ListUpcoming(ctx, limit)
}

func (s *EventService) Create(ctx context.Context, event types.Event) (types.Event, error) {
	return s.repo.Create(ctx, event)
}

func (s *EventService) Update(ctx context.Context, id int, upd types.EventUpdate) (types.Event, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *EventService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
