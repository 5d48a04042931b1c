package types

import "time"

// Event is a calendar entry: a service, meeting or other gathering.
type Event struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`

	// EventType is a free-form category such as "service" or "meeting".
	EventType string    `json:"event_type" db:"event_type"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`
	Location  string    `json:"location" db:"location"`

	// CreatedBy is the id of the user who created the event. It is not
	// enforced referentially; the user may have been deleted since.
	CreatedBy int       `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EventUpdate carries a partial update of an event.
type EventUpdate struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	EventType   *string    `json:"event_type" validate:"omitempty,min=1"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location" validate:"omitempty,min=1"`
}
