package events

import "time"

// Event is a scheduled activity belonging to an event type. Access to an
// event is governed entirely by the capabilities its event type grants to
// the viewer's roles.
type Event struct {
	ID          int64     `json:"id"`
	EventTypeID int64     `json:"event_type_id"`
	CreatedBy   int64     `json:"created_by"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
