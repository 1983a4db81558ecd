package events

import "time"

// EventRequest is the create/update payload.
type EventRequest struct {
	EventTypeID int64     `json:"event_type_id" validate:"required,gt=0"`
	Title       string    `json:"title" validate:"required,min=2,max=256"`
	Description string    `json:"description" validate:"max=4096"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

func (r EventRequest) toEvent(id int64) Event {
	return Event{
		ID:          id,
		EventTypeID: r.EventTypeID,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}
