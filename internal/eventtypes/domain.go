// Package eventtypes manages the named categories events belong to.
package eventtypes

import "time"

// EventType represents a category of event (e.g. "scout_event").
type EventType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
