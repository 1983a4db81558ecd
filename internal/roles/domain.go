// Package roles manages the named capability bundles users are assigned to.
package roles

import "time"

// Role represents a named capability bundle (e.g. "admin", "committee").
type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
