// Package permissions manages the role to event-type capability matrix.
package permissions

import "time"

// Permission is the capability triple attached to one (role, event type)
// pair. The composite key guarantees at most one row per pair; the flags
// default to false and are never nullable.
type Permission struct {
	RoleID      int64     `json:"role_id"`
	EventTypeID int64     `json:"event_type_id"`
	CanSee      bool      `json:"can_see"`
	CanEdit     bool      `json:"can_edit"`
	CanAdd      bool      `json:"can_add"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Flags carries the three capability booleans for create and update calls.
type Flags struct {
	CanSee  bool
	CanEdit bool
	CanAdd  bool
}

// FlagsPatch carries optional flag changes for an update; nil fields keep
// the stored value.
type FlagsPatch struct {
	CanSee  *bool
	CanEdit *bool
	CanAdd  *bool
}

func (p FlagsPatch) apply(f Flags) Flags {
	if p.CanSee != nil {
		f.CanSee = *p.CanSee
	}
	if p.CanEdit != nil {
		f.CanEdit = *p.CanEdit
	}
	if p.CanAdd != nil {
		f.CanAdd = *p.CanAdd
	}
	return f
}
