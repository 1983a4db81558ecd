package permissions

// PermissionRequest is the create payload for a grant.
type PermissionRequest struct {
	RoleID      int64 `json:"role_id" validate:"required,gt=0"`
	EventTypeID int64 `json:"event_type_id" validate:"required,gt=0"`
	CanSee      bool  `json:"can_see"`
	CanEdit     bool  `json:"can_edit"`
	CanAdd      bool  `json:"can_add"`
}

// FlagsRequest is the update payload; the pair is addressed by the URL.
// Omitted flags keep their stored value.
type FlagsRequest struct {
	CanSee  *bool `json:"can_see"`
	CanEdit *bool `json:"can_edit"`
	CanAdd  *bool `json:"can_add"`
}
