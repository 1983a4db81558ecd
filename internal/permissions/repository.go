package permissions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/troopbase/troopbase/internal/platform/db"
	"github.com/troopbase/troopbase/internal/shared"
)

// RepositoryPort defines data access over the permission matrix.
type RepositoryPort interface {
	List(ctx context.Context) ([]Permission, error)
	ListByRole(ctx context.Context, roleID int64) ([]Permission, error)
	ListByEventType(ctx context.Context, eventTypeID int64) ([]Permission, error)
	Find(ctx context.Context, roleID, eventTypeID int64) (Permission, bool, error)
	Create(ctx context.Context, roleID, eventTypeID int64, flags Flags) (Permission, error)
	Update(ctx context.Context, roleID, eventTypeID int64, flags Flags) (Permission, error)
	Delete(ctx context.Context, roleID, eventTypeID int64) (Permission, error)
	EventTypeIDsForRole(ctx context.Context, roleID int64) ([]int64, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const permissionColumns = `role_id, event_type_id, can_see, can_edit, can_add, created_at, updated_at`

// List returns every permission row.
func (r *Repository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM role_event_type_permissions`)
	if err != nil {
		return nil, err
	}
	return scanPermissions(rows)
}

// ListByRole returns the permission rows granted to a role. A role with no
// grants yields an empty slice.
func (r *Repository) ListByRole(ctx context.Context, roleID int64) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM role_event_type_permissions WHERE role_id = $1`, roleID)
	if err != nil {
		return nil, err
	}
	return scanPermissions(rows)
}

// ListByEventType returns the permission rows referencing an event type.
func (r *Repository) ListByEventType(ctx context.Context, eventTypeID int64) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM role_event_type_permissions WHERE event_type_id = $1`, eventTypeID)
	if err != nil {
		return nil, err
	}
	return scanPermissions(rows)
}

// Find fetches the zero-or-one row for the composite key. Absence is
// reported through the bool, never as an error: callers treat a missing row
// as "no capability".
func (r *Repository) Find(ctx context.Context, roleID, eventTypeID int64) (Permission, bool, error) {
	var p Permission
	err := r.pool.QueryRow(ctx,
		`SELECT `+permissionColumns+` FROM role_event_type_permissions WHERE role_id = $1 AND event_type_id = $2`,
		roleID, eventTypeID,
	).Scan(&p.RoleID, &p.EventTypeID, &p.CanSee, &p.CanEdit, &p.CanAdd, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, false, nil
		}
		return Permission{}, false, err
	}
	return p, true, nil
}

// Create inserts a new permission row. A duplicate composite key surfaces as
// shared.ErrAlreadyExists and a dangling foreign key as shared.ErrConstraint.
func (r *Repository) Create(ctx context.Context, roleID, eventTypeID int64, flags Flags) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx,
		`INSERT INTO role_event_type_permissions (role_id, event_type_id, can_see, can_edit, can_add)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+permissionColumns,
		roleID, eventTypeID, flags.CanSee, flags.CanEdit, flags.CanAdd,
	).Scan(&p.RoleID, &p.EventTypeID, &p.CanSee, &p.CanEdit, &p.CanAdd, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Permission{}, db.TranslateError(err)
	}
	return p, nil
}

// Update replaces the capability flags for an existing composite key.
func (r *Repository) Update(ctx context.Context, roleID, eventTypeID int64, flags Flags) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx,
		`UPDATE role_event_type_permissions
		 SET can_see = $3, can_edit = $4, can_add = $5, updated_at = NOW()
		 WHERE role_id = $1 AND event_type_id = $2
		 RETURNING `+permissionColumns,
		roleID, eventTypeID, flags.CanSee, flags.CanEdit, flags.CanAdd,
	).Scan(&p.RoleID, &p.EventTypeID, &p.CanSee, &p.CanEdit, &p.CanAdd, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, shared.ErrNotFound
		}
		return Permission{}, db.TranslateError(err)
	}
	return p, nil
}

// Delete removes the row for the composite key and returns it.
func (r *Repository) Delete(ctx context.Context, roleID, eventTypeID int64) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx,
		`DELETE FROM role_event_type_permissions
		 WHERE role_id = $1 AND event_type_id = $2
		 RETURNING `+permissionColumns,
		roleID, eventTypeID,
	).Scan(&p.RoleID, &p.EventTypeID, &p.CanSee, &p.CanEdit, &p.CanAdd, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, shared.ErrNotFound
		}
		return Permission{}, err
	}
	return p, nil
}

// EventTypeIDsForRole returns the event type identifiers the role has any
// permission row for, regardless of flag values.
func (r *Repository) EventTypeIDsForRole(ctx context.Context, roleID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT event_type_id FROM role_event_type_permissions WHERE role_id = $1`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanPermissions(rows pgx.Rows) ([]Permission, error) {
	defer rows.Close()
	perms := make([]Permission, 0)
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.RoleID, &p.EventTypeID, &p.CanSee, &p.CanEdit, &p.CanAdd, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
