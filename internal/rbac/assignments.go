package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/troopbase/troopbase/internal/roles"
	"github.com/troopbase/troopbase/internal/shared"
)

// AssignmentManager manages the user-role join. Assigning an already
// assigned role is rejected explicitly with shared.ErrAlreadyAssigned,
// never treated as a silent success.
type AssignmentManager interface {
	Assign(ctx context.Context, userID, roleID int64) (Assignment, error)
	Remove(ctx context.Context, userID, roleID int64) (Assignment, error)
	RolesForUser(ctx context.Context, userID int64) ([]roles.Role, error)
}

// Assignments is the PostgreSQL backed assignment manager.
type Assignments struct {
	pool *pgxpool.Pool
}

// NewAssignments constructs the assignment manager.
func NewAssignments(pool *pgxpool.Pool) *Assignments {
	return &Assignments{pool: pool}
}

// Assign creates the join row for (user, role). The store's foreign keys
// guarantee both sides exist; a violation surfaces as a combined "user or
// role does not exist" NotFound since the single insert cannot cheaply tell
// which side is missing.
func (a *Assignments) Assign(ctx context.Context, userID, roleID int64) (Assignment, error) {
	var asn Assignment
	err := a.pool.QueryRow(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) RETURNING user_id, role_id, created_at`,
		userID, roleID,
	).Scan(&asn.UserID, &asn.RoleID, &asn.CreatedAt)
	if err != nil {
		return Assignment{}, translateAssignError(err)
	}
	return asn, nil
}

// Remove deletes the join row for (user, role).
func (a *Assignments) Remove(ctx context.Context, userID, roleID int64) (Assignment, error) {
	var asn Assignment
	err := a.pool.QueryRow(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2 RETURNING user_id, role_id, created_at`,
		userID, roleID,
	).Scan(&asn.UserID, &asn.RoleID, &asn.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Assignment{}, fmt.Errorf("%w: user %d has no role %d", shared.ErrNotFound, userID, roleID)
		}
		return Assignment{}, err
	}
	return asn, nil
}

// RolesForUser returns the user's assigned roles. A user with no roles gets
// an empty slice: no roles means zero capabilities, not a fault.
func (a *Assignments) RolesForUser(ctx context.Context, userID int64) ([]roles.Role, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT r.id, r.name, r.created_at, r.updated_at
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	assigned := make([]roles.Role, 0)
	for rows.Next() {
		var role roles.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		assigned = append(assigned, role)
	}
	return assigned, rows.Err()
}

func translateAssignError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return shared.ErrAlreadyAssigned
		case "23503":
			return fmt.Errorf("%w: user or role does not exist", shared.ErrNotFound)
		}
	}
	return err
}

var _ AssignmentManager = (*Assignments)(nil)
var _ RoleSource = (*Assignments)(nil)
