package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/troopbase/troopbase/internal/platform/db"
	"github.com/troopbase/troopbase/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, username, passwordHash string) (User, error)
	Update(ctx context.Context, id int64, username, passwordHash *string) (User, error)
	Delete(ctx context.Context, id int64) (User, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, username, password_hash, is_active, created_at, updated_at`

// List returns all users.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Get fetches a user by ID.
func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByUsername fetches a user by unique username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// Create inserts a new user. A duplicate username surfaces as
// shared.ErrAlreadyExists.
func (r *Repository) Create(ctx context.Context, username, passwordHash string) (User, error) {
	u, err := r.scanOne(r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		username, passwordHash))
	if err != nil {
		return User{}, db.TranslateError(err)
	}
	return u, nil
}

// Update changes the username and/or password hash; nil fields keep their
// current value. The existence check, the username uniqueness check and the
// write run in a single transaction so a concurrent rename cannot slip in
// between them.
func (r *Repository) Update(ctx context.Context, id int64, username, passwordHash *string) (User, error) {
	var u User
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
		}
		if username != nil {
			var taken bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`,
				*username, id).Scan(&taken); err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: username %q is taken", shared.ErrAlreadyExists, *username)
			}
		}
		var err error
		u, err = r.scanOne(tx.QueryRow(ctx,
			`UPDATE users
			 SET username = COALESCE($2, username),
			     password_hash = COALESCE($3, password_hash),
			     updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+userColumns,
			id, username, passwordHash))
		return err
	})
	if err != nil {
		return User{}, db.TranslateError(err)
	}
	return u, nil
}

// Delete removes a user and returns the removed record. Join rows and
// authored events go with it via the store's cascade.
func (r *Repository) Delete(ctx context.Context, id int64) (User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
}

func (r *Repository) scanOne(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

var _ RepositoryPort = (*Repository)(nil)
