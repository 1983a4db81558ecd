package eventtypes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/troopbase/troopbase/internal/platform/db"
	"github.com/troopbase/troopbase/internal/shared"
)

// RepositoryPort defines data access methods for event types.
type RepositoryPort interface {
	List(ctx context.Context) ([]EventType, error)
	Get(ctx context.Context, id int64) (EventType, error)
	Create(ctx context.Context, name, description string) (EventType, error)
	Update(ctx context.Context, id int64, name, description string) (EventType, error)
	Delete(ctx context.Context, id int64) (EventType, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventTypeColumns = `id, name, description, created_at, updated_at`

// List returns all event types.
func (r *Repository) List(ctx context.Context) ([]EventType, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventTypeColumns+` FROM event_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]EventType, 0)
	for rows.Next() {
		var et EventType
		if err := rows.Scan(&et.ID, &et.Name, &et.Description, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, et)
	}
	return list, rows.Err()
}

// Get fetches an event type by ID.
func (r *Repository) Get(ctx context.Context, id int64) (EventType, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+eventTypeColumns+` FROM event_types WHERE id = $1`, id))
}

// Create inserts a new event type; the name is unique.
func (r *Repository) Create(ctx context.Context, name, description string) (EventType, error) {
	et, err := r.scanOne(r.pool.QueryRow(ctx,
		`INSERT INTO event_types (name, description) VALUES ($1, $2) RETURNING `+eventTypeColumns,
		name, description))
	if err != nil {
		return EventType{}, db.TranslateError(err)
	}
	return et, nil
}

// Update changes name and description of an existing event type.
func (r *Repository) Update(ctx context.Context, id int64, name, description string) (EventType, error) {
	et, err := r.scanOne(r.pool.QueryRow(ctx,
		`UPDATE event_types SET name = $2, description = $3, updated_at = NOW() WHERE id = $1 RETURNING `+eventTypeColumns,
		id, name, description))
	if err != nil {
		return EventType{}, db.TranslateError(err)
	}
	return et, nil
}

// Delete removes an event type and returns it. Permission rows and events of
// the type are removed by the store's cascade.
func (r *Repository) Delete(ctx context.Context, id int64) (EventType, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`DELETE FROM event_types WHERE id = $1 RETURNING `+eventTypeColumns, id))
}

func (r *Repository) scanOne(row pgx.Row) (EventType, error) {
	var et EventType
	err := row.Scan(&et.ID, &et.Name, &et.Description, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EventType{}, shared.ErrNotFound
		}
		return EventType{}, err
	}
	return et, nil
}

var _ RepositoryPort = (*Repository)(nil)
