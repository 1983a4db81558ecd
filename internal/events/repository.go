package events

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/troopbase/troopbase/internal/platform/db"
	"github.com/troopbase/troopbase/internal/shared"
)

// RepositoryPort defines data access for events.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (Event, error)
	ListByEventTypeIDs(ctx context.Context, typeIDs []int64) ([]Event, error)
	Create(ctx context.Context, e Event) (Event, error)
	Update(ctx context.Context, e Event) (Event, error)
	Delete(ctx context.Context, id int64) (Event, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, event_type_id, created_by, title, description, start_date, end_date, created_at, updated_at`

// Get fetches a single event by ID.
func (r *Repository) Get(ctx context.Context, id int64) (Event, error) {
	var e Event
	err := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.EventTypeID, &e.CreatedBy, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, shared.ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

// ListByEventTypeIDs returns all events whose type is in typeIDs, ordered by
// start date. An empty ID set yields an empty slice without touching the
// store.
func (r *Repository) ListByEventTypeIDs(ctx context.Context, typeIDs []int64) ([]Event, error) {
	if len(typeIDs) == 0 {
		return []Event{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_type_id = ANY($1) ORDER BY start_date, id`, typeIDs)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// Create inserts a new event. A dangling event type or creator reference
// surfaces as shared.ErrConstraint.
func (r *Repository) Create(ctx context.Context, e Event) (Event, error) {
	var out Event
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (event_type_id, created_by, title, description, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+eventColumns,
		e.EventTypeID, e.CreatedBy, e.Title, e.Description, e.StartDate, e.EndDate,
	).Scan(&out.ID, &out.EventTypeID, &out.CreatedBy, &out.Title, &out.Description, &out.StartDate, &out.EndDate, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return Event{}, db.TranslateError(err)
	}
	return out, nil
}

// Update rewrites the mutable fields of an existing event.
func (r *Repository) Update(ctx context.Context, e Event) (Event, error) {
	var out Event
	err := r.pool.QueryRow(ctx,
		`UPDATE events
		 SET event_type_id = $2, title = $3, description = $4, start_date = $5, end_date = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+eventColumns,
		e.ID, e.EventTypeID, e.Title, e.Description, e.StartDate, e.EndDate,
	).Scan(&out.ID, &out.EventTypeID, &out.CreatedBy, &out.Title, &out.Description, &out.StartDate, &out.EndDate, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, shared.ErrNotFound
		}
		return Event{}, db.TranslateError(err)
	}
	return out, nil
}

// Delete removes an event and returns the removed row.
func (r *Repository) Delete(ctx context.Context, id int64) (Event, error) {
	var e Event
	err := r.pool.QueryRow(ctx,
		`DELETE FROM events WHERE id = $1 RETURNING `+eventColumns, id,
	).Scan(&e.ID, &e.EventTypeID, &e.CreatedBy, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, shared.ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

func scanEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()
	list := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EventTypeID, &e.CreatedBy, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
