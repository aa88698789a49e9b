package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow/store"
)

// ErrNotPending signals a decision write raced or repeated: the record exists
// but already left the pending state.
var ErrNotPending = errors.New("application: not pending")

// Repository defines the data access required by the service.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Application, error)
	List(ctx context.Context, filters Filters) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (Application, error)
}

// CreateParams contains the write parameters for one application record.
// Status and created_at are assigned by the store.
type CreateParams struct {
	ID            string
	PropertyID    string
	PropertyTitle string
	UserID        string
	Fields
}

// Filters narrows a listing by equality on one field. Zero values match all.
type Filters struct {
	UserID string
	Status Status
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed application repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const applicationColumns = `id, property_id, property_title, user_id, full_name, email, phone, monthly_income, move_in_date, notes, status, created_at, updated_at`

// Create appends one record with status pending and a server-assigned
// creation timestamp.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (Application, error) {
	query := fmt.Sprintf(`
        INSERT INTO applications (id, property_id, property_title, user_id, full_name, email, phone, monthly_income, move_in_date, notes, status)
        VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
        RETURNING %s
    `, applicationColumns)

	row := r.pool.QueryRow(ctx, query,
		params.ID,
		params.PropertyID,
		params.PropertyTitle,
		params.UserID,
		params.FullName,
		params.Email,
		params.Phone,
		params.MonthlyIncome,
		params.MoveInDate,
		params.Notes,
	)

	app, err := scanApplication(row)
	if err != nil {
		return Application{}, fmt.Errorf("application: create: %w", store.Classify(err))
	}
	return app, nil
}

// List returns all records matching the filters. Ordering is left to the
// caller; the service sorts client-side after normalizing timestamps.
func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Application, error) {
	base := fmt.Sprintf(`SELECT %s FROM applications`, applicationColumns)
	where := []string{}
	args := []any{}

	if filters.UserID != "" {
		where = append(where, fmt.Sprintf("user_id=$%d", len(args)+1))
		args = append(args, filters.UserID)
	}
	if filters.Status != "" {
		where = append(where, fmt.Sprintf("status=$%d", len(args)+1))
		args = append(args, filters.Status)
	}

	query := base
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("application: query list: %w", store.Classify(err))
	}
	defer rows.Close()

	list := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("application: scan: %w", err)
		}
		list = append(list, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("application: iterate list: %w", store.Classify(err))
	}

	return list, nil
}

// UpdateStatus applies a decision to a record still in the pending state. A
// record that already left pending returns ErrNotPending so a racing second
// decision cannot overwrite the first.
func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (Application, error) {
	query := fmt.Sprintf(`
		UPDATE applications
		SET status = $2,
		    updated_at = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING %s
	`, applicationColumns)

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id, status, updatedAt))
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Application{}, fmt.Errorf("application: update status: %w", store.Classify(err))
	}

	// Distinguish a missing record from one already decided.
	var current Status
	lookupErr := r.pool.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1`, id).Scan(&current)
	if lookupErr != nil {
		return Application{}, fmt.Errorf("application: update status: %w", store.Classify(lookupErr))
	}
	return Application{}, fmt.Errorf("%w: currently %s", ErrNotPending, current)
}

func scanApplication(row pgx.Row) (Application, error) {
	var (
		app       Application
		createdAt *time.Time
		updatedAt *time.Time
	)
	err := row.Scan(
		&app.ID,
		&app.PropertyID,
		&app.PropertyTitle,
		&app.UserID,
		&app.FullName,
		&app.Email,
		&app.Phone,
		&app.MonthlyIncome,
		&app.MoveInDate,
		&app.Notes,
		&app.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return Application{}, err
	}

	// created_at carries NOT NULL DEFAULT now() here, but rows imported from
	// the legacy store may predate the constraint. A nil timestamp scans to
	// the zero time and the service substitutes the current moment at read.
	if createdAt != nil {
		app.CreatedAt = *createdAt
	}
	app.UpdatedAt = updatedAt
	return app, nil
}
