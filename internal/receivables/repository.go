package receivables

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("receivables: not found")

// Repository provides PostgreSQL backed persistence for receivables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const receivableColumns = `id, kind, contract_id, projected_amount, received_amount,
	projected_date, received_date, category, method, recurrence, status,
	created_at, updated_at`

// Create inserts a receivable and returns the stored row.
func (r *Repository) Create(ctx context.Context, rcv Receivable) (Receivable, error) {
	query := `
		INSERT INTO receivables (
			kind, contract_id, projected_amount, received_amount, projected_date,
			received_date, category, method, recurrence, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		rcv.Kind, optionalInt8(rcv.ContractID), rcv.ProjectedAmount,
		optionalFloat(rcv.ReceivedAmount), rcv.ProjectedDate,
		optionalDate(rcv.ReceivedDate), rcv.Category, rcv.Method,
		rcv.Recurrence, rcv.Status,
	).Scan(&rcv.ID, &rcv.CreatedAt, &rcv.UpdatedAt)
	if err != nil {
		return Receivable{}, err
	}
	return rcv, nil
}

// Get retrieves a receivable by id.
func (r *Repository) Get(ctx context.Context, id int64) (Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE id = $1`
	rcv, err := scanReceivable(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Receivable{}, ErrNotFound
	}
	if err != nil {
		return Receivable{}, err
	}
	return rcv, nil
}

// List returns receivables ordered by anchor date descending.
func (r *Repository) List(ctx context.Context) ([]Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables
		ORDER BY COALESCE(received_date, projected_date) DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Receivable
	for rows.Next() {
		rcv, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rcv)
	}
	return out, rows.Err()
}

// Update replaces every mutable column of a receivable.
func (r *Repository) Update(ctx context.Context, rcv Receivable) (Receivable, error) {
	query := `
		UPDATE receivables SET
			kind = $2, contract_id = $3, projected_amount = $4, received_amount = $5,
			projected_date = $6, received_date = $7, category = $8, method = $9,
			recurrence = $10, status = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		rcv.ID, rcv.Kind, optionalInt8(rcv.ContractID), rcv.ProjectedAmount,
		optionalFloat(rcv.ReceivedAmount), rcv.ProjectedDate,
		optionalDate(rcv.ReceivedDate), rcv.Category, rcv.Method,
		rcv.Recurrence, rcv.Status,
	).Scan(&rcv.CreatedAt, &rcv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Receivable{}, ErrNotFound
	}
	if err != nil {
		return Receivable{}, err
	}
	return rcv, nil
}

// Delete removes a receivable permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM receivables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReceivable(row pgx.Row) (Receivable, error) {
	var rcv Receivable
	var contractID pgtype.Int8
	var receivedAmount pgtype.Float8
	var receivedDate pgtype.Date
	err := row.Scan(
		&rcv.ID, &rcv.Kind, &contractID, &rcv.ProjectedAmount, &receivedAmount,
		&rcv.ProjectedDate, &receivedDate, &rcv.Category, &rcv.Method,
		&rcv.Recurrence, &rcv.Status, &rcv.CreatedAt, &rcv.UpdatedAt,
	)
	if err != nil {
		return Receivable{}, err
	}
	if contractID.Valid {
		rcv.ContractID = &contractID.Int64
	}
	if receivedAmount.Valid {
		rcv.ReceivedAmount = &receivedAmount.Float64
	}
	if receivedDate.Valid {
		rcv.ReceivedDate = &receivedDate.Time
	}
	return rcv, nil
}

func optionalInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func optionalFloat(v *float64) pgtype.Float8 {
	if v == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *v, Valid: true}
}

func optionalDate(v *time.Time) pgtype.Date {
	if v == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *v, Valid: true}
}
