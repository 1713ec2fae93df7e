package payables

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("payables: not found")

// Repository provides PostgreSQL backed persistence for payables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const payableColumns = `id, name, amount, category, expense_type, supplier, person_id,
	recurrent, recurrence_months, projected_date, paid_date, method, receipt_ref,
	status, created_at, updated_at`

// Create inserts a payable and returns the stored row.
func (r *Repository) Create(ctx context.Context, p Payable) (Payable, error) {
	query := `
		INSERT INTO payables (
			name, amount, category, expense_type, supplier, person_id, recurrent,
			recurrence_months, projected_date, paid_date, method, receipt_ref,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Amount, p.Category, p.ExpenseType, p.Supplier,
		optionalInt8(p.PersonID), p.Recurrent, optionalInt4(p.RecurrenceMonths),
		p.ProjectedDate, optionalDate(p.PaidDate), p.Method,
		optionalText(p.ReceiptRef), p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Payable{}, err
	}
	return p, nil
}

// Get retrieves a payable by id.
func (r *Repository) Get(ctx context.Context, id int64) (Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables WHERE id = $1`
	p, err := scanPayable(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payable{}, ErrNotFound
	}
	if err != nil {
		return Payable{}, err
	}
	return p, nil
}

// List returns payables ordered by anchor date descending.
func (r *Repository) List(ctx context.Context) ([]Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables
		ORDER BY COALESCE(paid_date, projected_date) DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payable
	for rows.Next() {
		p, err := scanPayable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update replaces every mutable column of a payable.
func (r *Repository) Update(ctx context.Context, p Payable) (Payable, error) {
	query := `
		UPDATE payables SET
			name = $2, amount = $3, category = $4, expense_type = $5, supplier = $6,
			person_id = $7, recurrent = $8, recurrence_months = $9, projected_date = $10,
			paid_date = $11, method = $12, receipt_ref = $13, status = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Amount, p.Category, p.ExpenseType, p.Supplier,
		optionalInt8(p.PersonID), p.Recurrent, optionalInt4(p.RecurrenceMonths),
		p.ProjectedDate, optionalDate(p.PaidDate), p.Method,
		optionalText(p.ReceiptRef), p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payable{}, ErrNotFound
	}
	if err != nil {
		return Payable{}, err
	}
	return p, nil
}

// Delete removes a payable permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPayable(row pgx.Row) (Payable, error) {
	var p Payable
	var personID pgtype.Int8
	var recurrenceMonths pgtype.Int4
	var paidDate pgtype.Date
	var receiptRef pgtype.Text
	err := row.Scan(
		&p.ID, &p.Name, &p.Amount, &p.Category, &p.ExpenseType, &p.Supplier,
		&personID, &p.Recurrent, &recurrenceMonths, &p.ProjectedDate, &paidDate,
		&p.Method, &receiptRef, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Payable{}, err
	}
	if personID.Valid {
		p.PersonID = &personID.Int64
	}
	if recurrenceMonths.Valid {
		months := int(recurrenceMonths.Int32)
		p.RecurrenceMonths = &months
	}
	if paidDate.Valid {
		p.PaidDate = &paidDate.Time
	}
	if receiptRef.Valid {
		p.ReceiptRef = &receiptRef.String
	}
	return p, nil
}

func optionalInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func optionalInt4(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}

func optionalDate(v *time.Time) pgtype.Date {
	if v == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *v, Valid: true}
}

func optionalText(v *string) pgtype.Text {
	if v == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}
