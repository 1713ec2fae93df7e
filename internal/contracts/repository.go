package contracts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("contracts: not found")

// Repository provides PostgreSQL backed persistence for contracts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const contractColumns = `id, name, carrier, category, type, monthly_fee, commission_pct,
	per_life_bonus, lives, implementation_date, projected_receipt_dates,
	salesperson, supervisor, status, created_at, updated_at`

// Create inserts a contract and returns the stored row.
func (r *Repository) Create(ctx context.Context, c Contract) (Contract, error) {
	query := `
		INSERT INTO contracts (
			name, carrier, category, type, monthly_fee, commission_pct,
			per_life_bonus, lives, implementation_date, projected_receipt_dates,
			salesperson, supervisor, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.Name, c.Carrier, c.Category, c.Type, c.MonthlyFee, c.CommissionPct,
		c.PerLifeBonus, c.Lives, c.ImplementationDate, c.ProjectedReceiptDates,
		c.Salesperson, c.Supervisor, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Contract{}, err
	}
	return c, nil
}

// Get retrieves a contract by id.
func (r *Repository) Get(ctx context.Context, id int64) (Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	c, err := scanContract(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	if err != nil {
		return Contract{}, err
	}
	return c, nil
}

// List returns contracts ordered by creation time descending.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $1`
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		if len(args) == 1 {
			query += ` AND type = $1`
		} else {
			query += ` AND type = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces every mutable column of a contract.
func (r *Repository) Update(ctx context.Context, c Contract) (Contract, error) {
	query := `
		UPDATE contracts SET
			name = $2, carrier = $3, category = $4, type = $5, monthly_fee = $6,
			commission_pct = $7, per_life_bonus = $8, lives = $9,
			implementation_date = $10, projected_receipt_dates = $11,
			salesperson = $12, supervisor = $13, status = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.ID, c.Name, c.Carrier, c.Category, c.Type, c.MonthlyFee,
		c.CommissionPct, c.PerLifeBonus, c.Lives,
		c.ImplementationDate, c.ProjectedReceiptDates,
		c.Salesperson, c.Supervisor, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	if err != nil {
		return Contract{}, err
	}
	return c, nil
}

// Delete removes a contract permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFilter narrows contract listings.
type ListFilter struct {
	Status Status
	Type   Type
}

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	err := row.Scan(
		&c.ID, &c.Name, &c.Carrier, &c.Category, &c.Type, &c.MonthlyFee,
		&c.CommissionPct, &c.PerLifeBonus, &c.Lives, &c.ImplementationDate,
		&c.ProjectedReceiptDates, &c.Salesperson, &c.Supervisor, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
