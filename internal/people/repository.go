package people

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("people: not found")
	// ErrDuplicateName indicates a roster already holds the name.
	ErrDuplicateName = errors.New("people: name already registered")
)

// Repository provides PostgreSQL backed persistence for rosters.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a person into its roster.
func (r *Repository) Create(ctx context.Context, p Person) (Person, error) {
	query := `
		INSERT INTO people (name, role, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, p.Name, p.Role).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Person{}, ErrDuplicateName
		}
		return Person{}, err
	}
	return p, nil
}

// List returns a roster ordered by name ascending.
func (r *Repository) List(ctx context.Context, role Role) ([]Person, error) {
	query := `SELECT id, name, role, created_at FROM people WHERE role = $1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get retrieves a person by id.
func (r *Repository) Get(ctx context.Context, id int64) (Person, error) {
	query := `SELECT id, name, role, created_at FROM people WHERE id = $1`
	var p Person
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Person{}, ErrNotFound
	}
	if err != nil {
		return Person{}, err
	}
	return p, nil
}

// Delete removes a person permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
