package people

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyName indicates a blank roster name.
var ErrEmptyName = errors.New("people: name must not be empty")

// Store abstracts roster persistence.
type Store interface {
	Create(ctx context.Context, p Person) (Person, error)
	List(ctx context.Context, role Role) ([]Person, error)
	Get(ctx context.Context, id int64) (Person, error)
	Delete(ctx context.Context, id int64) error
}

// Service coordinates roster operations.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a named person under a role.
func (s *Service) Create(ctx context.Context, role Role, name string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrEmptyName
	}
	return s.store.Create(ctx, Person{Name: name, Role: role})
}

// List returns a roster ordered by name.
func (s *Service) List(ctx context.Context, role Role) ([]Person, error) {
	return s.store.List(ctx, role)
}

// Delete removes a person from a roster.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
