package people

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	rows   map[int64]Person
	nextID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[int64]Person)}
}

func (s *memoryStore) Create(ctx context.Context, p Person) (Person, error) {
	for _, row := range s.rows {
		if row.Name == p.Name && row.Role == p.Role {
			return Person{}, ErrDuplicateName
		}
	}
	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	s.rows[p.ID] = p
	return p, nil
}

func (s *memoryStore) List(ctx context.Context, role Role) ([]Person, error) {
	var out []Person
	for _, row := range s.rows {
		if row.Role == role {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryStore) Get(ctx context.Context, id int64) (Person, error) {
	row, ok := s.rows[id]
	if !ok {
		return Person{}, ErrNotFound
	}
	return row, nil
}

func (s *memoryStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func TestCreateTrimsAndRejectsBlankName(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()

	p, err := svc.Create(ctx, RoleSalesperson, "  Ana Souza  ")
	require.NoError(t, err)
	require.Equal(t, "Ana Souza", p.Name)

	_, err = svc.Create(ctx, RoleSalesperson, "   ")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestCreateDuplicateNameSameRole(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, RoleSupervisor, "Bruno Lima")
	require.NoError(t, err)

	_, err = svc.Create(ctx, RoleSupervisor, "Bruno Lima")
	require.ErrorIs(t, err, ErrDuplicateName)

	// The same name is fine on the other roster.
	_, err = svc.Create(ctx, RoleSalesperson, "Bruno Lima")
	require.NoError(t, err)
}

func TestListIsRoleScopedAndNameOrdered(t *testing.T) {
	svc := NewService(newMemoryStore())
	ctx := context.Background()

	for _, name := range []string{"Carla", "Ana", "Bia"} {
		_, err := svc.Create(ctx, RoleSalesperson, name)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, RoleSupervisor, "Diego")
	require.NoError(t, err)

	roster, err := svc.List(ctx, RoleSalesperson)
	require.NoError(t, err)
	require.Len(t, roster, 3)
	require.Equal(t, "Ana", roster[0].Name)
	require.Equal(t, "Bia", roster[1].Name)
	require.Equal(t, "Carla", roster[2].Name)
}

func TestDeleteUnknownID(t *testing.T) {
	svc := NewService(newMemoryStore())
	require.ErrorIs(t, svc.Delete(context.Background(), 99), ErrNotFound)
}
