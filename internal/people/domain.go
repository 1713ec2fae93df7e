package people

import "time"

// Role distinguishes the two brokerage rosters.
type Role string

const (
	RoleSalesperson Role = "vendedor"
	RoleSupervisor  Role = "supervisor"
)

// Person is a named entry in a roster lookup table.
type Person struct {
	ID        int64
	Name      string
	Role      Role
	CreatedAt time.Time
}
