package auth

import "github.com/google/uuid"

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller. Services receive it explicitly
// instead of reading it from the request.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

func (p Principal) IsStudent() bool {
	return p.Role == RoleStudent
}

func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
