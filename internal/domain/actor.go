package domain

import "github.com/google/uuid"

type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleCollector Role = "COLLECTOR"
	RoleAdmin     Role = "ADMIN"
	// RoleSystem marks events written by the service itself, e.g. the boot-time integrity check.
	RoleSystem Role = "SYSTEM"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleCollector, RoleAdmin:
		return true
	}
	return false
}

// Actor is the already-authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsManager reports whether the actor may settle money for a circle.
func (a Actor) IsManager() bool {
	return a.Role == RoleCollector || a.Role == RoleAdmin
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SystemActor is used for checks the service runs on its own.
var SystemActor = Actor{UserID: uuid.Nil, Role: RoleSystem}
