package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserSummary is the display metadata attached to messages, comments and
// notifications.
type UserSummary struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
}

type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAlumni, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the caller as established by the authentication layer.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// HasRole reports whether the identity satisfies requiredRole. Admins satisfy
// every role.
func (i Identity) HasRole(requiredRole Role) bool {
	if i.Role == RoleAdmin {
		return true
	}
	return i.Role == requiredRole
}
