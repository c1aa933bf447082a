package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Role is the site-wide role assigned to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `bun:",nullzero" json:"username"`
	Email        string    `bun:",nullzero" json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	Role         Role      `bun:",nullzero" json:"role"`
	Bio          *string   `json:"bio,omitempty"`
	FirstName    *string   `json:"first_name,omitempty"`
	LastName     *string   `json:"last_name,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// CanModerate reports whether the user may mutate content they don't own.
func (u *User) CanModerate() bool {
	switch u.Role {
	case RoleModerator, RoleAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}

// CanEditResource reports whether the user may mutate a resource owned by
// authorID. Authors can always edit their own content; moderators and admins
// can edit anyone's.
func (u *User) CanEditResource(authorID int) bool {
	return u.ID == authorID || u.CanModerate()
}
