package types

import "time"

// Roles recognized by the authorization layer. Role is the sole
// authorization axis: admins may mutate anything, members only what
// they created.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	// Matching is exact and case-sensitive.
	Username string `json:"username" db:"username"`

	// Email is the user's email address.
	Email string `json:"email" db:"email"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Role indicates the user's authorization level within the
	// system, either "admin" or "member".
	Role string `json:"role" db:"role"`

	// AvatarURL points at the user's profile image, if any.
	AvatarURL string `json:"avatar_url,omitempty" db:"avatar_url"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserUpdate carries a partial update of a user. Nil fields are left
// untouched by the merge. The password is deliberately absent: it can
// only change through the authentication endpoints.
type UserUpdate struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=64"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin member"`
	AvatarURL *string `json:"avatar_url"`
}
