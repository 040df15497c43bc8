package domain

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

var roleRank = map[Role]int{
	RoleUser:       0,
	RoleAdmin:      1,
	RoleSuperAdmin: 2,
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// HasPermission reports whether r grants at least the privileges of min.
// Roles are strictly ordered: user < admin < super-admin.
func (r Role) HasPermission(min Role) bool {
	rr, ok := roleRank[r]
	mr, mok := roleRank[min]
	return ok && mok && rr >= mr
}

// User is a stored account. Email is normalized to lowercase before any
// store operation; the password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the verified token payload attached to a request context.
// It is decoded from the token alone and never re-read from the store, so
// it can be stale after an account is deleted or its role changed.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
