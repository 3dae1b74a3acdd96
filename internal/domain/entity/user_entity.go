package entity

import (
	"time"
)

// User is the aggregate root for the citizen-account domain.
// PasswordHash holds a bcrypt hash and must never be serialized outward.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Neighborhood string
	Phone        string
	Address      string
	RoleID       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns the outward-facing projection of the user. The password
// hash is deliberately absent.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"neighborhood": u.Neighborhood,
		"phone":        u.Phone,
		"address":      u.Address,
		"role_id":      u.RoleID,
	}
}
