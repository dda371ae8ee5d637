package users

import "time"

const (
	RoleAdmin   = "admin"
	RoleOfficer = "petugas"
)

// User is an account allowed to sign in to the dashboard. PasswordHash is
// never serialised.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nama"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PasswordHash string `json:"-"`
}
