package models

// Roles understood by the role middleware.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can log in; PasswordHash never leaves the backend.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
