package domain

// Role is the authorization class of the current session. Only
// RoleUser may submit payments; RoleAdmin additionally sees the admin
// device list.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// UserProfile holds the display-only profile fields cached per session.
type UserProfile struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
