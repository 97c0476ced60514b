package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleReader   UserRole = "READER"
	RoleAuthor   UserRole = "AUTHOR"
	RoleReviewer UserRole = "REVIEWER"
	RoleAdmin    UserRole = "ADMIN"
)

// User represents an application user stored in the users table.
type User struct {
	ID          string    `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	Email       string    `db:"email" json:"email"`
	FullName    string    `db:"full_name" json:"full_name"`
	Role        UserRole  `db:"role" json:"role"`
	IsSuperuser bool      `db:"is_superuser" json:"is_superuser"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin reports admin capability; superusers are always admins.
func (u *User) IsAdmin() bool {
	return u != nil && (u.IsSuperuser || u.Role == RoleAdmin)
}

// IsReviewer reports reviewer capability.
func (u *User) IsReviewer() bool {
	return u != nil && (u.IsSuperuser || u.Role == RoleReviewer)
}

// DisplayName prefers the full name over the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
