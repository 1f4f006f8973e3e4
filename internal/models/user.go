package models

import (
	"strings"
	"time"
)

// Role is the canonical role enumeration. Legacy records carried
// inconsistent casing ("instructor" vs "Instructor"), so every role string
// crossing the store boundary goes through NormalizeRole first.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleInstructor Role = "Instructor"
	RoleAdmin      Role = "Admin"
)

// NormalizeRole maps a raw role string onto the canonical enumeration,
// ignoring case. The boolean reports whether the input was a known role.
func NormalizeRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "student":
		return RoleStudent, true
	case "instructor":
		return RoleInstructor, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// User represents a registered account. Accounts are created on first
// sign-in, keyed by email, and never deleted.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	PhotoURL  string    `db:"photo_url" json:"photoURL,omitempty"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
