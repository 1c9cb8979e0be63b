package auth

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps caller-supplied input onto the closed role set. Unrecognized
// values are rejected here rather than left to the database enum.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	switch role {
	case RoleStudent, RoleCompany, RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
	}
}

// User is the domain representation of an account. It mirrors the users table
// and carries no JSON annotations so it can be reused by different
// presentation layers.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// RegisterRequest contains registration data supplied by callers. FullName is
// consumed for student signups, CompanyName and Website for company signups.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FullName    string `json:"fullName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Website     string `json:"website,omitempty"`
}

// LoginRequest contains user login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult bundles the signed token and role returned after a successful
// login. The role is echoed so the client can pick its home route without
// decoding the token.
type LoginResult struct {
	Token string
	Role  Role
}
