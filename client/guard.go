package client

import "pims/auth"

// Route paths the guard redirects to.
const (
	LoginPath       = "/auth/login"
	StudentHomePath = "/dashboard/student"
	CompanyHomePath = "/dashboard/company"
	AdminHomePath   = "/dashboard/admin"
)

// Decision is the outcome of a guard evaluation: either render, or redirect.
type Decision struct {
	Ready    bool
	Redirect string
}

// HomeFor returns the canonical home route for a role.
func HomeFor(role auth.Role) string {
	switch role {
	case auth.RoleStudent:
		return StudentHomePath
	case auth.RoleCompany:
		return CompanyHomePath
	case auth.RoleAdmin:
		return AdminHomePath
	default:
		return LoginPath
	}
}

// Guard decides whether a view requiring the given role may render for the
// stored session. Callers re-evaluate on every navigation, not just once:
// no session redirects to login, a role mismatch redirects to the stored
// role's own home, and a match renders. The stored token is trusted
// optimistically; an expired one is only discovered when a request fails.
func Guard(session Session, requiredRole auth.Role) Decision {
	if session.Empty() {
		return Decision{Redirect: LoginPath}
	}
	if session.Role != requiredRole {
		return Decision{Redirect: HomeFor(session.Role)}
	}
	return Decision{Ready: true}
}
