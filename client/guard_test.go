package client

import (
	"testing"

	"pims/auth"
)

func TestGuard_NoSessionRedirectsToLogin(t *testing.T) {
	decision := Guard(Session{}, auth.RoleStudent)
	if decision.Ready {
		t.Fatal("guard must not render without a session")
	}
	if decision.Redirect != LoginPath {
		t.Fatalf("expected redirect to %s, got %s", LoginPath, decision.Redirect)
	}
}

func TestGuard_RoleMismatchRedirectsToOwnHome(t *testing.T) {
	cases := []struct {
		stored   auth.Role
		required auth.Role
		home     string
	}{
		{auth.RoleStudent, auth.RoleCompany, StudentHomePath},
		{auth.RoleStudent, auth.RoleAdmin, StudentHomePath},
		{auth.RoleCompany, auth.RoleStudent, CompanyHomePath},
		{auth.RoleCompany, auth.RoleAdmin, CompanyHomePath},
		{auth.RoleAdmin, auth.RoleStudent, AdminHomePath},
		{auth.RoleAdmin, auth.RoleCompany, AdminHomePath},
	}

	for _, tc := range cases {
		session := Session{Token: "stored-token", Role: tc.stored}
		decision := Guard(session, tc.required)
		if decision.Ready {
			t.Fatalf("role %s must not render a %s page", tc.stored, tc.required)
		}
		if decision.Redirect != tc.home {
			t.Fatalf("role %s on %s page: expected redirect %s, got %s",
				tc.stored, tc.required, tc.home, decision.Redirect)
		}
	}
}

func TestGuard_MatchRenders(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleStudent, auth.RoleCompany, auth.RoleAdmin} {
		decision := Guard(Session{Token: "stored-token", Role: role}, role)
		if !decision.Ready || decision.Redirect != "" {
			t.Fatalf("role %s on its own page: expected ready, got %+v", role, decision)
		}
	}
}

func TestGuard_IsDeterministic(t *testing.T) {
	session := Session{Token: "stored-token", Role: auth.RoleStudent}
	first := Guard(session, auth.RoleAdmin)
	for i := 0; i < 10; i++ {
		if Guard(session, auth.RoleAdmin) != first {
			t.Fatal("guard decisions must be deterministic across re-evaluations")
		}
	}
}
