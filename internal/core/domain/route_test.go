package domain

import "testing"

func TestDecide_RequiresAuthWithoutUserRedirectsToLogin(t *testing.T) {
	roleSets := [][]Role{
		nil,
		{},
		{RoleCandidate},
		{RoleHR},
		{RoleCandidate, RoleHR, RoleAdmin},
	}

	for _, roles := range roleSets {
		d := Decide(RouteRule{RequiresAuth: true, AllowedRoles: roles}, nil)
		if d.Allow {
			t.Fatalf("roles %v: expected redirect, got allow", roles)
		}
		if d.RedirectTo != LoginRoute {
			t.Fatalf("roles %v: expected %s, got %s", roles, LoginRoute, d.RedirectTo)
		}
		if d.Reason != ReasonUnauthenticated {
			t.Fatalf("roles %v: unexpected reason %q", roles, d.Reason)
		}
	}
}

func TestDecide_WrongRoleRedirectsToOwnLanding(t *testing.T) {
	cases := []struct {
		role    Role
		allowed []Role
		want    string
	}{
		{RoleCandidate, []Role{RoleHR}, "/candidate/dashboard"},
		{RoleHR, []Role{RoleCandidate}, "/hr/dashboard"},
		{RoleAdmin, []Role{RoleCandidate, RoleHR}, "/"},
	}

	for _, tc := range cases {
		d := Decide(RouteRule{RequiresAuth: true, AllowedRoles: tc.allowed}, &User{ID: "1", Role: tc.role})
		if d.Allow {
			t.Fatalf("%s: expected redirect", tc.role)
		}
		if d.RedirectTo != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.role, tc.want, d.RedirectTo)
		}
		if d.Reason != ReasonWrongRole {
			t.Fatalf("%s: unexpected reason %q", tc.role, d.Reason)
		}
	}
}

func TestDecide_Allows(t *testing.T) {
	hr := &User{ID: "7", Role: RoleHR}

	if d := Decide(RouteRule{RequiresAuth: true, AllowedRoles: []Role{RoleHR}}, hr); !d.Allow {
		t.Fatalf("expected allow for matching role, got %+v", d)
	}
	if d := Decide(RouteRule{RequiresAuth: true}, hr); !d.Allow {
		t.Fatalf("expected allow without role restriction, got %+v", d)
	}
	if d := Decide(RouteRule{}, nil); !d.Allow {
		t.Fatalf("expected public route to allow anonymous, got %+v", d)
	}
	// Role sets only apply once someone is signed in.
	if d := Decide(RouteRule{AllowedRoles: []Role{RoleHR}}, nil); !d.Allow {
		t.Fatalf("expected allow for anonymous on optional-auth route, got %+v", d)
	}
}

func TestLandingRoute_UnknownRole(t *testing.T) {
	if got := LandingRoute(Role("guest")); got != LoginRoute {
		t.Fatalf("expected %s, got %s", LoginRoute, got)
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("hr"); err != nil || r != RoleHR {
		t.Fatalf("expected hr, got %q %v", r, err)
	}
	if _, err := ParseRole("root"); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
