package domain

const LoginRoute = "/login"

// landingRoutes maps each role to the page it lands on after sign-in.
var landingRoutes = map[Role]string{
	RoleCandidate: "/candidate/dashboard",
	RoleHR:        "/hr/dashboard",
	RoleAdmin:     "/",
}

// LandingRoute returns the default route for role. Unknown roles land on the
// login page.
func LandingRoute(role Role) string {
	if r, ok := landingRoutes[role]; ok {
		return r
	}
	return LoginRoute
}

// RouteRule describes the access requirements of a route.
type RouteRule struct {
	RequiresAuth bool
	AllowedRoles []Role
}

// Decision is the outcome of evaluating a RouteRule.
type Decision struct {
	Allow      bool
	RedirectTo string
	Reason     string
}

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonWrongRole       = "wrong_role"
)

// Decide evaluates rule against the current user (nil when signed out).
// Rules apply in order: missing session, then role membership.
func Decide(rule RouteRule, user *User) Decision {
	if rule.RequiresAuth && user == nil {
		return Decision{RedirectTo: LoginRoute, Reason: ReasonUnauthenticated}
	}

	if len(rule.AllowedRoles) > 0 && user != nil && !roleIn(user.Role, rule.AllowedRoles) {
		return Decision{RedirectTo: LandingRoute(user.Role), Reason: ReasonWrongRole}
	}

	return Decision{Allow: true}
}

func roleIn(role Role, set []Role) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}
