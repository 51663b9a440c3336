package session

// Route identifies a top-level screen group the router can replace to.
// The names match the navigation segments the mobile shell reports.
type Route string

const (
	RouteOnboarding     Route = "onboarding"
	RouteLogin          Route = "login"
	RouteRegister       Route = "register"
	RouteForgotPassword Route = "forgot-password"
	RouteVerifyOTP      Route = "verify-otp"
	// RouteMain is the authenticated tab shell.
	RouteMain Route = "(tabs)"
)

// authSegments are the screens an unauthenticated user may occupy
// without being redirected to login.
var authSegments = map[string]bool{
	string(RouteLogin):          true,
	string(RouteRegister):       true,
	string(RouteForgotPassword): true,
	string(RouteVerifyOTP):      true,
}

// mainSegments are the screens an authenticated, verified user may
// occupy without being redirected to the tab shell.
var mainSegments = map[string]bool{
	string(RouteMain): true,
	"settings":        true,
	"ride":            true,
}

// Decision is the outcome of evaluating a snapshot against the current
// segment: either stay put, or replace-navigate to Target. VerifyOTP
// targets carry the email the verification screen needs.
type Decision struct {
	Stay   bool
	Target Route
	Email  string
}

// Stay is the no-op decision.
var Stay = Decision{Stay: true}

// Goto builds a redirect decision.
func Goto(target Route) Decision {
	return Decision{Target: target}
}
