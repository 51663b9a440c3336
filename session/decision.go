package session

// Decide maps a snapshot plus the current navigation segment to a routing
// decision. It is pure and total: the same inputs always yield the same
// decision, and no input panics. Rules are ordered, first match wins,
// encoding the priority onboarding > authentication > verification >
// route confinement.
//
// Onboarding wins even over a valid verified session. The loader promotes
// the onboarding flag for verified users, so that branch mostly catches
// fresh installs with a pre-seeded token (e.g. restored from a device
// backup).
func Decide(snap Snapshot, segment string) Decision {
	// Rule 1: onboarding not known-complete.
	if snap.Onboarding != True {
		if segment == string(RouteOnboarding) {
			return Stay
		}
		return Goto(RouteOnboarding)
	}

	// Rule 2: no cached user. Auth screens are allowed; anything else
	// redirects to login.
	if snap.CachedUser == nil {
		if authSegments[segment] {
			return Stay
		}
		return Goto(RouteLogin)
	}

	// Rule 3: cached user pending email verification.
	if !snap.CachedUser.IsVerified {
		if segment == string(RouteVerifyOTP) {
			return Stay
		}
		if snap.CachedUser.Email == "" {
			// Malformed cache entry: an unverified user with no email
			// cannot be routed to verification. Degrade to login.
			if authSegments[segment] {
				return Stay
			}
			return Goto(RouteLogin)
		}
		d := Goto(RouteVerifyOTP)
		d.Email = snap.CachedUser.Email
		return d
	}

	// Rule 4: verified session confined to the authenticated routes.
	if mainSegments[segment] {
		return Stay
	}
	return Goto(RouteMain)
}
