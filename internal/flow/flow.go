// Package flow is the portal's screen state machine. The server tracks each
// session's current screen and only permits navigation along the edges
// defined here, so clients cannot deep-link into screens their session has
// not legitimately reached.
package flow

import (
	"errors"
	"fmt"
)

// Screen identifiers.
const (
	ScreenSplash    = "splash"
	ScreenLogin     = "login"
	ScreenSignup    = "signup"
	ScreenDashboard = "dashboard"
	ScreenComplaint = "complaint"
	ScreenTracking  = "tracking"
	ScreenHelpline  = "helpline"
	ScreenAdmin     = "admin"
)

// Navigation events.
const (
	EventOpenLogin     = "open_login"
	EventOpenSignup    = "open_signup"
	EventOpenAdmin     = "open_admin"
	EventLoginOK       = "login_ok"
	EventSignupOK      = "signup_ok"
	EventOpenComplaint = "open_complaint"
	EventOpenTracking  = "open_tracking"
	EventOpenHelpline  = "open_helpline"
	EventBack          = "back"
	EventLogout        = "logout"
)

// InitialScreen is where every new session starts.
const InitialScreen = ScreenSplash

// ErrBadNavigation is returned for an event the current screen has no edge
// for.
var ErrBadNavigation = errors.New("navigation not allowed")

var transitions = map[string]map[string]string{
	ScreenSplash: {
		EventOpenLogin:  ScreenLogin,
		EventOpenSignup: ScreenSignup,
		EventOpenAdmin:  ScreenAdmin,
	},
	ScreenLogin: {
		EventLoginOK:    ScreenDashboard,
		EventOpenSignup: ScreenSignup,
		EventBack:       ScreenSplash,
	},
	ScreenSignup: {
		EventSignupOK:  ScreenDashboard,
		EventOpenLogin: ScreenLogin,
		EventBack:      ScreenSplash,
	},
	ScreenDashboard: {
		EventOpenComplaint: ScreenComplaint,
		EventOpenTracking:  ScreenTracking,
		EventOpenHelpline:  ScreenHelpline,
		EventLogout:        ScreenSplash,
	},
	ScreenComplaint: {
		// After a successful submission the client jumps straight to the
		// tracking screen with the fresh code.
		EventOpenTracking: ScreenTracking,
		EventBack:         ScreenDashboard,
	},
	ScreenTracking: {
		EventBack: ScreenDashboard,
	},
	ScreenHelpline: {
		EventBack: ScreenDashboard,
	},
	ScreenAdmin: {
		EventLoginOK: ScreenAdmin,
		EventBack:    ScreenSplash,
		EventLogout:  ScreenSplash,
	},
}

// IsScreen reports whether the identifier names a known screen.
func IsScreen(screen string) bool {
	_, ok := transitions[screen]
	return ok
}

// CanNavigate reports whether the event is allowed from the screen.
func CanNavigate(from, event string) bool {
	_, ok := transitions[from][event]
	return ok
}

// Next returns the screen the event leads to from the current screen.
func Next(from, event string) (string, error) {
	to, ok := transitions[from][event]
	if !ok {
		return "", fmt.Errorf("%w: %s from %s", ErrBadNavigation, event, from)
	}
	return to, nil
}
