package routes

import (
	"time"

	"github.com/jrsteele09/go-summary-client/session"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Outcome is the guard's verdict on a navigation.
type Outcome int

const (
	Allowed Outcome = iota
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// NotAuthorizedMessage is shown in place of a protected view when nobody is signed in.
const NotAuthorizedMessage = "You are not authorized to view this page. Please log in."

// Decision is the result of authorizing one route.
type Decision struct {
	Route   Route
	Outcome Outcome
	// RedirectTo is where a denied caller should send the user.
	RedirectTo Route
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allowed
}

// Authorize decides whether route may render for the given session. It does no I/O and looks
// at nothing but the session: Login and Register are always allowed, every other view needs an
// authenticated, unexpired session. Summary ids are checked by the API client, not here.
func Authorize(route Route, snap session.Snapshot, now time.Time) Decision {
	if route.View.Public() {
		return Decision{Route: route, Outcome: Allowed}
	}
	if !snap.Authenticated(now) {
		return Decision{Route: route, Outcome: Denied, RedirectTo: Login()}
	}
	return Decision{Route: route, Outcome: Allowed}
}

// SnapshotProvider is satisfied by *session.Manager.
type SnapshotProvider interface {
	Snapshot() session.Snapshot
}

// Guard checks routes against the live session.
type Guard struct {
	sessions SnapshotProvider
}

// NewGuard returns a Guard that reads the session from sessions on every call.
func NewGuard(sessions SnapshotProvider) *Guard {
	return &Guard{sessions: sessions}
}

// Authorize checks route against the current session and logs refusals at debug level.
func (g *Guard) Authorize(route Route) Decision {
	d := Authorize(route, g.sessions.Snapshot(), NowTimeFunc())
	if d.Outcome != Allowed {
		log.Debug().Str("route", route.Path()).Stringer("outcome", d.Outcome).Msg("Route guard refused navigation")
	}
	return d
}
