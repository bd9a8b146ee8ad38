package session

import (
	"strings"
	"time"

	"github.com/jrsteele09/go-summary-client/token/jwt"
)

// JoinedLayout renders a join date as DD-MM-YYYY at HH:mm.
const JoinedLayout = "02-01-2006 at 15:04"

// User is the identity carried by the access token. It is never fetched on its own.
type User struct {
	UserID     int64  `json:"user_id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	DateJoined int64  `json:"date_joined"`
}

func userFromClaims(c *jwt.Claims) *User {
	return &User{
		UserID:     c.UserID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		DateJoined: c.DateJoined,
	}
}

// FullName joins first and last name, skipping whichever is empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) JoinedAt() time.Time {
	return time.Unix(u.DateJoined, 0)
}

// FormatJoined renders the join date in loc using JoinedLayout.
func (u User) FormatJoined(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return u.JoinedAt().In(loc).Format(JoinedLayout)
}

// Snapshot is a copy of the session at one point in time. Changing it has no effect on the
// Manager that produced it.
type Snapshot struct {
	AccessToken  string
	RefreshToken string
	User         *User
	ExpiresAt    time.Time // zero when the access token has no exp
}

// Authenticated is true only for a complete, unexpired session. A token without a user (or
// a user without a token) counts as signed out.
func (s Snapshot) Authenticated(now time.Time) bool {
	return s.AccessToken != "" && s.User != nil && !s.Expired(now)
}

func (s Snapshot) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now)
}

// IsEmpty reports whether no session is held at all.
func (s Snapshot) IsEmpty() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == nil
}

func (s Snapshot) clone() Snapshot {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
