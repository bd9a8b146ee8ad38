package jwt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims are the identity claims an access token carries about its user.
type Claims struct {
	UserID     int64
	FirstName  string
	LastName   string
	Email      string
	DateJoined int64     // unix seconds
	ExpiresAt  time.Time // zero when the token has no exp claim
}

// Expired reports whether the token's exp is at or before now. Tokens without exp never expire.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// accessTokenClaims is the wire layout of the access token payload.
type accessTokenClaims struct {
	UserID     *numericClaim `json:"user_id,omitempty"`
	FirstName  string        `json:"firstName,omitempty"`
	LastName   string        `json:"lastName,omitempty"`
	Email      string        `json:"email,omitempty"`
	DateJoined numericClaim  `json:"date_joined,omitempty"`
	jwtlib.RegisteredClaims
}

func (c *accessTokenClaims) toClaims() (*Claims, error) {
	if c.UserID == nil {
		return nil, fmt.Errorf("missing user_id claim")
	}
	if c.Email == "" {
		return nil, fmt.Errorf("missing email claim")
	}
	claims := &Claims{
		UserID:     int64(*c.UserID),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		DateJoined: int64(c.DateJoined),
	}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return claims, nil
}

// numericClaim accepts a JSON number (integer or float) or a quoted integer.
type numericClaim int64

func (n *numericClaim) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("numeric claim %q: %w", s, err)
		}
		*n = numericClaim(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = numericClaim(int64(f))
	return nil
}

func (n numericClaim) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}
