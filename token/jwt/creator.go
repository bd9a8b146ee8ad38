package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator signs and verifies HS256 access tokens in the layout the gateway issues.
type Creator struct {
	secret []byte
	expiry time.Duration
}

// NewCreator creates a new JWT creator. An expiry of zero issues tokens without exp.
func NewCreator(secret string, expiry time.Duration) *Creator {
	return &Creator{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// CreateAccessToken creates a signed access token carrying the user's identity claims
func (c *Creator) CreateAccessToken(claims Claims) (*string, error) {
	now := NowTimeFunc()
	mc := jwtlib.MapClaims{
		"token_type":  "access",
		"user_id":     claims.UserID,
		"firstName":   claims.FirstName,
		"lastName":    claims.LastName,
		"email":       claims.Email,
		"date_joined": claims.DateJoined, // unix seconds
		"iat":         now.Unix(),
		"jti":         uuid.New().String(),
	}
	if c.expiry > 0 {
		mc["exp"] = now.Add(c.expiry).Unix()
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, mc).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return &signed, nil
}

// Verify checks the signature and expiry of a token created by this Creator.
func (c *Creator) Verify(rawToken string) (*Claims, error) {
	var tc accessTokenClaims
	_, err := jwtlib.ParseWithClaims(rawToken, &tc, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(NowTimeFunc))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	return tc.toClaims()
}
