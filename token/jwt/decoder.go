package jwt

import (
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
)

// Decoder reads identity claims out of an access token without checking its signature.
// The gateway is the only authority on token validity.
type Decoder struct {
	parser *jwtlib.Parser
}

// NewDecoder returns a Decoder that never checks signatures.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwtlib.NewParser()}
}

// Decode returns a *errors.DecodeError for anything that is not a JWT carrying user_id and email.
func (d *Decoder) Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, &apperrors.DecodeError{Err: apperrors.ErrInvalidToken}
	}

	var tc accessTokenClaims
	if _, _, err := d.parser.ParseUnverified(rawToken, &tc); err != nil {
		return nil, &apperrors.DecodeError{Err: fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)}
	}

	claims, err := tc.toClaims()
	if err != nil {
		return nil, &apperrors.DecodeError{Err: fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)}
	}
	return claims, nil
}
