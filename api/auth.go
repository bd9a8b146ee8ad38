package api

import (
	"context"
	"net/http"

	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
)

const (
	pathToken    = "auth/token/"
	pathRegister = "auth/register/"
)

// IssueToken exchanges credentials for a token pair. Every failure, including an invalid
// form that never reaches the network, is an *errors.AuthenticationError.
func (c *Client) IssueToken(ctx context.Context, creds Credentials) (TokenPair, error) {
	if err := c.validate.Struct(creds); err != nil {
		return TokenPair{}, apperrors.NewAuthenticationError(validationMessage(err), apperrors.ErrInvalidRequest)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, pathToken, creds)
	if err != nil {
		return TokenPair{}, apperrors.NewAuthenticationError("", err)
	}
	var pair TokenPair
	if err := c.send(c.http, req, &pair); err != nil {
		return TokenPair{}, authError(err)
	}
	if pair.Access == "" {
		return TokenPair{}, apperrors.NewAuthenticationError("", apperrors.ErrInvalidToken)
	}
	return pair, nil
}

// Register creates an account and returns the gateway's confirmation message.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (string, error) {
	if err := c.validate.Struct(r); err != nil {
		return "", apperrors.NewAuthenticationError(validationMessage(err), apperrors.ErrInvalidRequest)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, pathRegister, r)
	if err != nil {
		return "", apperrors.NewAuthenticationError("", err)
	}
	var resp MessageResponse
	if err := c.send(c.http, req, &resp); err != nil {
		return "", authError(err)
	}
	return resp.Message, nil
}
