package errors

import (
	"errors"
	"fmt"
)

// DefaultMessage is shown when the gateway gives no usable error text.
const DefaultMessage = "An error occurred"

// Common error types for the summary client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnsupported    = errors.New("unsupported operation")

	// Gateway errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
)

// AuthenticationError is returned when login or registration fails, either because the
// gateway rejected the request or because it could not be reached.
type AuthenticationError struct {
	Message string
	Err     error
}

// NewAuthenticationError builds an AuthenticationError, using DefaultMessage when message is blank.
func NewAuthenticationError(message string, err error) *AuthenticationError {
	if message == "" {
		message = DefaultMessage
	}
	return &AuthenticationError{Message: message, Err: err}
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// DecodeError means an access token could not be turned into identity claims.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode access token: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UpstreamError is any non-authentication gateway call that failed.
// Status is zero when no HTTP response was received.
type UpstreamError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultMessage
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
