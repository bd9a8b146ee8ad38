package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Client talks to the summary API Gateway. A Client made by NewClient can only call the
// unauthenticated endpoints; WithTokenSource returns one that can call the rest.
type Client struct {
	baseURL     string
	http        *http.Client
	authHTTP    *http.Client
	validate    *validator.Validate
	invalidator *invalidator
}

// NewClient returns an anonymous client for the gateway at baseURL. Authenticated calls need
// WithTokenSource.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[api NewClient] invalid base url %q", baseURL)
	}
	return &Client{
		baseURL:     u.String(),
		http:        &http.Client{Timeout: timeout},
		validate:    newValidator(),
		invalidator: newInvalidator(),
	}, nil
}

// WithTokenSource returns a Client that sends ts's access token as a bearer credential.
// Both clients share their invalidation subscribers.
//
// The source is used directly rather than through oauth2.ReuseTokenSource so a logout is
// seen by the very next request.
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	authed := *c
	authed.authHTTP = &http.Client{
		Timeout:   c.http.Timeout,
		Transport: &oauth2.Transport{Source: ts, Base: c.http.Transport},
	}
	return &authed
}

// BaseURL returns the gateway root every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// statusError is a non-2xx gateway response.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.status, e.message)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	if body == nil {
		return c.newRequest(ctx, method, path, nil, "")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", path, err)
	}
	return c.newRequest(ctx, method, path, bytes.NewReader(payload), "application/json")
}

// send runs req and decodes a 2xx JSON body into out (when out is non-nil).
// Anything else comes back as a *statusError or a transport error.
func (c *Client) send(hc *http.Client, req *http.Request, out any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.Debug().Str("method", req.Method).Str("url", req.URL.Path).Int("status", resp.StatusCode).Msg("gateway call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{status: resp.StatusCode, message: errorMessage(body)}
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sendAuthenticated is send through the bearer transport.
func (c *Client) sendAuthenticated(req *http.Request, out any) error {
	if c.authHTTP == nil {
		return apperrors.ErrNotAuthenticated
	}
	return c.send(c.authHTTP, req, out)
}

// errorMessage pulls the human readable text out of a gateway error body. The gateway uses
// "error" on auth endpoints, "message" on summary endpoints and "detail" for framework errors.
func errorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"error", "message", "detail"} {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func statusSentinel(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return apperrors.ErrInvalidRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.ErrNotAuthenticated
	case status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case status == http.StatusConflict:
		return apperrors.ErrUserExists
	default:
		return apperrors.ErrInternal
	}
}

// authError maps a failed auth endpoint call to an AuthenticationError.
func authError(err error) error {
	var se *statusError
	if errors.As(err, &se) {
		sentinel := statusSentinel(se.status)
		if se.status == http.StatusUnauthorized {
			sentinel = apperrors.ErrInvalidCredentials
		}
		return apperrors.NewAuthenticationError(se.message, sentinel)
	}
	return apperrors.NewAuthenticationError("", err)
}

// upstreamError maps a failed summary endpoint call to an UpstreamError. Session errors from
// the token source are passed through so callers can send the user back to login.
func upstreamError(op string, err error) error {
	if errors.Is(err, apperrors.ErrNotAuthenticated) || errors.Is(err, apperrors.ErrTokenExpired) {
		return apperrors.Wrapf(err, op)
	}
	var se *statusError
	if errors.As(err, &se) {
		return &apperrors.UpstreamError{Op: op, Status: se.status, Message: se.message, Err: statusSentinel(se.status)}
	}
	return &apperrors.UpstreamError{Op: op, Err: err}
}
