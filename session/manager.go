package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jrsteele09/go-summary-client/api"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
	"github.com/jrsteele09/go-summary-client/token"
	"github.com/jrsteele09/go-summary-client/token/jwt"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const expiredAtLoginMessage = "The server issued an expired session. Please try again."

// TokenIssuer exchanges credentials for a token pair at the gateway.
type TokenIssuer interface {
	IssueToken(ctx context.Context, creds api.Credentials) (api.TokenPair, error)
}

var _ oauth2.TokenSource = (*Manager)(nil)

// Manager owns the process's session. Login and Logout are the only writers; everything
// else reads copies through Snapshot.
type Manager struct {
	issuer  TokenIssuer
	repo    token.Repo
	decoder *jwt.Decoder

	lock  sync.RWMutex
	state Snapshot
}

// NewManager returns a Manager with an empty session. Call Restore to load a stored one.
// A nil decoder means jwt.NewDecoder().
func NewManager(issuer TokenIssuer, repo token.Repo, decoder *jwt.Decoder) *Manager {
	if decoder == nil {
		decoder = jwt.NewDecoder()
	}
	return &Manager{
		issuer:  issuer,
		repo:    repo,
		decoder: decoder,
	}
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state.clone()
}

// Login authenticates against the gateway, persists the token pair and then replaces the
// in-memory session. On any failure the session is left as it was and the error is an
// *errors.AuthenticationError. An access token that has already expired counts as a failure.
//
// The token write runs detached from ctx so a caller that gives up after the gateway
// answered does not leave storage and memory out of step.
func (m *Manager) Login(ctx context.Context, email, password string) (Snapshot, error) {
	pair, err := m.issuer.IssueToken(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		var authErr *apperrors.AuthenticationError
		if errors.As(err, &authErr) {
			return m.Snapshot(), err
		}
		return m.Snapshot(), apperrors.NewAuthenticationError("", err)
	}

	claims, err := m.decoder.Decode(pair.Access)
	if err != nil {
		log.Err(err).Str("email", email).Msg("Login: gateway issued an access token that could not be decoded")
		return m.Snapshot(), apperrors.NewAuthenticationError("", err)
	}
	if claims.Expired(NowTimeFunc()) {
		log.Warn().Time("expired_at", claims.ExpiresAt).Str("email", email).Msg("Login: gateway issued an access token that has already expired")
		return m.Snapshot(), apperrors.NewAuthenticationError(expiredAtLoginMessage, apperrors.ErrTokenExpired)
	}

	next := Snapshot{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		User:         userFromClaims(claims),
		ExpiresAt:    claims.ExpiresAt,
	}
	record := token.Record{AccessToken: pair.Access, RefreshToken: pair.Refresh}
	if err := m.repo.Save(context.WithoutCancel(ctx), record); err != nil {
		log.Err(err).Msg("Login: failed to persist tokens")
		return m.Snapshot(), apperrors.NewAuthenticationError("Could not save your session", err)
	}

	m.lock.Lock()
	m.state = next
	m.lock.Unlock()

	log.Info().Int64("user_id", next.User.UserID).Msg("Logged in")
	return next.clone(), nil
}

// Logout clears memory and storage. It is safe to call with no session. Memory is always
// cleared; a storage failure is still returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.lock.Lock()
	m.state = Snapshot{}
	m.lock.Unlock()

	if err := m.repo.Clear(context.WithoutCancel(ctx)); err != nil {
		return apperrors.Wrapf(err, "[Manager Logout] clear tokens")
	}
	return nil
}

// Restore loads the persisted record once at start-up. A record that cannot be read,
// decoded or that has expired is cleared and the session stays empty; the reason is logged,
// not returned. An error is only returned when the bad record could not be cleared.
func (m *Manager) Restore(ctx context.Context) (Snapshot, error) {
	record, err := m.repo.Load(ctx)
	if err != nil {
		log.Err(err).Msg("Restore: token record unreadable")
		return m.discard(ctx)
	}
	if record.AccessToken == "" {
		if !record.IsEmpty() {
			log.Warn().Msg("Restore: refresh token without access token")
			return m.discard(ctx)
		}
		return m.Snapshot(), nil
	}

	claims, err := m.decoder.Decode(record.AccessToken)
	if err != nil {
		log.Err(err).Msg("Restore: stored access token is invalid")
		return m.discard(ctx)
	}
	if claims.Expired(NowTimeFunc()) {
		log.Info().Time("expired_at", claims.ExpiresAt).Msg("Restore: stored access token has expired")
		return m.discard(ctx)
	}

	m.lock.Lock()
	m.state = Snapshot{
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		User:         userFromClaims(claims),
		ExpiresAt:    claims.ExpiresAt,
	}
	snap := m.state.clone()
	m.lock.Unlock()

	log.Debug().Int64("user_id", snap.User.UserID).Msg("Session restored")
	return snap, nil
}

func (m *Manager) discard(ctx context.Context) (Snapshot, error) {
	if err := m.Logout(ctx); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{}, nil
}

// Token hands the current access token to oauth2.Transport. An expired token ends the
// session before it is ever sent.
func (m *Manager) Token() (*oauth2.Token, error) {
	snap := m.Snapshot()
	if !snap.Authenticated(NowTimeFunc()) {
		if snap.AccessToken != "" && snap.Expired(NowTimeFunc()) {
			m.expire(snap.AccessToken)
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrNotAuthenticated
	}
	return &oauth2.Token{
		AccessToken:  snap.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: snap.RefreshToken,
		Expiry:       snap.ExpiresAt,
	}, nil
}

// expire resets the session if it still holds accessToken. A newer login is left alone.
func (m *Manager) expire(accessToken string) {
	m.lock.Lock()
	if m.state.AccessToken != accessToken {
		m.lock.Unlock()
		return
	}
	m.state = Snapshot{}
	m.lock.Unlock()

	log.Info().Msg("Access token expired, session ended")
	if err := m.repo.Clear(context.Background()); err != nil {
		log.Err(err).Msg("Failed to clear expired tokens")
	}
}
