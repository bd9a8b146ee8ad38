package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jrsteele09/go-summary-client/api"
	"github.com/jrsteele09/go-summary-client/internal/config"
	"github.com/jrsteele09/go-summary-client/routes"
	"github.com/jrsteele09/go-summary-client/session"
	"github.com/jrsteele09/go-summary-client/token"
	"github.com/jrsteele09/go-summary-client/token/filestore"
	"github.com/jrsteele09/go-summary-client/token/jwt"
	"github.com/jrsteele09/go-summary-client/token/redisstore"
	"github.com/rs/zerolog/log"
)

var errNotAuthorized = errors.New(routes.NotAuthorizedMessage)

// app is everything a command needs: the restored session, the gateway clients and the
// route guard.
type app struct {
	cfg     config.Config
	out     io.Writer
	in      *bufio.Reader
	session *session.Manager
	client  *api.Client // unauthenticated endpoints
	authed  *api.Client // bearer endpoints
	guard   *routes.Guard
	closeFn func()

	stale map[api.Resource]bool
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer, in io.Reader) (*app, error) {
	repo, closeFn, err := openTokenRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(cfg.GetAPIBaseURL(), cfg.GetAPITimeout())
	if err != nil {
		closeFn()
		return nil, err
	}

	mgr := session.NewManager(client, repo, jwt.NewDecoder())
	if _, err := mgr.Restore(ctx); err != nil {
		log.Err(err).Msg("Could not clear the stored session")
	}

	a := &app{
		cfg:     cfg,
		out:     out,
		in:      bufio.NewReader(in),
		session: mgr,
		client:  client,
		authed:  client.WithTokenSource(mgr),
		guard:   routes.NewGuard(mgr),
		closeFn: closeFn,
		stale:   make(map[api.Resource]bool),
	}
	client.OnInvalidate(func(r api.Resource) {
		a.stale[r] = true
	})
	return a, nil
}

// Close releases the token store. It is safe to call more than once.
func (a *app) Close() {
	if a.closeFn != nil {
		a.closeFn()
		a.closeFn = nil
	}
}

// openTokenRepo can be overridden in tests.
var openTokenRepo = newTokenRepo

// newTokenRepo opens the token store named by TOKEN_STORE.
func newTokenRepo(ctx context.Context, cfg config.StorageConfig) (token.Repo, func(), error) {
	switch cfg.GetTokenStore() {
	case config.TokenStoreRedis:
		client, err := redisstore.NewClient(ctx, cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetRedisDB())
		if err != nil {
			return nil, nil, fmt.Errorf("token store: %w", err)
		}
		return redisstore.New(client, cfg.GetRedisKeyPrefix()), func() { _ = client.Close() }, nil
	default:
		store, err := filestore.New(cfg.GetTokenFile())
		if err != nil {
			return nil, nil, fmt.Errorf("token store: %w", err)
		}
		return store, func() {}, nil
	}
}

// authorize runs the route guard for the view a command is about to show.
func (a *app) authorize(route routes.Route) error {
	if !a.guard.Authorize(route).Allowed() {
		return errNotAuthorized
	}
	return nil
}

// flagOrPrompt returns value, or asks for it when it is empty.
func (a *app) flagOrPrompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return prompt(a.in, a.out, label)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
