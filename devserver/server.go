package devserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-summary-client/devserver/summaryrepo"
	"github.com/jrsteele09/go-summary-client/internal/config"
	"github.com/jrsteele09/go-summary-client/token/jwt"
	"github.com/jrsteele09/go-summary-client/token/refresh"
	"github.com/jrsteele09/go-summary-client/users"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Repos holds the gateway's storage.
type Repos struct {
	Users         users.UserRepo
	Summaries     summaryrepo.Repo
	RefreshTokens refresh.Repo
}

// Server is a local stand-in for the summary API Gateway. It speaks the same HTTP contract
// as the real one but summarizes by keeping leading sentences.
type Server struct {
	env       string
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	repos     Repos
	tokens    *jwt.Creator
	refreshes *refresh.Manager
}

// New builds the gateway and registers its routes. It fails without a JWT secret or with a
// missing repo.
func New(cfg config.Config, repos Repos) (*Server, error) {
	if cfg.GetJWTSecret() == "" {
		return nil, fmt.Errorf("[Server New] JWT_SECRET is required")
	}
	if repos.Users == nil || repos.Summaries == nil || repos.RefreshTokens == nil {
		return nil, fmt.Errorf("[Server New] all repos are required")
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		repos:     repos,
		tokens:    jwt.NewCreator(cfg.GetJWTSecret(), cfg.GetAccessTokenExpiry()),
		refreshes: refresh.NewManager(repos.RefreshTokens, cfg.GetRefreshTokenExpiry()),
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		logRoute(method, path)
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}
