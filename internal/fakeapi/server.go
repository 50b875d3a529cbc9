// Package fakeapi is an in-memory stand-in for the intelligence platform's
// REST backend. The CLI's mock-server command and the api tests run it.
package fakeapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-ukci-client/companies"
	fakecompanyrepo "github.com/jrsteele09/go-ukci-client/companies/repofake"
	"github.com/jrsteele09/go-ukci-client/crm"
	fakecrmrepo "github.com/jrsteele09/go-ukci-client/crm/repofake"
	"github.com/jrsteele09/go-ukci-client/internal/config"
	"github.com/jrsteele09/go-ukci-client/tenants"
	tenantrepofakes "github.com/jrsteele09/go-ukci-client/tenants/repofakes"
	"github.com/jrsteele09/go-ukci-client/users"
	fakeuserrepo "github.com/jrsteele09/go-ukci-client/users/repofake"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PathPrefix is where the API is mounted, matching the default api.baseURL.
const PathPrefix = "/api"

// Config is the part of config.Config the mock backend reads.
type Config interface {
	config.EnvConfig
	config.MockConfig
}

// Repos holds the backend's storage.
type Repos struct {
	Users      users.UserRepo
	Tenants    tenants.Repo
	Companies  companies.CompanyRepo
	Monitoring companies.MonitoringRepo
	Alerts     companies.AlertRepo
	CRM        crm.Repo
}

// NewFakeRepos returns empty in-memory repos stamped with the given clock.
func NewFakeRepos(nowFunc func() time.Time) Repos {
	return Repos{
		Users:      fakeuserrepo.NewFakeUserRepo(fakeuserrepo.WithNowFunc(nowFunc)),
		Tenants:    tenantrepofakes.NewFakeTenantRepo(),
		Companies:  fakecompanyrepo.NewFakeCompanyRepo(),
		Monitoring: fakecompanyrepo.NewFakeMonitoringRepo(),
		Alerts:     fakecompanyrepo.NewFakeAlertRepo(),
		CRM:        fakecrmrepo.NewFakeCRMRepo(),
	}
}

type Server struct {
	env     string
	router  *mux.Router
	api     *mux.Router
	routes  []string
	repos   Repos
	tokens  *tokenIssuer
	nowFunc func() time.Time
}

type Option func(*Server)

// WithNowFunc sets the clock used for token issue and record timestamps (primarily for testing)
func WithNowFunc(now func() time.Time) Option {
	return func(s *Server) {
		s.nowFunc = now
	}
}

// WithRepos replaces the default in-memory repos.
func WithRepos(repos Repos) Option {
	return func(s *Server) {
		s.repos = repos
	}
}

// New builds a seeded mock backend.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[fakeapi New] config is required")
	}
	s := &Server{
		env:     cfg.GetEnv(),
		router:  mux.NewRouter(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.repos.Users == nil {
		s.repos = NewFakeRepos(s.nowFunc)
	}
	s.tokens = newTokenIssuer(cfg.GetMockJWTSecret(), cfg.GetMockTokenExpiry(), s.nowFunc)
	s.api = s.router.PathPrefix(PathPrefix).Subrouter()

	if err := s.Seed(); err != nil {
		return nil, errors.Wrap(err, "[fakeapi New] seed")
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Repos exposes the backing storage, for tests and seeding.
func (s *Server) Repos() Repos {
	return s.repos
}

// IssueToken signs a bearer token for user, as a successful login would.
func (s *Server) IssueToken(user *users.User) (string, error) {
	return s.tokens.Issue(user)
}

func (s *Server) RegisterRouteFunc(method, pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, method+" "+PathPrefix+pattern)
	s.api.HandleFunc(pattern, handler).Methods(method)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("Registered mock route")
	}
}
