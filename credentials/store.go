// Package credentials is the single source of truth for "am I logged in, and
// as whom". It persists the bearer token and the user through a kvstore.Store
// and never mirrors either in memory.
package credentials

import (
	"context"
	"encoding/json"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/kvstore"
	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Persisted storage keys.
const (
	TokenKey = "access_token"
	UserKey  = "user"
)

var _ oauth2.TokenSource = (*Store)(nil)

type Store struct {
	kv      kvstore.Store
	nowFunc func() time.Time
}

type StoreOption func(*Store)

// WithNowFunc sets the clock used for expiry checks (primarily for testing)
func WithNowFunc(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFunc = now
	}
}

func New(kv kvstore.Store, options ...StoreOption) *Store {
	s := &Store{
		kv:      kv,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GetToken returns the stored bearer token. Storage failures read as absent.
func (s *Store) GetToken() (string, bool) {
	token, found, err := s.kv.Get(context.Background(), TokenKey)
	if err != nil {
		log.Debug().Err(err).Msg("Reading access token failed, treating as logged out")
		return "", false
	}
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// GetUser returns the stored user. A corrupt value is "no session", not an error.
func (s *Store) GetUser() (*users.User, bool) {
	raw, found, err := s.kv.Get(context.Background(), UserKey)
	if err != nil {
		log.Debug().Err(err).Msg("Reading stored user failed, treating as logged out")
		return nil, false
	}
	if !found || raw == "" {
		return nil, false
	}

	var user users.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Debug().Err(err).Msg("Stored user is not valid JSON, treating as logged out")
		return nil, false
	}
	if user.IsZero() {
		return nil, false
	}
	return &user, true
}

// IsAuthenticated is true only when both a token and a user are stored.
func (s *Store) IsAuthenticated() bool {
	if _, ok := s.GetToken(); !ok {
		return false
	}
	_, ok := s.GetUser()
	return ok
}

// SetSession persists token and user in one write.
func (s *Store) SetSession(token string, user *users.User) error {
	if token == "" || user.IsZero() {
		return errors.Wrapf(errors.ErrInvalidRequest, "[SetSession] token and user are both required")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrapf(err, "[SetSession] marshal user")
	}
	if err := s.kv.SetMany(context.Background(), map[string]string{
		TokenKey: token,
		UserKey:  string(data),
	}); err != nil {
		return errors.Wrapf(err, "[SetSession] persist session")
	}
	return nil
}

// RefreshUser replaces the stored user with user plus its tenant, keeping the
// token. It refuses to write when no token is stored so that a refresh racing
// a logout cannot leave a user without a token behind.
func (s *Store) RefreshUser(user users.User, tenant *tenants.Tenant) error {
	if _, ok := s.GetToken(); !ok {
		return errors.Wrapf(errors.ErrUnauthenticated, "[RefreshUser]")
	}
	if tenant == nil {
		tenant = user.Tenant
	}
	merged := user.WithTenant(tenant)
	if merged.IsZero() {
		return errors.Wrapf(errors.ErrInvalidRequest, "[RefreshUser] user is empty")
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return errors.Wrapf(err, "[RefreshUser] marshal user")
	}
	if err := s.kv.SetMany(context.Background(), map[string]string{UserKey: string(data)}); err != nil {
		return errors.Wrapf(err, "[RefreshUser] persist user")
	}
	return nil
}

// Clear removes both keys. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	if err := s.kv.Delete(context.Background(), TokenKey, UserKey); err != nil {
		return errors.Wrapf(err, "[Clear] delete session")
	}
	return nil
}

// Session returns a snapshot of the stored identity when authenticated.
func (s *Store) Session() (Session, bool) {
	token, ok := s.GetToken()
	if !ok {
		return Session{}, false
	}
	user, ok := s.GetUser()
	if !ok {
		return Session{}, false
	}
	expiry, _ := tokenExpiry(token)
	return Session{
		Token:     token,
		User:      user,
		Tenant:    user.Tenant,
		ExpiresAt: expiry,
	}, true
}

// Token implements oauth2.TokenSource over the stored bearer token.
func (s *Store) Token() (*oauth2.Token, error) {
	token, ok := s.GetToken()
	if !ok {
		return nil, errors.ErrNoToken
	}
	expiry, _ := tokenExpiry(token)
	return &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}

// TokenExpiry reads the exp claim when the token is a JWT.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token, ok := s.GetToken()
	if !ok {
		return time.Time{}, false
	}
	return tokenExpiry(token)
}

// TokenExpired reports whether a JWT token's exp has passed. Opaque tokens never expire here.
func (s *Store) TokenExpired() bool {
	expiry, ok := s.TokenExpiry()
	return ok && !s.nowFunc().Before(expiry)
}

// tokenExpiry parses without verifying: the client cannot check the signature
// and only uses exp as a hint. The server remains the authority.
func tokenExpiry(raw string) (time.Time, bool) {
	token, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
