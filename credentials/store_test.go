package credentials_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-ukci-client/credentials"
	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/kvstore"
	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/stretchr/testify/require"
)

var testUser = &users.User{ID: "1", Email: "a@b.com", Role: users.RoleSalesRep}

func newStore(t *testing.T) (*credentials.Store, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	return credentials.New(kv), kv
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestStore_EmptyIsLoggedOut(t *testing.T) {
	s, _ := newStore(t)

	_, ok := s.GetToken()
	require.False(t, ok)
	_, ok = s.GetUser()
	require.False(t, ok)
	require.False(t, s.IsAuthenticated())

	_, err := s.Token()
	require.ErrorIs(t, err, errors.ErrNoToken)
}

func TestStore_SetSession(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.SetSession("T1", testUser))

	token, ok := s.GetToken()
	require.True(t, ok)
	require.Equal(t, "T1", token)

	user, ok := s.GetUser()
	require.True(t, ok)
	require.Equal(t, testUser.Email, user.Email)
	require.True(t, s.IsAuthenticated())

	t.Run("rejects partial sessions", func(t *testing.T) {
		require.ErrorIs(t, s.SetSession("", testUser), errors.ErrInvalidRequest)
		require.ErrorIs(t, s.SetSession("T2", nil), errors.ErrInvalidRequest)
		require.ErrorIs(t, s.SetSession("T2", &users.User{}), errors.ErrInvalidRequest)

		token, _ := s.GetToken()
		require.Equal(t, "T1", token)
	})
}

func TestStore_PartialStateIsUnauthenticated(t *testing.T) {
	t.Run("token without user", func(t *testing.T) {
		s, kv := newStore(t)
		kv.Put(credentials.TokenKey, "T1")
		require.False(t, s.IsAuthenticated())
		_, ok := s.Session()
		require.False(t, ok)
	})

	t.Run("user without token", func(t *testing.T) {
		s, kv := newStore(t)
		kv.Put(credentials.UserKey, `{"id":1}`)
		require.False(t, s.IsAuthenticated())
	})

	t.Run("empty user object", func(t *testing.T) {
		s, kv := newStore(t)
		kv.Put(credentials.TokenKey, "T1")
		kv.Put(credentials.UserKey, `{}`)
		require.False(t, s.IsAuthenticated())
	})
}

func TestStore_CorruptUser(t *testing.T) {
	s, kv := newStore(t)
	kv.Put(credentials.TokenKey, "T1")
	kv.Put(credentials.UserKey, "{not-json")

	require.NotPanics(t, func() {
		user, ok := s.GetUser()
		require.False(t, ok)
		require.Nil(t, user)
	})
	require.False(t, s.IsAuthenticated())
}

func TestStore_Clear(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.SetSession("T1", testUser))

	require.NoError(t, s.Clear())
	require.False(t, s.IsAuthenticated())

	// idempotent
	require.NoError(t, s.Clear())
	require.False(t, s.IsAuthenticated())
}

func TestStore_RefreshUser(t *testing.T) {
	s, _ := newStore(t)
	tenant := &tenants.Tenant{ID: "t1", SubscriptionTier: tenants.TierEnterprise}

	t.Run("requires a token", func(t *testing.T) {
		err := s.RefreshUser(*testUser, tenant)
		require.ErrorIs(t, err, errors.ErrUnauthenticated)
		_, ok := s.GetUser()
		require.False(t, ok)
	})

	t.Run("merges tenant", func(t *testing.T) {
		require.NoError(t, s.SetSession("T1", testUser))
		require.NoError(t, s.RefreshUser(users.User{ID: "1", Email: "a@b.com"}, tenant))

		user, ok := s.GetUser()
		require.True(t, ok)
		require.NotNil(t, user.Tenant)
		require.Equal(t, tenants.TierEnterprise, user.Tenant.SubscriptionTier)

		session, ok := s.Session()
		require.True(t, ok)
		require.Equal(t, "T1", session.Token)
		require.Equal(t, "t1", session.Tenant.ID)
	})
}

func TestStore_TokenSource(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("jwt expiry", func(t *testing.T) {
		kv := kvstore.NewMemoryStore()
		s := credentials.New(kv, credentials.WithNowFunc(func() time.Time { return now }))
		exp := now.Add(time.Hour)
		require.NoError(t, s.SetSession(signedToken(t, exp), testUser))

		tok, err := s.Token()
		require.NoError(t, err)
		require.Equal(t, "Bearer", tok.TokenType)
		require.Equal(t, exp.Unix(), tok.Expiry.Unix())
		require.False(t, s.TokenExpired())

		session, ok := s.Session()
		require.True(t, ok)
		require.False(t, session.Expired(now))
		require.True(t, session.Expired(exp))
	})

	t.Run("expired jwt", func(t *testing.T) {
		kv := kvstore.NewMemoryStore()
		s := credentials.New(kv, credentials.WithNowFunc(func() time.Time { return now }))
		require.NoError(t, s.SetSession(signedToken(t, now.Add(-time.Minute)), testUser))
		require.True(t, s.TokenExpired())
		// Expiry is a hint only; the session still counts as present.
		require.True(t, s.IsAuthenticated())
	})

	t.Run("opaque token", func(t *testing.T) {
		s, _ := newStore(t)
		require.NoError(t, s.SetSession("opaque-token", testUser))

		tok, err := s.Token()
		require.NoError(t, err)
		require.True(t, tok.Expiry.IsZero())
		_, ok := s.TokenExpiry()
		require.False(t, ok)
		require.False(t, s.TokenExpired())
	})
}
