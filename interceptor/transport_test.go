package interceptor_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/go-ukci-client/credentials"
	"github.com/jrsteele09/go-ukci-client/interceptor"
	"github.com/jrsteele09/go-ukci-client/kvstore"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server *httptest.Server
	creds  *credentials.Store
	hub    *interceptor.Hub
	client *http.Client

	mu         sync.Mutex
	authSeen   []string
	requestIDs []string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		creds: credentials.New(kvstore.NewMemoryStore()),
		hub:   interceptor.NewHub(),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.authSeen = append(f.authSeen, r.Header.Get("Authorization"))
		f.requestIDs = append(f.requestIDs, r.Header.Get(interceptor.RequestIDHeader))
		f.mu.Unlock()

		if r.URL.Path == "/unauthorized" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Token expired"}`)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	t.Cleanup(f.server.Close)

	f.client = &http.Client{Transport: interceptor.Chain(http.DefaultTransport, f.creds, f.hub)}
	return f
}

func (f *fixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuthTransport_HeaderInjection(t *testing.T) {
	f := setupFixture(t)

	t.Run("no token, no header", func(t *testing.T) {
		f.get(t, "/companies")
		require.Equal(t, "", f.authSeen[len(f.authSeen)-1])
	})

	t.Run("token attached as bearer", func(t *testing.T) {
		require.NoError(t, f.creds.SetSession("T1", &users.User{ID: "1"}))
		f.get(t, "/companies")
		require.Equal(t, "Bearer T1", f.authSeen[len(f.authSeen)-1])
	})

	t.Run("token changes are picked up per call", func(t *testing.T) {
		require.NoError(t, f.creds.SetSession("T2", &users.User{ID: "1"}))
		f.get(t, "/companies")
		require.Equal(t, "Bearer T2", f.authSeen[len(f.authSeen)-1])
	})

	for _, id := range f.requestIDs {
		require.NotEmpty(t, id)
	}
}

func TestAuthTransport_DoesNotMutateCallerRequest(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, f.creds.SetSession("T1", &users.User{ID: "1"}))

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/companies", nil)
	require.NoError(t, err)
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Empty(t, req.Header.Get("Authorization"))
}

func TestUnauthorizedTransport_ClearsAndPublishes(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, f.creds.SetSession("T1", &users.User{ID: "1"}))

	var events []interceptor.Unauthenticated
	unsubscribe := f.hub.Subscribe(func(e interceptor.Unauthenticated) {
		// Session must already be gone when subscribers run.
		require.False(t, f.creds.IsAuthenticated())
		events = append(events, e)
	})

	resp := f.get(t, "/unauthorized")

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"error":"Token expired"}`, string(body))

	require.False(t, f.creds.IsAuthenticated())
	require.Len(t, events, 1)
	require.Equal(t, http.MethodGet, events[0].Method)

	t.Run("successful calls publish nothing", func(t *testing.T) {
		f.get(t, "/companies")
		require.Len(t, events, 1)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		unsubscribe()
		unsubscribe()
		require.Equal(t, 0, f.hub.Len())
		f.get(t, "/unauthorized")
		require.Len(t, events, 1)
	})
}

func TestUnauthorizedTransport_NetworkErrorPassesThrough(t *testing.T) {
	creds := credentials.New(kvstore.NewMemoryStore())
	require.NoError(t, creds.SetSession("T1", &users.User{ID: "1"}))
	hub := interceptor.NewHub()
	published := false
	hub.Subscribe(func(interceptor.Unauthenticated) { published = true })

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := &http.Client{Transport: interceptor.Chain(nil, creds, hub)}
	_, err := client.Get(url)
	require.Error(t, err)
	require.False(t, published)
	require.True(t, creds.IsAuthenticated())
}
