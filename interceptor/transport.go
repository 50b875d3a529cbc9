// Package interceptor holds the one place bearer credentials are attached to
// outbound calls and the one place a 401 response is interpreted.
package interceptor

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-ukci-client/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const RequestIDHeader = "X-Request-ID"

// Credentials is what the interceptors need from the credential store.
type Credentials interface {
	oauth2.TokenSource
	Clear() error
}

// AuthTransport is the request phase: it attaches the stored bearer token.
// With no token the request goes out unmodified, so login itself still works.
type AuthTransport struct {
	Base   http.RoundTripper
	Source oauth2.TokenSource
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.New().String())
	}
	if t.Source != nil {
		if tok, err := t.Source.Token(); err == nil && tok.AccessToken != "" {
			tok.SetAuthHeader(out)
		}
	}
	return base(t.Base).RoundTrip(out)
}

// UnauthorizedTransport is the response phase. A 401 clears the stored
// session and is published on Hub; the response is always returned as-is.
type UnauthorizedTransport struct {
	Base        http.RoundTripper
	Credentials Credentials
	Hub         *Hub
	NowFunc     func() time.Time
}

func (t *UnauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := base(t.Base).RoundTrip(req)
	if err != nil {
		metrics.Requests.WithLabelValues(metrics.StatusClass(0)).Inc()
		return resp, err
	}
	metrics.Requests.WithLabelValues(metrics.StatusClass(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		t.handleUnauthorized(req)
	}
	return resp, nil
}

func (t *UnauthorizedTransport) handleUnauthorized(req *http.Request) {
	metrics.Unauthorized.Inc()
	log.Warn().Str("method", req.Method).Str("url", req.URL.Redacted()).Msg("Unauthorized response, clearing session")

	if t.Credentials != nil {
		if err := t.Credentials.Clear(); err != nil {
			log.Err(err).Msg("Failed to clear credentials after 401")
		}
	}
	if t.Hub != nil {
		now := time.Now
		if t.NowFunc != nil {
			now = t.NowFunc
		}
		t.Hub.Publish(Unauthenticated{
			Method: req.Method,
			URL:    req.URL.String(),
			At:     now(),
		})
	}
}

// Chain wraps base with both phases. Every API call must go through the
// returned RoundTripper.
func Chain(base http.RoundTripper, creds Credentials, hub *Hub) *UnauthorizedTransport {
	return &UnauthorizedTransport{
		Base: &AuthTransport{
			Base:   base,
			Source: creds,
		},
		Credentials: creds,
		Hub:         hub,
	}
}

func base(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}
