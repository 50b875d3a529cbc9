// Package api is the session-aware client the UI talks to. Every call goes
// through the interceptor chain and comes back as a result.Result.
package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-ukci-client/cache"
	"github.com/jrsteele09/go-ukci-client/credentials"
	"github.com/jrsteele09/go-ukci-client/interceptor"
	"github.com/jrsteele09/go-ukci-client/internal/config"
	"github.com/jrsteele09/go-ukci-client/queue"
	"github.com/pkg/errors"
)

// Config is the part of config.Config the client reads.
type Config interface {
	config.EnvConfig
	config.ClientConfig
}

type Client struct {
	cfg       Config
	baseURL   string
	creds     *credentials.Store
	hub       *interceptor.Hub
	http      *http.Client
	queue     *queue.Queue
	responses *cache.Cache[any]
	nowFunc   func() time.Time

	baseTransport http.RoundTripper
}

type Option func(*Client)

// WithHTTPClient uses hc's timeout and transport. Its transport is wrapped by
// the interceptors, never used bare.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		copied := *hc
		c.http = &copied
		if hc.Transport != nil {
			c.baseTransport = hc.Transport
		}
	}
}

// WithBaseTransport sets the RoundTripper beneath the interceptors.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.baseTransport = rt
	}
}

// WithHub shares an existing unauthenticated-event hub.
func WithHub(hub *interceptor.Hub) Option {
	return func(c *Client) {
		c.hub = hub
	}
}

// WithNowFunc sets the clock used by the response cache and 401 events (primarily for testing)
func WithNowFunc(now func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = now
	}
}

func New(cfg Config, creds *credentials.Store, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("[api New] config is required")
	}
	if creds == nil {
		return nil, errors.New("[api New] credential store is required")
	}
	baseURL := cfg.GetAPIBaseURL()
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[api New] parse base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("[api New] base URL %q must be absolute", baseURL)
	}

	c := &Client{
		cfg:     cfg,
		baseURL: baseURL,
		creds:   creds,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hub == nil {
		c.hub = interceptor.NewHub()
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.GetRequestTimeout()}
	}
	chain := interceptor.Chain(c.baseTransport, creds, c.hub)
	chain.NowFunc = c.nowFunc
	c.http.Transport = chain

	c.queue = queue.New(cfg.GetMaxConcurrentRequests())
	c.responses = cache.New("responses", cache.WithNowFunc[any](c.nowFunc))
	return c, nil
}

// Hub is where 401s are announced; the routing layer subscribes here.
func (c *Client) Hub() *interceptor.Hub {
	return c.hub
}

func (c *Client) Credentials() *credentials.Store {
	return c.creds
}

// QueueStats reports the request queue's current load.
func (c *Client) QueueStats() queue.Stats {
	return c.queue.Stats()
}
