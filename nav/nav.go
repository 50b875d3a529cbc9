// Package nav models where the UI currently is and how to move it.
package nav

import (
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/jrsteele09/go-ukci-client/interceptor"
	"github.com/rs/zerolog/log"
)

// Navigator is the UI's router as far as the API layer cares.
type Navigator interface {
	Location() string
	Navigate(to string)
}

// History is an in-memory Navigator that records every navigation.
type History struct {
	mu      sync.RWMutex
	entries []string
}

var _ Navigator = (*History)(nil)

func NewHistory(start string) *History {
	return &History{entries: []string{start}}
}

func (h *History) Location() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[len(h.entries)-1]
}

func (h *History) Navigate(to string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, to)
}

// Entries returns a copy of every location visited, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// LoginRedirector sends the UI to the login screen after a 401, unless it is
// already there.
type LoginRedirector struct {
	Navigator Navigator
	LoginPath string // e.g. "/login"
	BasePath  string // prefix the UI is mounted under, e.g. "/app"
}

// Handle is an interceptor.Hub subscriber.
func (r *LoginRedirector) Handle(event interceptor.Unauthenticated) {
	current := r.Navigator.Location()
	if r.IsLoginLocation(current) {
		log.Debug().Str("location", current).Msg("Already on login screen, skipping redirect")
		return
	}
	target := r.target()
	log.Info().Str("from", current).Str("to", target).Msg("Session expired, redirecting to login")
	r.Navigator.Navigate(target)
}

// Attach subscribes the redirector to hub.
func (r *LoginRedirector) Attach(hub *interceptor.Hub) (unsubscribe func()) {
	return hub.Subscribe(r.Handle)
}

// IsLoginLocation compares ignoring base path, query, fragment and trailing slashes.
func (r *LoginRedirector) IsLoginLocation(location string) bool {
	return normalise(location, r.BasePath) == normalise(r.loginPath(), "")
}

func (r *LoginRedirector) loginPath() string {
	if r.LoginPath == "" {
		return "/login"
	}
	return r.LoginPath
}

func (r *LoginRedirector) target() string {
	base := strings.TrimRight(r.BasePath, "/")
	return base + cleanPath(r.loginPath())
}

func normalise(location, basePath string) string {
	if u, err := url.Parse(location); err == nil {
		location = u.Path
	}
	p := cleanPath(location)
	if base := cleanPath(basePath); base != "/" {
		if p == base {
			return "/"
		}
		if strings.HasPrefix(p, base+"/") {
			p = strings.TrimPrefix(p, base)
		}
	}
	return p
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
