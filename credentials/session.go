package credentials

import (
	"time"

	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/jrsteele09/go-ukci-client/users"
)

// Session is a read-only snapshot of the stored identity.
// The persisted store stays authoritative; a Session is never written back.
type Session struct {
	Token     string          // Opaque bearer credential
	User      *users.User     // Authenticated user
	Tenant    *tenants.Tenant // Tenant merged in by the current-user refresh, may be nil
	ExpiresAt time.Time       // From the token's exp claim, zero when unknown
}

// Expired reports whether the token's own expiry has passed. A zero expiry never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
