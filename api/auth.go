package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-ukci-client/result"
	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/rs/zerolog/log"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
}

// AuthPayload is what login and registration return.
type AuthPayload struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

// CurrentUser is the current-user endpoint's payload.
type CurrentUser struct {
	User   users.User      `json:"user"`
	Tenant *tenants.Tenant `json:"tenant,omitempty"`
}

// invalidSession is shown when a 2xx auth response carries no usable session.
const invalidSession = "Login response did not include a session"

func (c *Client) Login(ctx context.Context, email, password string) result.Result[AuthPayload] {
	r := do[AuthPayload](ctx, c, http.MethodPost, RouteLogin, LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	return c.storeSession(r)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) result.Result[AuthPayload] {
	req.Email = strings.TrimSpace(req.Email)
	r := do[AuthPayload](ctx, c, http.MethodPost, RouteRegister, req)
	return c.storeSession(r)
}

func (c *Client) storeSession(r result.Result[AuthPayload]) result.Result[AuthPayload] {
	if !r.Success {
		return r
	}
	if err := c.creds.SetSession(r.Data.Token, &r.Data.User); err != nil {
		log.Err(err).Msg("Failed to store session")
		return result.Fail[AuthPayload](r.Status, invalidSession)
	}
	// Cached responses may belong to the previous identity.
	c.ClearCache()
	log.Info().Str("user", r.Data.User.Email).Msg("Session stored")
	return r
}

// GetCurrentUser fetches the user and tenant and merges the tenant into the
// stored user.
func (c *Client) GetCurrentUser(ctx context.Context) result.Result[CurrentUser] {
	r := do[CurrentUser](ctx, c, http.MethodGet, RouteCurrentUser, nil)
	if !r.Success {
		return r
	}
	if r.Data.Tenant == nil {
		r.Data.Tenant = r.Data.User.Tenant
	}
	if err := c.creds.RefreshUser(r.Data.User, r.Data.Tenant); err != nil {
		log.Err(err).Msg("Failed to refresh stored user")
	}
	return r
}

// Logout clears the stored session. It makes no network call.
func (c *Client) Logout() {
	if err := c.creds.Clear(); err != nil {
		log.Err(err).Msg("Failed to clear session on logout")
	}
}

func (c *Client) IsAuthenticated() bool {
	return c.creds.IsAuthenticated()
}
