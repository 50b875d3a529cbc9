package nav_test

import (
	"testing"

	"github.com/jrsteele09/go-ukci-client/interceptor"
	"github.com/jrsteele09/go-ukci-client/nav"
	"github.com/stretchr/testify/require"
)

func TestLoginRedirector_Redirects(t *testing.T) {
	history := nav.NewHistory("/companies/01234567")
	hub := interceptor.NewHub()
	r := &nav.LoginRedirector{Navigator: history, LoginPath: "/login"}
	r.Attach(hub)

	hub.Publish(interceptor.Unauthenticated{Method: "GET"})

	require.Equal(t, "/login", history.Location())
	require.Equal(t, []string{"/companies/01234567", "/login"}, history.Entries())

	// A second 401 while on /login must not loop.
	hub.Publish(interceptor.Unauthenticated{Method: "POST"})
	require.Len(t, history.Entries(), 2)
}

func TestLoginRedirector_IsLoginLocation(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		location string
		want     bool
	}{
		{"exact", "", "/login", true},
		{"trailing slash", "", "/login/", true},
		{"query string", "", "/login?error=expired", true},
		{"fragment", "", "/login#form", true},
		{"other page", "", "/dashboard", false},
		{"login prefix is not login", "", "/login-help", false},
		{"under base path", "/app", "/app/login", true},
		{"base path trailing slash", "/app/", "/app/login/", true},
		{"base root is not login", "/app", "/app", false},
		{"other page under base", "/app", "/app/contacts", false},
		{"absolute url", "", "https://intel.example.co.uk/login?next=/deals", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := &nav.LoginRedirector{LoginPath: "/login", BasePath: tc.base}
			require.Equal(t, tc.want, r.IsLoginLocation(tc.location))
		})
	}
}

func TestLoginRedirector_TargetIncludesBasePath(t *testing.T) {
	history := nav.NewHistory("/app/deals")
	r := &nav.LoginRedirector{Navigator: history, LoginPath: "login", BasePath: "/app/"}

	r.Handle(interceptor.Unauthenticated{})
	require.Equal(t, "/app/login", history.Location())

	r.Handle(interceptor.Unauthenticated{})
	require.Len(t, history.Entries(), 2)
}
