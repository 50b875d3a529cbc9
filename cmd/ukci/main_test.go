package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-ukci-client/internal/config"
	"github.com/jrsteele09/go-ukci-client/internal/fakeapi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, baseURL string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--base-url", baseURL, "--store", "file"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCLI_SessionLifecycle(t *testing.T) {
	backend, err := fakeapi.New(config.FromViper(viper.New()))
	require.NoError(t, err)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	baseURL := srv.URL + fakeapi.PathPrefix
	t.Setenv("UKCI_STORAGE_PATH", filepath.Join(t.TempDir(), "credentials.json"))

	out, err := runCLI(t, baseURL, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, "Not logged in")

	out, err = runCLI(t, baseURL, "login", "--email", fakeapi.DemoEmail, "--password", "wrong")
	require.Error(t, err)
	require.Contains(t, out, "Invalid email or password")
	require.NotContains(t, out, "session has expired")

	out, err = runCLI(t, baseURL, "login", "--email", fakeapi.DemoEmail, "--password", fakeapi.DemoPassword)
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as Alex Morgan")

	out, err = runCLI(t, baseURL, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, fakeapi.DemoEmail)
	require.Contains(t, out, "enterprise")

	out, err = runCLI(t, baseURL, "search", "greggs")
	require.NoError(t, err)
	require.Contains(t, out, "00502851")

	out, err = runCLI(t, baseURL, "company", "00048839", "--monitor")
	require.NoError(t, err)
	require.Contains(t, out, "BARCLAYS PLC")
	require.Regexp(t, `Monitored\s+yes`, out)

	out, err = runCLI(t, baseURL, "alerts", "--unread")
	require.NoError(t, err)
	require.Contains(t, out, "Company status changed to liquidation")

	out, err = runCLI(t, baseURL, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "Logged out")

	out, err = runCLI(t, baseURL, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, "Not logged in")
}

func TestCLI_ShortSearchSkipsBackend(t *testing.T) {
	t.Setenv("UKCI_STORAGE_PATH", filepath.Join(t.TempDir(), "credentials.json"))
	out, err := runCLI(t, "http://127.0.0.1:1/api", "search", "a")
	require.NoError(t, err)
	require.Contains(t, out, "No results")
}
