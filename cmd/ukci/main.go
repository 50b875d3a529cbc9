package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jrsteele09/go-ukci-client/api"
	"github.com/jrsteele09/go-ukci-client/credentials"
	"github.com/jrsteele09/go-ukci-client/internal/config"
	"github.com/jrsteele09/go-ukci-client/kvstore"
	"github.com/jrsteele09/go-ukci-client/nav"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configFile string
	baseURL    string
	store      string
	verbose    bool
	timeout    time.Duration

	out       io.Writer
	cfg       config.Config
	creds     *credentials.Store
	client    *api.Client
	navigator *terminalNavigator
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "ukci",
		Short:         "UK Customer Intelligence command line client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API base URL (overrides api.baseURL)")
	root.PersistentFlags().StringVar(&a.store, "store", "", "Credential store backend: file, memory or redis")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", time.Minute, "Overall command timeout")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newSearchCmd(a),
		newCompanyCmd(a),
		newAlertsCmd(a),
		newMockServerCmd(a),
	)
	return root
}

func (a *app) setup(errOut io.Writer) error {
	setupLogging(a.verbose)

	overrides := map[string]any{}
	if a.baseURL != "" {
		overrides["api.baseURL"] = a.baseURL
	}
	if a.store != "" {
		overrides["storage.backend"] = a.store
	}
	if a.verbose {
		overrides["verbose"] = true
	}
	cfg, err := config.LoadWithOverrides(a.configFile, overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg

	kv, err := kvstore.FromConfig(cfg)
	if err != nil {
		return err
	}
	a.creds = credentials.New(kv)

	client, err := api.New(cfg, a.creds)
	if err != nil {
		return err
	}
	a.client = client

	a.navigator = &terminalNavigator{out: errOut, location: "/cli"}
	redirector := &nav.LoginRedirector{
		Navigator: a.navigator,
		LoginPath: cfg.GetLoginPath(),
		BasePath:  cfg.GetBasePath(),
	}
	redirector.Attach(client.Hub())
	return nil
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func setupLogging(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// terminalNavigator is the CLI's "router": the login screen is the login command,
// so a 401 while it runs is a failed sign-in rather than an expired session.
type terminalNavigator struct {
	out      io.Writer
	location string
}

var _ nav.Navigator = (*terminalNavigator)(nil)

func (n *terminalNavigator) Location() string {
	return n.location
}

func (n *terminalNavigator) Navigate(to string) {
	n.location = to
	fmt.Fprintln(n.out, "Your session has expired. Run `ukci login` to sign in again.")
}
