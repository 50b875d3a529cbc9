package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-ukci-client/internal/fakeapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMockServerCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory backend with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = a.cfg.GetMockPort()
			}
			displayAppname(a.cfg.GetAppName())

			backend, err := fakeapi.New(a.cfg)
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.Handle("/", backend)

			server := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			fmt.Fprintf(a.out, "Demo login: %s / %s\n", fakeapi.DemoEmail, fakeapi.DemoPassword)

			errCh := make(chan error, 1)
			go func() {
				errCh <- listenAndServe(server)
			}()

			select {
			case err := <-errCh:
				return err
			case <-waitForStopSignal():
			}
			return shutdown(server)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides mock.port)")
	return cmd
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Mock backend listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	log.Info().Msg("Mock backend stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
