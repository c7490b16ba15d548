package main

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	apphttp "github.com/claes/coursereport/internal/http"
	"github.com/claes/coursereport/internal/scan"
)

func newServeCmd(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the report over HTTP",
		Long: `serve re-scans the course repository on every request to "/" and
returns the rendered report, so edits show up on reload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default \":$PORT\" or \":8080\")")
	return cmd
}

func listenAddr(addr string) string {
	if addr != "" {
		return addr
	}
	// allow env var fallback
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

func runServe(cmd *cobra.Command, o *options, addr string) error {
	root, cfg, err := o.resolve(cmd)
	if err != nil {
		return err
	}
	// Fail early on a bad root rather than on the first request.
	sc, err := scan.Open(root)
	if err != nil {
		return err
	}

	mux := apphttp.NewServer(sc.Root(), cfg.ReportOptions(),
		scan.WithLogger(slog.Default()),
		scan.WithDescriptionLimit(cfg.DescriptionLimit))
	addr = listenAddr(addr)

	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "root", sc.Root())
		if err := srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-done:
		// proceed to shutdown
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	}
	slog.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("graceful shutdown failed", "err", err)
		_ = srv.Close()
	}
	slog.Info("server stopped")
	return nil
}
