package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	sortable "github.com/vango-dev/sortable"
	"github.com/vango-dev/sortable/pkg/live"
)

func serveCmd() *cobra.Command {
	var (
		host      string
		port      int
		animation time.Duration
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Drive remote boards over WebSocket",
		Long: `Start the live server.

Clients connect over WebSocket, describe their board, and stream
pointer input; the server runs the drag engine and streams back DOM
patches. Prometheus metrics are exposed on /metrics.

Endpoints:
  /ws       — board sessions
  /metrics  — Prometheus metrics
  /healthz  — liveness probe

Examples:
  sortable serve
  sortable serve --port=9000 --animation=200ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, animation, verbose)
		},
	}

	cmd.Flags().StringVarP(&host, "host", "H", "127.0.0.1", "Host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 8422, "Port to listen on")
	cmd.Flags().DurationVarP(&animation, "animation", "a", 150*time.Millisecond, "Reflow animation duration (0 disables)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}

func runServe(host string, port int, animation time.Duration, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ws := live.NewServer(live.Config{
		Engine:  sortable.Options{Animation: animation},
		Metrics: live.NewMetrics(),
		Tracer:  live.NewTracer(""),
		Logger:  logger,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if verbose {
		r.Use(middleware.Logger)
	}
	r.Get("/ws", ws.HandleWS)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	info("listening on ws://%s/ws", addr)
	info("metrics on http://%s/metrics", addr)
	fmt.Println()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Println()
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	success("server stopped")
	return nil
}
