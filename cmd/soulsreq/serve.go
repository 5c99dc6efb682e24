package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"soulsreq/internal/dataset"
	"soulsreq/internal/session"
	"soulsreq/internal/web"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Watch = watch
			}
			srv, err := web.NewServer(a.registry, a.presets, session.NewMemoryStore[session.PlayerState](), a.cfg.SessionCache)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if a.cfg.Watch {
				w, err := dataset.NewWatcher(a.cfg.DataDir, a.cache, 0)
				if err != nil {
					return fmt.Errorf("watch %s: %w", a.cfg.DataDir, err)
				}
				go func() { _ = w.Run(ctx) }()
			}

			hs := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				slog.Info("listening", "addr", a.cfg.Addr, "data", a.cfg.DataDir)
				errc <- hs.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			slog.Info("shutting down")
			return hs.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload datasets when files in the data directory change")
	return cmd
}
