package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/spencer-p/sunelevation/pkg/cache"
	"github.com/spencer-p/sunelevation/pkg/config"
	"github.com/spencer-p/sunelevation/pkg/handlers"
	"github.com/spencer-p/sunelevation/pkg/logger"
	"github.com/spencer-p/sunelevation/pkg/version"
	"github.com/spencer-p/sunelevation/pkg/watch"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var port, places, level string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("places") {
				cfg.PlacesFile = places
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = level
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides SUNELEV_PORT)")
	cmd.Flags().StringVar(&places, "places", "", "YAML file of places to watch (overrides SUNELEV_PLACES_FILE)")
	cmd.Flags().StringVar(&level, "log-level", "", "debug, info, warn or error (overrides SUNELEV_LOG_LEVEL)")
	return cmd
}

func newRouter(cfg *config.Config, c *cache.Timed) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(cfg.Prefix).Subrouter()
	handlers.Register(s, c)
	return r
}

func serve(ctx context.Context, cfg *config.Config) error {
	lvl, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	logger.SetLevel(lvl)
	ctx = logger.WithName(ctx, "sunelevation")

	var places []config.Place
	if cfg.PlacesFile != "" {
		var err error
		if places, err = config.LoadPlaces(cfg.PlacesFile); err != nil {
			return err
		}
	}

	c := cache.NewTimed(cfg.CacheTTL)
	w := watch.Watcher{
		Places:   places,
		Interval: cfg.WatchInterval,
		Cache:    c,
	}
	go w.Run(ctx)

	srv := &http.Server{
		Handler:      newRouter(cfg, c),
		Addr:         "0.0.0.0:" + cfg.Port,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errs := make(chan error, 1)
	go func() {
		logger.InfoKV(ctx, "listening", "addr", srv.Addr, "prefix", cfg.Prefix, "version", version.Short())
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Infof(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
