package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/weedbox/pokerdirector"
	"github.com/weedbox/pokerdirector/api"
	"github.com/weedbox/pokerdirector/config"
	"github.com/weedbox/pokerdirector/shortener"
	"github.com/weedbox/pokerdirector/store"
	"golang.org/x/sync/errgroup"
)

type ServeCmd struct {
	Addr     string `short:"a" help:"Server address (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config, cli.Env...)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}

	logger := newLogger(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return err
	}
	logger.Info("store ready", "driver", cfg.Store.Driver)

	links, err := newShortener(cfg)
	if err != nil {
		return err
	}

	directorOptions := cfg.DirectorOptions()
	directorOptions.Logger = logger
	manager := pokerdirector.NewManager(directorOptions, pokerdirector.WithManagerStore(records))
	defer manager.Reset()

	handler := api.NewServer(manager, links, logger,
		api.WithPublicURL(cfg.Server.PublicURL),
		api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		api.WithScheduleDefaults(cfg.GenerationOptions(), cfg.Defaults.PlayerCount, cfg.Defaults.DurationMins),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting pokerdirector", "addr", cfg.Server.Address, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newShortener(cfg *config.Config) (shortener.Shortener, error) {
	if cfg.Store.Driver != store.Driver_Redis {
		return shortener.NewMemoryShortener(), nil
	}

	client, err := store.ConnectRedis(cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB)
	if err != nil {
		return nil, err
	}
	return shortener.NewRedisShortener(client, cfg.Store.RedisPrefix, cfg.ShortLinkTTL()), nil
}

func newLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
}
