package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/lookup"
	"github.com/dmitrymomot/rulekit/pkg/rules"
)

// app is what every command needs: configuration, a logger and a validator
// wired to the configured lookup backend.
type app struct {
	cfg       config.App
	log       *slog.Logger
	validator *rulekit.Validator
	checks    map[string]httpserver.Check
	closers   []func()
}

func setup(ctx context.Context, g *globalOptions, logOut io.Writer) (*app, error) {
	var cfg config.App
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if g.logLevel != "" {
		level = g.logLevel
	}
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithLevelName(level),
		logger.WithOutput(logOut),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)

	a := &app{cfg: cfg, log: log, checks: map[string]httpserver.Check{}}

	checker, err := a.connectLookup(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := []rulekit.Option{rulekit.WithLogger(log)}
	if checker != nil {
		opts = append(opts, rulekit.WithChecker(checker))
	}
	a.validator, err = rulekit.New(opts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) connectLookup(ctx context.Context) (rules.Checker, error) {
	switch a.cfg.LookupBackend() {
	case "postgres":
		pool, err := lookup.ConnectPostgres(ctx, a.cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		a.checks["postgres"] = lookup.PostgresHealthcheck(pool)
		a.log.Info("lookup backend ready", logger.Component("postgres"))
		return lookup.NewPostgres(pool), nil
	case "redis":
		client, err := lookup.ConnectRedis(ctx, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.checks["redis"] = lookup.RedisHealthcheck(client)
		a.log.Info("lookup backend ready", logger.Component("redis"))
		return lookup.NewRedis(client, a.cfg.Redis.Prefix), nil
	default:
		return nil, nil
	}
}

// Close releases lookup connections.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
