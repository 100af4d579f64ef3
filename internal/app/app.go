// Package app wires configuration, storage, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/accesshub/accounts-api/internal/api"
	"github.com/accesshub/accounts-api/internal/core/ports"
	"github.com/accesshub/accounts-api/internal/core/service"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/collection"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/file"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/memory"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/mongo"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/redis"
	"github.com/accesshub/accounts-api/internal/pkg/config"
	"github.com/accesshub/accounts-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	echo   *echo.Echo
	closer func(context.Context) error
}

// New opens the configured record store, seeds it and builds the router.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	users := collection.NewUsers(store)
	roles := collection.NewRoles(store)

	admin := service.BootstrapAdmin{
		Name:     cfg.Bootstrap.AdminName,
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
	}
	if err := service.Bootstrap(ctx, roles, users, admin, logger.Component(log, "bootstrap")); err != nil {
		_ = closer(ctx)
		return nil, err
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	e := api.NewRouter(api.Deps{
		Log:           log,
		Credentials:   tokens,
		Auth:          service.NewAuthService(users, tokens, logger.Component(log, "auth")),
		Users:         service.NewUserService(users, logger.Component(log, "users")),
		Roles:         service.NewRoleService(roles, users, logger.Component(log, "roles")),
		Assignments:   service.NewAssignmentService(users, roles, logger.Component(log, "assignments")),
		Store:         store,
		StoreDriver:   cfg.Store.Driver,
		Production:    cfg.IsProduction(),
		EnableMetrics: cfg.MetricsEnabled,
		SigninRate:    cfg.Signin.RateLimit,
		SigninBurst:   cfg.Signin.Burst,
	})

	return &App{cfg: cfg, log: log, echo: e, closer: closer}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info().Str("port", a.cfg.Port).Str("store", a.cfg.Store.Driver).Msg("server starting")
		if err := a.echo.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down")
		if err := a.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return a.closer(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.log.Info().Msg("shutdown complete")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (ports.RecordStore, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.New(), noop, nil

	case config.DriverRedis:
		store, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.DriverMongo:
		store, err := mongo.Open(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		store, err := file.New(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
}
