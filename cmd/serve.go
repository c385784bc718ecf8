package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/api"
	"github.com/rryowa/sagra_admin/internal/controller"
	"github.com/rryowa/sagra_admin/internal/migrations"
	"github.com/rryowa/sagra_admin/internal/service"
	"github.com/rryowa/sagra_admin/internal/storage"
	"github.com/rryowa/sagra_admin/internal/storage/memory"
	"github.com/rryowa/sagra_admin/internal/storage/postgres"
	"github.com/rryowa/sagra_admin/internal/storage/redis"
	"github.com/rryowa/sagra_admin/internal/util"
)

const janitorInterval = time.Hour

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Action: func(c *cli.Context) error {
			return serve(c.Context)
		},
	}
}

func serve(ctxBackground context.Context) error {
	ctx, stop := signal.NotifyContext(ctxBackground, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := util.NewZapLogger()
	defer func() { _ = logger.Sync() }()

	backendCfg := util.NewBackendConfig()
	sessionCfg := util.NewSessionConfig()

	store, cleanupFuncs, err := newSessionStore(ctx, logger, sessionCfg.Store)
	if err != nil {
		return err
	}
	logger.Infow("session store ready", "kind", sessionCfg.Store)

	transport, err := service.NewRefreshTransport(backendCfg.RefreshTransport)
	if err != nil {
		return err
	}

	httpClient := service.NewHTTPClient(backendCfg.Timeout)
	authenticator := service.NewAuthenticator(httpClient, backendCfg.APIURL, logger)
	refresher := service.NewRefresher(httpClient, backendCfg.APIURL, transport, logger)
	webhookService := service.NewWebhookService(logger, sessionCfg.WebhookURL)

	sessions := service.NewSessionManager(store, authenticator, refresher, webhookService, sessionCfg.MaxAge, logger)
	observer := service.NewObserver(sessions, sessionCfg.RefetchInterval, logger)
	gateway := service.NewGateway(httpClient, backendCfg.APIURL, sessions, logger)

	services := controller.Services{
		Categories:    service.NewCategoryService(gateway),
		Foods:         service.NewFoodService(gateway),
		Ingredients:   service.NewIngredientService(gateway),
		Printers:      service.NewPrinterService(gateway),
		CashRegisters: service.NewCashRegisterService(gateway),
		Users:         service.NewUserService(gateway),
		Orders:        service.NewOrderService(gateway),
	}

	cookies := controller.NewSessionCookies(service.NewSessionTokenService(sessionCfg), sessionCfg.SecureCookie)
	ctrl := controller.NewController(logger, sessions, observer, cookies, services)

	apiServer := api.NewAPI(ctrl, cookies, observer, util.NewServerConfig(), logger, cleanupFuncs)
	apiServer.Run(ctx)
	return nil
}

func newSessionStore(ctx context.Context, logger *zap.SugaredLogger, kind string) (storage.SessionRepository, []func(), error) {
	switch kind {
	case util.StoreRedis:
		client, cleanup, err := util.NewRedisClient(logger, util.NewRedisConfig())
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionStorage(client), []func(){cleanup}, nil

	case util.StorePostgres:
		db, cleanup, err := util.NewDBConnection(logger, util.NewDBConfig())
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunMigrations(db, logger); err != nil {
			cleanup()
			return nil, nil, err
		}
		store := postgres.NewStorage(db)
		go runJanitor(ctx, logger, store)
		return store, []func(){cleanup}, nil

	case util.StoreMemory:
		return memory.NewSessionRepository(logger), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", kind)
	}
}

// runJanitor purges expired rows; the other stores expire records on their own.
func runJanitor(ctx context.Context, logger *zap.SugaredLogger, store *postgres.Storage) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpiredSessions(ctx)
			if err != nil {
				logger.Warnw("failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				logger.Infow("purged expired sessions", "count", n)
			}
		}
	}
}
