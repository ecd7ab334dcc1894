package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/config"
	"github.com/GlebRadaev/affiliate-ledger/internal/couponcatalog"
	"github.com/GlebRadaev/affiliate-ledger/internal/handlers"
	"github.com/GlebRadaev/affiliate-ledger/internal/orderevents"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
	"github.com/GlebRadaev/affiliate-ledger/internal/repo"
	"github.com/GlebRadaev/affiliate-ledger/internal/service"
	"github.com/GlebRadaev/affiliate-ledger/pkg/auth"
	"github.com/GlebRadaev/affiliate-ledger/pkg/clients"
	"github.com/GlebRadaev/affiliate-ledger/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg      *config.Config
	api      *handlers.Handlers
	srv      *service.Services
	repo     *repo.Repositories
	consumer *orderevents.Consumer
	closers  []func()

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

const shutdownTimeout = 5 * time.Second

// Start wires the ledger together and launches the HTTP API and, when
// brokers are configured, the order event consumer. Anything opened before a
// failure is released by Wait.
func (a *Application) Start(ctx context.Context) error {
	a.cfg = config.New()
	if err := logger.InitLogger(a.cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := a.openDatabase(ctx)
	if err != nil {
		zap.L().Error("database setup failed", zap.Error(err))
		return err
	}

	txManager := pg.NewTXManager(pool)
	a.repo = repo.New(pg.New(pool), txManager)
	a.srv = service.New(a.cfg, a.repo, txManager, couponcatalog.New(a.cfg, clients.NewHTTPClient()))
	a.api = handlers.New(a.srv, auth.NewJWTService(a.cfg.JWTSecret))

	a.serveHTTP(ctx)
	if err := a.startConsumer(ctx); err != nil {
		return fmt.Errorf("can't start order event consumer: %w", err)
	}

	a.ready = true
	zap.L().Info("affiliate ledger is up", zap.String("addr", a.cfg.Address))
	return nil
}

func (a *Application) openDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("can't parse database dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.closers = append(a.closers, pool.Close)

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database is unreachable: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("can't run migrations: %w", err)
	}
	return pool, nil
}

func (a *Application) serveHTTP(ctx context.Context) {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := &http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()
	go func() {
		defer a.wg.Done()
		zap.L().Info("http server listening", zap.String("addr", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()
}

func (a *Application) startConsumer(ctx context.Context) error {
	if len(a.cfg.Brokers()) == 0 {
		zap.L().Info("no kafka brokers configured, order event consumer disabled")
		return nil
	}

	dedup, err := a.dedup(ctx)
	if err != nil {
		return err
	}
	dispatcher := orderevents.NewDispatcher(a.srv.LedgerService, a.srv.AttributionService)
	a.consumer = orderevents.NewConsumer(a.cfg, orderevents.NewKafkaReader(a.cfg), dispatcher, dedup)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Run(ctx); err != nil {
			a.errCh <- fmt.Errorf("order event consumer exited with error: %w", err)
		}
		if err := a.consumer.Close(); err != nil {
			zap.L().Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	return nil
}

func (a *Application) dedup(ctx context.Context) (orderevents.Dedup, error) {
	if a.cfg.RedisURL == "" {
		zap.L().Info("no redis configured, order events are deduplicated by the ledger only")
		return orderevents.NoopDedup{}, nil
	}
	client, err := orderevents.ConnectRedis(a.cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := client.Close(); err != nil {
			zap.L().Error("failed to close redis client", zap.Error(err))
		}
	})
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis is unreachable, continuing without a warm dedup cache", zap.Error(err))
	}
	return orderevents.NewRedisDedup(client), nil
}

// Wait blocks until ctx is done or a component fails, then stops every
// component and releases resources in reverse order of acquisition.
func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var (
		firstErr error
		drained  = make(chan struct{})
	)
	go func() {
		defer close(drained)
		for err := range a.errCh {
			zap.L().Error("component failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			cancel()
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	<-drained

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	return firstErr
}
