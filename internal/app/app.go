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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/thetop36/internal/config"
	"github.com/GlebRadaev/thetop36/internal/handlers"
	"github.com/GlebRadaev/thetop36/internal/marksync"
	"github.com/GlebRadaev/thetop36/internal/pg"
	"github.com/GlebRadaev/thetop36/internal/realtime"
	"github.com/GlebRadaev/thetop36/internal/repo"
	"github.com/GlebRadaev/thetop36/internal/service"
	"github.com/GlebRadaev/thetop36/pkg/clients"
	"github.com/GlebRadaev/thetop36/pkg/logger"
	"github.com/GlebRadaev/thetop36/pkg/stripe"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg    *config.Config
	api    *handlers.Handlers
	srv    *service.Services
	repo   *repo.Repositories
	hub    *realtime.Hub
	marker *marksync.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)

	var redisClient redis.Cmdable
	if client := getRedisClient(ctx, cfg); client != nil {
		redisClient = client
	}

	stripeClient := stripe.NewClient(cfg.StripeAPIURL, cfg.StripeSecretKey, clients.NewHTTPClient())
	if cfg.StripeSecretKey == "" {
		zap.L().Warn("STRIPE_SECRET_KEY is not set, checkout and confirmation are disabled")
	}
	if cfg.StripeWebhookSecret == "" {
		zap.L().Warn("STRIPE_WEBHOOK_SECRET is not set, every webhook will be rejected")
	}

	a.cfg = cfg
	a.hub = realtime.NewHub(cfg.HubIdleTimeout, cfg.HubSweepInterval)
	a.repo = repo.New(conn, txManager, redisClient)
	a.srv = service.New(cfg, a.repo, stripeClient, a.hub)
	a.api = handlers.New(a.srv, cfg)
	a.marker = marksync.New(marksync.Config{
		Interval:  cfg.SyncInterval,
		Retention: cfg.ProcessedRetention,
	}, a.repo.PaymentRepo, stripeClient)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.hub.Start(ctx)
	if cfg.StripeSecretKey != "" {
		a.marker.Start(ctx)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// getRedisClient returns nil when no address is configured or the server is unreachable;
// the draw then falls back to the in-process cache.
func getRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		zap.L().Warn("redis unavailable, using in-memory draw cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		client.Close()
		return nil
	}
	return client
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
