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

	"github.com/baharkarakas/projectify-backend/internal/api"
	"github.com/baharkarakas/projectify-backend/internal/auth"
	"github.com/baharkarakas/projectify-backend/internal/cache"
	"github.com/baharkarakas/projectify-backend/internal/config"
	"github.com/baharkarakas/projectify-backend/internal/db"
	"github.com/baharkarakas/projectify-backend/internal/logger"
	"github.com/baharkarakas/projectify-backend/internal/metrics"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"github.com/baharkarakas/projectify-backend/internal/repository/memory"
	mongostore "github.com/baharkarakas/projectify-backend/internal/repository/mongo"
	"github.com/baharkarakas/projectify-backend/internal/repository/postgres"
	"github.com/baharkarakas/projectify-backend/internal/services"
	"github.com/baharkarakas/projectify-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	reportCache := openCache(ctx, cfg, log)

	wp := worker.NewPool(cfg.Workers)
	defer wp.Stop()

	metrics.Init(func() float64 { return float64(wp.Depth()) })

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	repos := store.Repos()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		TM:         tm,
		UserSvc:    services.NewUserService(repos.Users, tm, log),
		ProjectSvc: services.NewProjectService(repos.Projects, log),
		ReportSvc:  services.NewReportService(store, reportCache, wp, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.Store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		return postgres.NewStore(pool), nil

	case config.StoreMongo:
		client, err := db.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		st := mongostore.NewStore(client, cfg.MongoDB, cfg.MongoTx)
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return st, nil

	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// openCache returns the redis report cache, or a no-op cache when REDIS_ADDR
// is unset or redis is unreachable at startup.
func openCache(ctx context.Context, cfg config.Config, log *slog.Logger) cache.Reports {
	if cfg.RedisAddr == "" {
		return cache.Noop{}
	}
	client := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, report cache disabled", "addr", cfg.RedisAddr, "err", err)
		_ = client.Close()
		return cache.Noop{}
	}
	return cache.NewRedisReports(client, cfg.CacheTTL)
}
