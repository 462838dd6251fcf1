package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/api"
	"github.com/baharkarakas/cat-tracker/internal/auth"
	"github.com/baharkarakas/cat-tracker/internal/config"
	"github.com/baharkarakas/cat-tracker/internal/db"
	"github.com/baharkarakas/cat-tracker/internal/logger"
	"github.com/baharkarakas/cat-tracker/internal/metrics"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/baharkarakas/cat-tracker/internal/repository/memory"
	"github.com/baharkarakas/cat-tracker/internal/repository/postgres"
	"github.com/baharkarakas/cat-tracker/internal/services"
	"github.com/baharkarakas/cat-tracker/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	loc, err := cfg.WithdrawLocation()
	if err != nil {
		return err
	}

	metrics.Init()
	wp := worker.NewPool(cfg.WorkerCount)
	defer wp.Stop()

	audit := services.NewAuditor(repos.AuditLogs, wp)
	team := services.NewTeamService(repos.Users, repos.Transactions)
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		Tokens:   auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL),
		Accounts: services.NewAccountService(repos.Users, audit, cfg),
		Balances: services.NewBalanceService(repos.Balances),
		Wallet:   services.NewWalletService(repos, services.DefaultCatalog(), audit, loc),
		Team:     team,
		Admin:    services.NewAdminService(repos, team, audit),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "store", cfg.StoreDriver, "withdraw_tz", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore builds the repositories for STORE_DRIVER and returns a closer.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.Repositories, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn("using in-memory store; data is lost on exit")
		return memory.NewRepositories(memory.NewStore()), func() {}, nil
	case "postgres", "":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return repo.Repositories{}, nil, err
		}
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return repo.Repositories{}, nil, err
			}
		}
		return postgres.NewRepositories(pool), pool.Close, nil
	default:
		return repo.Repositories{}, nil, errors.New("unknown STORE_DRIVER " + cfg.StoreDriver)
	}
}
