package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/config"
	"github.com/baharkarakas/cat-tracker/internal/db"
	"github.com/baharkarakas/cat-tracker/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Error("migrations", "err", err)
		pool.Close()
		os.Exit(1)
	}
	log.Info("migrations up to date")
}
