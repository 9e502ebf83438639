package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vaccination-schedule-api/internal/config"
	"vaccination-schedule-api/internal/handler"
	"vaccination-schedule-api/internal/logger"
	"vaccination-schedule-api/internal/middleware"
	"vaccination-schedule-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		lg.Errorf("db: %v", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		lg.Errorf("db ping: %v", err)
		os.Exit(1)
	}
	lg.Infof("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile(cfg.MigrationFile); err != nil {
		lg.Warnf("migration file not found, skipping: %v", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		lg.Warnf("migration warning: %v", err)
	} else {
		lg.Infof("migration applied")
	}

	st := store.New(pool, lg, cfg.QueryTimeout)
	h := handler.New(st, lg, cfg.JWTSecret)
	rl := middleware.NewRateLimiter(5, 10)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.Router(rl),
	}
	go func() {
		lg.Infof("http on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Errorf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	lg.Infof("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Errorf("shutdown: %v", err)
	}
}
