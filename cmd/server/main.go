package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stallpos/internal/config"
	"stallpos/internal/infra"
	"stallpos/internal/repository"
	"stallpos/internal/router"
	"stallpos/internal/service"
	"stallpos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async audit trail: the worker pool drains the Redis queue the dispatcher
	// fills and persists activity rows.
	activityRepo := repository.NewActivityLogRepository(db)
	worker.StartWorkerPool(ctx, rdb, activityRepo, cfg.WorkerPoolSize)

	// Background expiry sweep so stale batches never outlive the interval.
	dispatcher := worker.NewDispatcher(rdb)
	kitchenSvc := service.NewKitchenService(
		repository.NewRawIngredientRepository(db),
		repository.NewSemiProcessedRepository(db),
		repository.NewPurchasedGoodRepository(db),
		repository.NewRecipeRepository(db),
		repository.NewLedgerRepository(db),
		dispatcher,
	)
	worker.StartSweepCron(ctx, kitchenSvc, time.Duration(cfg.SweepIntervalMinutes)*time.Minute)

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("stallpos listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
