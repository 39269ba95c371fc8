package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/config"
	"github.com/Jizar07/cabradapeste-sub002/internal/infra"
	"github.com/Jizar07/cabradapeste-sub002/internal/repository"
	"github.com/Jizar07/cabradapeste-sub002/internal/router"
	"github.com/Jizar07/cabradapeste-sub002/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
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

	// Worker pool for async tasks (alert delivery, PDF reports). Handlers are
	// wired here at the composition root with full infrastructure access.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	gerenteRepo := repository.NewGerenteRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)

	handlers := worker.Handlers{
		"alerta":    worker.NewAlertaWorker(mailer, cfg.AlertaEmail),
		"relatorio": worker.NewRelatorioWorker(gerenteRepo, lancamentoRepo, mailer, cfg.PDFStoragePath),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// One breaker guards the activity feed for both the cron and manual syncs.
	feedCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r, syncSvc := router.New(cfg, db, rdb, feedCB, dispatcher)

	worker.StartSyncCron(ctx, syncSvc, time.Duration(cfg.SyncIntervalSeconds)*time.Second)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("cabradapeste backend listening on :%d", cfg.Port)
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
