// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	formhandler "pulseform/internal/form/handler"
	formmodels "pulseform/internal/form/models"
	formservice "pulseform/internal/form/service"
	formstore "pulseform/internal/form/store"
	"pulseform/internal/platform/config"
	"pulseform/internal/platform/httpserver"
	"pulseform/internal/platform/logger"
	"pulseform/internal/platform/metrics"
	"pulseform/internal/platform/middleware"
	platformredis "pulseform/internal/platform/redis"
	subhandler "pulseform/internal/submission/handler"
	"pulseform/internal/submission/notify"
	subservice "pulseform/internal/submission/service"
	substore "pulseform/internal/submission/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		formStore formservice.Store
		subStore  subservice.Store
		ruleSrc   subservice.RuleSource
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		pg := formstore.NewPostgres(db)
		formStore = pg
		ruleSrc = pg
		subStore = substore.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		mem := formstore.NewMemory()
		formStore = mem
		ruleSrc = mem
		subStore = substore.NewMemory()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	var defCache formservice.DefinitionCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		defCache = formstore.NewRedisDefinitionCache(redisClient.Client, cfg.DefinitionCacheTTL, log)
		log.Info("definition cache enabled")
	}

	m := metrics.New()
	worker := notify.NewWorker(log, 256)

	formSvc := formservice.New(formStore, defCache, log)
	subSvc := subservice.New(subStore, ruleSrc, worker, m, log, subservice.Config{
		DuplicateWindow:  cfg.DuplicateWindow,
		UrgentPathMarker: cfg.UrgentPathMarker,
		Bands: formmodels.TierBands{
			Price: cfg.PriceBands,
			Usage: cfg.UsageBands,
		},
	})

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Timeout(30*time.Second),
		middleware.CORS,
		middleware.ClientMetadata,
	)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/api/v1", func(r chi.Router) {
		formhandler.New(formSvc, log).Register(r)
		subhandler.New(subSvc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting pulseform", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
