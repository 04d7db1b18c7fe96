package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	"github.com/BruksfildServices01/clinic-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-booking/internal/db"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/observability"
	"github.com/BruksfildServices01/clinic-booking/internal/routes"
	"github.com/BruksfildServices01/clinic-booking/internal/store"
)

func main() {
	cfg := config.Load()
	observability.InitLogger("clinic-booking", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		persister domain.Persister
		db        *gorm.DB
		sink      audit.Sink = audit.LogSink{}
	)

	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := dbpkg.NewRedis(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer client.Close()
		persister = repository.NewRedisStatePersister(client, cfg.StorageKey)
	case config.BackendPostgres:
		var err error
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		persister = repository.NewGormStatePersister(db, cfg.StorageKey)
		sink = audit.MultiSink{audit.LogSink{}, audit.NewGormSink(db)}
	case config.BackendMemory:
	default:
		log.Fatal().Str("backend", cfg.StorageBackend).Msg("unknown storage backend")
	}

	st := store.New(store.Options{
		Persister:         persister,
		EnforceReferences: cfg.StrictReferences,
	})
	if err := st.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("stored appointments unreadable, starting empty")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(reg)

	dispatcher := audit.NewDispatcher(sink)
	defer dispatcher.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	sessions := routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Store:    st,
		Audit:    dispatcher,
		Metrics:  bookingMetrics,
		Gatherer: reg,
		DB:       db,
	})
	if err := sessions.Start(cfg.SessionSweepSpec); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.SessionSweepSpec).Msg("invalid session sweep spec")
	}
	defer sessions.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("storage", cfg.StorageBackend).
			Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
