package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/sikkim-flood-portal/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/sikkim-flood-portal/internal/adapter/kafka"
	"github.com/couchcryptid/sikkim-flood-portal/internal/adapter/mapbox"
	"github.com/couchcryptid/sikkim-flood-portal/internal/activity"
	"github.com/couchcryptid/sikkim-flood-portal/internal/config"
	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
	"github.com/couchcryptid/sikkim-flood-portal/internal/portal"
	"github.com/couchcryptid/sikkim-flood-portal/internal/session"
	"github.com/couchcryptid/sikkim-flood-portal/internal/upload"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := cfg.MockSeed
	if cfg.MockRandomize {
		seed = domain.RandomSeed()
	}
	catalog := domain.NewCatalog(domain.DefaultStudyAreas(), seed)
	logger.Info("catalog generated", "seed", seed, "areas", len(catalog.Areas()), "images", len(catalog.Images()))

	// Area enrichment is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		metrics.GeocodeEnabled.Set(1)
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		catalog = catalog.WithAreas(domain.EnrichAreas(ctx, catalog.Areas(), geocoder, logger))
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Activity events go to Kafka when enabled, otherwise to the log.
	var loader activity.BatchLoader
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = writer
		logger.Info("activity publishing to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaActivityTopic)
	} else {
		loader = activity.NewLogLoader(logger)
	}

	buffer := activity.NewBuffer(cfg.ActivityBuffer, cfg.BatchFlushInterval, clock, metrics)
	pipeline := activity.New(buffer, loader, logger, metrics, cfg.BatchSize)

	store := session.NewStore(session.StoreConfig{
		Capacity:      cfg.SessionCapacity,
		IdleTTL:       cfg.SessionIdleTTL,
		SweepSchedule: cfg.SessionSweepSchedule,
	}, catalog, clock, metrics, logger)

	svc := portal.NewService(catalog, domain.DefaultContent(cfg.MapEmbedURL), store,
		upload.NewIngester(clock, metrics, logger), buffer, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Options{
		AssetDir:           cfg.AssetDir,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		UploadMaxBytes:     cfg.UploadMaxBytes,
	}, svc, pipeline, metrics, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start idle session sweeper.
	go func() {
		if err := store.Run(ctx); err != nil {
			logger.Error("session sweeper error", "error", err)
		}
	}()

	// Start activity stream. It runs on its own context so events recorded by
	// requests drained during shutdown still reach the final flush.
	// pipelineDone closes after that flush.
	pipelineCtx, stopPipeline := context.WithCancel(context.Background())
	defer stopPipeline()
	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		if err := pipeline.Run(pipelineCtx); err != nil {
			logger.Error("activity pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	stopPipeline()
	select {
	case <-pipelineDone:
	case <-shutdownCtx.Done():
		logger.Warn("activity pipeline did not stop before shutdown timeout")
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
