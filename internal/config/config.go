package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Portal content.
	AssetDir    string
	MapEmbedURL string

	// Mock catalog generation.
	MockSeed      uint64
	MockRandomize bool

	// Visitor sessions.
	SessionCapacity      int
	SessionIdleTTL       time.Duration
	SessionSweepSchedule string
	UploadMaxBytes       int64
	CORSAllowedOrigins   []string

	// Activity stream.
	BatchSize          int
	BatchFlushInterval time.Duration
	ActivityBuffer     int
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaActivityTopic string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	idleTTL, err := parsePositiveDuration("SESSION_IDLE_TTL", "30m")
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	mockSeed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("MOCK_SEED", "2025"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid MOCK_SEED: must be an unsigned integer")
	}

	uploadMaxBytes, err := strconv.ParseInt(sharedcfg.EnvOrDefault("UPLOAD_MAX_BYTES", "33554432"), 10, 64)
	if err != nil || uploadMaxBytes <= 0 {
		return nil, errors.New("invalid UPLOAD_MAX_BYTES: must be a positive integer")
	}

	sweepSchedule := sharedcfg.EnvOrDefault("SESSION_SWEEP_SCHEDULE", "@every 1m")
	if _, err := cron.ParseStandard(sweepSchedule); err != nil {
		return nil, errors.New("invalid SESSION_SWEEP_SCHEDULE: " + err.Error())
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AssetDir:    sharedcfg.EnvOrDefault("ASSET_DIR", "public/Snippet"),
		MapEmbedURL: os.Getenv("MAP_EMBED_URL"),

		MockSeed:      mockSeed,
		MockRandomize: os.Getenv("MOCK_RANDOMIZE") == "true",

		SessionCapacity:      parsePositiveInt("SESSION_CAPACITY", 10000),
		SessionIdleTTL:       idleTTL,
		SessionSweepSchedule: sweepSchedule,
		UploadMaxBytes:       uploadMaxBytes,
		CORSAllowedOrigins:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		ActivityBuffer:     parsePositiveInt("ACTIVITY_BUFFER", 1024),
		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaActivityTopic: sharedcfg.EnvOrDefault("KAFKA_ACTIVITY_TOPIC", "flood-portal-activity"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parsePositiveInt("MAPBOX_CACHE_SIZE", 1000),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

// parsePositiveInt falls back to def on unset or malformed values.
func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
