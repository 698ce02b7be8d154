package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront-checkout/internal/pricing"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	StorefrontAPIAddress string
	JWTSecret            string
	DefaultJWTSecret     bool
	LogLevel             string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	KafkaBrokers    []string
	KafkaOrderTopic string

	DraftTTL        time.Duration
	UpstreamTimeout time.Duration
	ShutdownTimeout time.Duration

	EventWorkers   int
	EventQueueSize int

	Pricing          pricing.Policy
	GiftMessageLimit int
	NotesLimit       int
}

const (
	defaultRunAddress       = ":8080"
	defaultJWTSecret        = "change-me-in-production"
	defaultLogLevel         = "info"
	defaultKafkaOrderTopic  = "orders.placed"
	defaultDraftTTL         = 30 * time.Minute
	defaultUpstreamTimeout  = 5 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultEventWorkers     = 2
	defaultEventQueueSize   = 128
	defaultGiftMessageLimit = 200
	defaultNotesLimit       = 500
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		StorefrontAPIAddress: getString(lookup, "STOREFRONT_API_ADDRESS", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RedisAddress:         getString(lookup, "REDIS_ADDRESS", ""),
		RedisPassword:        getString(lookup, "REDIS_PASSWORD", ""),
		KafkaOrderTopic:      getString(lookup, "KAFKA_ORDER_TOPIC", defaultKafkaOrderTopic),
		DraftTTL:             defaultDraftTTL,
		UpstreamTimeout:      defaultUpstreamTimeout,
		ShutdownTimeout:      defaultShutdownTimeout,
		EventWorkers:         defaultEventWorkers,
		EventQueueSize:       defaultEventQueueSize,
		Pricing:              pricing.DefaultPolicy(),
		GiftMessageLimit:     defaultGiftMessageLimit,
		NotesLimit:           defaultNotesLimit,
	}

	if err := loadNumbers(cfg, lookup); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr         = getString(lookup, "KAFKA_BROKERS", "")
		draftTTLStr        = cfg.DraftTTL.String()
		upstreamTimeoutStr = cfg.UpstreamTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StorefrontAPIAddress, "r", cfg.StorefrontAPIAddress, "Storefront API base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for checkout drafts")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers")
	fs.StringVar(&cfg.KafkaOrderTopic, "kafka-topic", cfg.KafkaOrderTopic, "Kafka topic for placed orders")
	fs.StringVar(&draftTTLStr, "draft-ttl", draftTTLStr, "Checkout draft lifetime")
	fs.StringVar(&upstreamTimeoutStr, "upstream-timeout", upstreamTimeoutStr, "Storefront API request timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.EventWorkers, "event-workers", cfg.EventWorkers, "Number of order event publishers")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.DraftTTL, err = time.ParseDuration(draftTTLStr); err != nil {
		return nil, fmt.Errorf("invalid draft ttl: %w", err)
	}

	if cfg.UpstreamTimeout, err = time.ParseDuration(upstreamTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := loadPricing(&cfg.Pricing, lookup); err != nil {
		return nil, err
	}

	cfg.KafkaBrokers = splitList(brokersStr)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	cfg.DefaultJWTSecret = cfg.JWTSecret == defaultJWTSecret

	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = defaultDraftTTL
	}

	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = defaultUpstreamTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.EventWorkers <= 0 {
		cfg.EventWorkers = defaultEventWorkers
	}

	if cfg.EventQueueSize <= 0 {
		cfg.EventQueueSize = defaultEventQueueSize
	}

	if cfg.GiftMessageLimit <= 0 {
		cfg.GiftMessageLimit = defaultGiftMessageLimit
	}

	if cfg.NotesLimit <= 0 {
		cfg.NotesLimit = defaultNotesLimit
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StorefrontAPIAddress == "" {
		return nil, fmt.Errorf("storefront API address must be provided")
	}

	return cfg, nil
}

func loadNumbers(cfg *Config, lookup envLookup) error {
	ints := []struct {
		key    string
		target *int
	}{
		{"REDIS_DB", &cfg.RedisDB},
		{"EVENT_WORKERS", &cfg.EventWorkers},
		{"EVENT_QUEUE_SIZE", &cfg.EventQueueSize},
		{"GIFT_MESSAGE_LIMIT", &cfg.GiftMessageLimit},
		{"NOTES_LIMIT", &cfg.NotesLimit},
	}
	for _, f := range ints {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", strings.ToLower(f.key), err)
		}
		*f.target = n
	}

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"DRAFT_TTL", &cfg.DraftTTL},
		{"UPSTREAM_TIMEOUT", &cfg.UpstreamTimeout},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, f := range durations {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", strings.ToLower(f.key), err)
		}
		*f.target = d
	}
	return nil
}

func loadPricing(p *pricing.Policy, lookup envLookup) error {
	fields := []struct {
		key    string
		target *decimal.Decimal
		ratio  bool
	}{
		{"POINT_VALUE", &p.PointValue, false},
		{"POINTS_SUBTOTAL_CAP", &p.SubtotalCap, true},
		{"POINTS_ORDER_TOTAL_CAP", &p.OrderTotalCap, true},
		{"POINTS_PER_UNIT", &p.PointsPerUnit, false},
		{"GIFT_WRAP_FEE", &p.GiftWrapFee, false},
	}
	for _, f := range fields {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", strings.ToLower(f.key), err)
		}
		if d.IsNegative() {
			return fmt.Errorf("invalid %s: must not be negative", strings.ToLower(f.key))
		}
		if f.ratio && d.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("invalid %s: must not exceed 1", strings.ToLower(f.key))
		}
		*f.target = d
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}
