package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	GatewayAddress      string
	DatabaseURI         string
	SessionSecret       string
	SessionStrategy     string
	SessionTTL          time.Duration
	CookieSecure        bool
	GatewayTimeout      time.Duration
	ProfileSyncInterval time.Duration
	ProfileSyncWorkers  int
	ProfileSyncBatch    int
	ShutdownTimeout     time.Duration
	CORSAllowedOrigins  []string
	OTelExporter        string
	OTelEndpoint        string
	ServiceName         string
}

const (
	StrategyJWT  = "jwt"
	StrategyHMAC = "hmac"

	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

const (
	defaultRunAddress          = ":8080"
	defaultSessionSecret       = "change-me-in-production"
	defaultSessionStrategy     = StrategyJWT
	defaultSessionTTL          = 24 * time.Hour
	defaultGatewayTimeout      = 10 * time.Second
	defaultProfileSyncInterval = 30 * time.Second
	defaultProfileSyncWorkers  = 2
	defaultProfileSyncBatch    = 32
	defaultShutdownTimeout     = 10 * time.Second
	defaultOTelExporter        = ExporterNone
	defaultServiceName         = "bankportal"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		GatewayAddress:      getString(lookup, "GATEWAY_ADDRESS", ""),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		SessionSecret:       getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionStrategy:     getString(lookup, "SESSION_STRATEGY", defaultSessionStrategy),
		SessionTTL:          getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		CookieSecure:        getBool(lookup, "COOKIE_SECURE", false),
		GatewayTimeout:      getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		ProfileSyncInterval: getDuration(lookup, "PROFILE_SYNC_INTERVAL", defaultProfileSyncInterval),
		ProfileSyncWorkers:  getInt(lookup, "PROFILE_SYNC_WORKERS", defaultProfileSyncWorkers),
		ProfileSyncBatch:    getInt(lookup, "PROFILE_SYNC_BATCH", defaultProfileSyncBatch),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		OTelExporter:        getString(lookup, "OTEL_EXPORTER", defaultOTelExporter),
		OTelEndpoint:        getString(lookup, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:         getString(lookup, "SERVICE_NAME", defaultServiceName),
	}

	fs := flag.NewFlagSet("bankportal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		syncIntervalStr    = cfg.ProfileSyncInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		corsOrigins        = getString(lookup, "CORS_ALLOWED_ORIGINS", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "API gateway base URL")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for the session store")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session cookies")
	fs.StringVar(&cfg.SessionStrategy, "session-strategy", cfg.SessionStrategy, "Session token format: jwt or hmac")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session lifetime")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "Mark the session cookie as Secure")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Gateway request timeout")
	fs.StringVar(&syncIntervalStr, "sync-interval", syncIntervalStr, "Interval between profile sync runs")
	fs.IntVar(&cfg.ProfileSyncWorkers, "sync-workers", cfg.ProfileSyncWorkers, "Number of concurrent profile sync workers")
	fs.IntVar(&cfg.ProfileSyncBatch, "sync-batch", cfg.ProfileSyncBatch, "Maximum sessions per sync run")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated list of allowed CORS origins")
	fs.StringVar(&cfg.OTelExporter, "otel-exporter", cfg.OTelExporter, "Trace exporter: none, stdout or otlp")
	fs.StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP endpoint")
	fs.StringVar(&cfg.ServiceName, "service-name", cfg.ServiceName, "Service name reported to tracing")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.ProfileSyncInterval, err = time.ParseDuration(syncIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sync interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSAllowedOrigins = parseCSV(corsOrigins)
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			return nil, fmt.Errorf("cors origin \"*\" is not allowed with credentials")
		}
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.ProfileSyncInterval <= 0 {
		cfg.ProfileSyncInterval = defaultProfileSyncInterval
	}

	if cfg.ProfileSyncWorkers <= 0 {
		cfg.ProfileSyncWorkers = defaultProfileSyncWorkers
	}

	if cfg.ProfileSyncBatch <= 0 {
		cfg.ProfileSyncBatch = defaultProfileSyncBatch
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.SessionStrategy = strings.ToLower(cfg.SessionStrategy)
	if cfg.SessionStrategy != StrategyJWT && cfg.SessionStrategy != StrategyHMAC {
		return nil, fmt.Errorf("unknown session strategy %q", cfg.SessionStrategy)
	}

	cfg.OTelExporter = strings.ToLower(cfg.OTelExporter)
	switch cfg.OTelExporter {
	case ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if cfg.OTelEndpoint == "" {
			return nil, fmt.Errorf("otlp exporter requires an endpoint")
		}
	default:
		return nil, fmt.Errorf("unknown otel exporter %q", cfg.OTelExporter)
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("gateway address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
