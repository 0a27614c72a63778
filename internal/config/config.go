// Package config handles configuration for the server,
// including defaults, a JSON file overlay, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/enable/internal/crypto"
	"github.com/iudanet/enable/internal/crypto/sign"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Backends lists the supported store backends
var Backends = []string{BackendMemory, BackendBolt, BackendSQLite, BackendPostgres, BackendRedis}

// Config holds runtime settings for the server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - StoreBackend / StoreDSN: state backend and its location (file path, postgres DSN or redis URL).
//   - RedisPrefix: key prefix for the redis backend.
//   - SealPassphrase / SealSalt: when the passphrase is set, state is encrypted at rest;
//     the salt is base64 and must be at least 16 bytes.
//   - Scheme: signature scheme (secp256k1 or ed25519).
//   - JWTSecret / TokenTTL: operator token secret and lifetime. An empty secret disables operator auth.
//   - SignRateLimit / SignRateWindow: per-client budget of the sign endpoint.
//   - TrustProxy: key the sign budget on X-Real-IP / X-Forwarded-For set by a reverse proxy.
//     Leave it off when clients reach the server directly.
//   - LogLevel / LogFormat: slog level (debug, info, warn, error) and handler (json, text).
//   - ShutdownTimeout: graceful shutdown deadline.
type Config struct {
	ListenAddr      string
	StoreBackend    string
	StoreDSN        string
	RedisPrefix     string
	SealPassphrase  string
	SealSalt        string
	Scheme          string
	JWTSecret       string
	LogLevel        string
	LogFormat       string
	TokenTTL        time.Duration
	SignRateWindow  time.Duration
	ShutdownTimeout time.Duration
	SignRateLimit   int
	TrustProxy      bool
	ShowVersion     bool
}

// LoadDefaults populates Config with development defaults
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.StoreBackend = BackendBolt
	c.StoreDSN = "enable.db"
	c.RedisPrefix = "enable"
	c.Scheme = sign.Secp256k1Name
	c.TokenTTL = time.Hour
	c.SignRateLimit = 10
	c.SignRateWindow = time.Minute
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ShutdownTimeout = 10 * time.Second
}

// Load builds a Config by applying defaults, then overlaying values from an
// optional JSON file, then ENABLE_* environment variables and finally args.
// getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path := configPath(args, getenv)
	if path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := parseEnv(cfg, getenv); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values and their combinations
func (c *Config) Validate() error {
	var errs []error

	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen address is required"))
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendBolt, BackendSQLite, BackendPostgres, BackendRedis:
		if c.StoreDSN == "" {
			errs = append(errs, fmt.Errorf("store dsn is required for backend %q", c.StoreBackend))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q (supported: %s)", c.StoreBackend, strings.Join(Backends, ", ")))
	}

	if _, err := sign.ByName(c.Scheme); err != nil {
		errs = append(errs, err)
	}

	if c.SealPassphrase != "" {
		if _, err := crypto.DecodeSalt(c.SealSalt); err != nil {
			errs = append(errs, fmt.Errorf("invalid seal salt: %w", err))
		}
	}

	if c.SignRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("sign rate limit must be positive, got %d", c.SignRateLimit))
	}
	if c.SignRateWindow <= 0 {
		errs = append(errs, fmt.Errorf("sign rate window must be positive, got %s", c.SignRateWindow))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Sealed reports whether state must be encrypted at rest
func (c *Config) Sealed() bool {
	return c.SealPassphrase != ""
}
