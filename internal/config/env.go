package config

import (
	"fmt"
	"strconv"
	"time"
)

const envPrefix = "ENABLE_"

// parseEnv overlays ENABLE_* environment variables. Empty variables are ignored.
func parseEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"LISTEN_ADDR":     &cfg.ListenAddr,
		"STORE_BACKEND":   &cfg.StoreBackend,
		"STORE_DSN":       &cfg.StoreDSN,
		"REDIS_PREFIX":    &cfg.RedisPrefix,
		"SEAL_PASSPHRASE": &cfg.SealPassphrase,
		"SEAL_SALT":       &cfg.SealSalt,
		"SCHEME":          &cfg.Scheme,
		"JWT_SECRET":      &cfg.JWTSecret,
		"LOG_LEVEL":       &cfg.LogLevel,
		"LOG_FORMAT":      &cfg.LogFormat,
	}
	for name, dst := range strs {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"TOKEN_TTL":        &cfg.TokenTTL,
		"SIGN_RATE_WINDOW": &cfg.SignRateWindow,
		"SHUTDOWN_TIMEOUT": &cfg.ShutdownTimeout,
	}
	for name, dst := range durations {
		v := getenv(envPrefix + name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}

	if v := getenv(envPrefix + "SIGN_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSIGN_RATE_LIMIT: %w", envPrefix, err)
		}
		cfg.SignRateLimit = n
	}

	if v := getenv(envPrefix + "TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sTRUST_PROXY: %w", envPrefix, err)
		}
		cfg.TrustProxy = b
	}

	return nil
}
