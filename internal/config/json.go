package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Duration accepts both "90s" style strings and integer nanoseconds in JSON
type Duration struct {
	time.Duration
}

// UnmarshalJSON parses a duration string or a number of nanoseconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// JSONConfig is the file representation of Config.
// Absent fields keep the value from the previous layer.
type JSONConfig struct {
	ListenAddr      *string   `json:"listen_addr"`
	StoreBackend    *string   `json:"store_backend"`
	StoreDSN        *string   `json:"store_dsn"`
	RedisPrefix     *string   `json:"redis_prefix"`
	SealPassphrase  *string   `json:"seal_passphrase"`
	SealSalt        *string   `json:"seal_salt"`
	Scheme          *string   `json:"scheme"`
	JWTSecret       *string   `json:"jwt_secret"`
	LogLevel        *string   `json:"log_level"`
	LogFormat       *string   `json:"log_format"`
	TokenTTL        *Duration `json:"token_ttl"`
	SignRateWindow  *Duration `json:"sign_rate_window"`
	ShutdownTimeout *Duration `json:"shutdown_timeout"`
	SignRateLimit   *int      `json:"sign_rate_limit"`
	TrustProxy      *bool     `json:"trust_proxy"`
}

// configPath ищет -config/-c в аргументах, затем ENABLE_CONFIG
func configPath(args []string, getenv func(string) string) string {
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !strings.HasPrefix(args[i], "-") || (name != "config" && name != "c") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return getenv(envPrefix + "CONFIG")
}

// parseJSON overlays values from the JSON file at path
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&cfg.ListenAddr, c.ListenAddr)
	setString(&cfg.StoreBackend, c.StoreBackend)
	setString(&cfg.StoreDSN, c.StoreDSN)
	setString(&cfg.RedisPrefix, c.RedisPrefix)
	setString(&cfg.SealPassphrase, c.SealPassphrase)
	setString(&cfg.SealSalt, c.SealSalt)
	setString(&cfg.Scheme, c.Scheme)
	setString(&cfg.JWTSecret, c.JWTSecret)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogFormat, c.LogFormat)
	setDuration(&cfg.TokenTTL, c.TokenTTL)
	setDuration(&cfg.SignRateWindow, c.SignRateWindow)
	setDuration(&cfg.ShutdownTimeout, c.ShutdownTimeout)
	if c.SignRateLimit != nil {
		cfg.SignRateLimit = *c.SignRateLimit
	}
	if c.TrustProxy != nil {
		cfg.TrustProxy = *c.TrustProxy
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
