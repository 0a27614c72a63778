package config

import "flag"

// parseFlags populates Config from command-line flags.
// Flags not given keep the value from the previous layers.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("enable-server", flag.ContinueOnError)

	// -config уже обработан в configPath, регистрируем только для Parse
	var configFile string
	fs.StringVar(&configFile, "config", "", "path to JSON config file")
	fs.StringVar(&configFile, "c", "", "path to JSON config file (shorthand)")

	fs.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "HTTP listen address")
	fs.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "state backend: memory, bolt, sqlite, postgres, redis")
	fs.StringVar(&cfg.StoreDSN, "dsn", cfg.StoreDSN, "state location: file path, postgres DSN or redis URL")
	fs.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "redis key prefix")
	fs.StringVar(&cfg.SealPassphrase, "seal-passphrase", cfg.SealPassphrase, "encrypt state at rest with this passphrase")
	fs.StringVar(&cfg.SealSalt, "seal-salt", cfg.SealSalt, "base64 salt for the sealing key")
	fs.StringVar(&cfg.Scheme, "scheme", cfg.Scheme, "signature scheme: secp256k1, ed25519")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "operator token secret, empty disables operator auth")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "operator token lifetime")
	fs.IntVar(&cfg.SignRateLimit, "sign-rate", cfg.SignRateLimit, "sign requests per client per window")
	fs.DurationVar(&cfg.SignRateWindow, "sign-window", cfg.SignRateWindow, "sign rate limit window")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "take the client address for rate limiting from proxy headers")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: json, text")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")

	return fs.Parse(args)
}
