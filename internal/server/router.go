// Package server assembles the HTTP API of the contract.
package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/enable/internal/server/handlers"
	"github.com/iudanet/enable/internal/server/jwt"
	"github.com/iudanet/enable/internal/server/middleware"
)

// HealthPath - путь health check, не пишется в access log
const HealthPath = "/api/v1/health"

// Options содержит зависимости роутера
type Options struct {
	Logger   *slog.Logger
	Contract handlers.Contract
	Tokens   *jwt.Service
	Limiter  *middleware.RateLimiter
	Version  string
	Scheme   string
	// TrustProxy - сервер работает за reverse proxy, который выставляет X-Real-IP / X-Forwarded-For
	TrustProxy bool
}

// NewRouter создает http.Handler со всеми маршрутами API
// Регистрация пользователей и выпуск challenge требуют operator токен,
// погашение challenge открыто, но ограничено по частоте
func NewRouter(opts Options) http.Handler {
	contractHandler := handlers.NewContractHandler(opts.Logger, opts.Contract)
	healthHandler := handlers.NewHealthHandler(opts.Logger, opts.Version, opts.Scheme)

	operator := middleware.OperatorAuth(opts.Logger, opts.Tokens)
	limited := middleware.RateLimit(opts.Limiter, opts.Logger, opts.TrustProxy)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+HealthPath, healthHandler.Health)
	mux.Handle("POST /api/v1/users", operator(http.HandlerFunc(contractHandler.AddUser)))
	mux.Handle("POST /api/v1/logins", operator(http.HandlerFunc(contractHandler.AddLogin)))
	mux.Handle("POST /api/v1/sign", limited(http.HandlerFunc(contractHandler.Sign)))

	return middleware.Chain(mux,
		middleware.Logging(opts.Logger, HealthPath),
		middleware.Recovery(opts.Logger),
	)
}
