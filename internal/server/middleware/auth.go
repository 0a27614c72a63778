package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/enable/internal/server/jwt"
	"github.com/iudanet/enable/pkg/api"
)

type operatorKey struct{}

// OperatorFromContext возвращает имя оператора, прошедшего аутентификацию
func OperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(operatorKey{}).(string)
	return operator, ok
}

// OperatorAuth создает middleware для проверки operator bearer токена
// Если секрет не задан, запросы пропускаются без проверки (режим разработки)
func OperatorAuth(logger *slog.Logger, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !tokens.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "missing authorization header", slog.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				// Сам заголовок не логируем, в нем может быть токен
				logger.WarnContext(ctx, "invalid authorization header format", slog.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid token format")
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "invalid operator token", slog.Any("error", err))
				writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid token")
				return
			}

			logger.DebugContext(ctx, "operator authenticated", slog.String("operator", claims.Operator()))

			ctx = context.WithValue(ctx, operatorKey{}, claims.Operator())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
