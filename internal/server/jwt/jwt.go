// Package jwt issues and validates operator bearer tokens.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the iss claim of every operator token
const Issuer = "enable"

// DefaultTTL is used when the service is created with a non-positive TTL
const DefaultTTL = time.Hour

var (
	// ErrNoSecret indicates that the service has no signing secret
	ErrNoSecret = errors.New("jwt secret is not configured")

	// ErrEmptyOperator indicates a token request without an operator name
	ErrEmptyOperator = errors.New("operator name is required")
)

// Claims represents operator token claims. Subject holds the operator name.
type Claims struct {
	jwt.RegisteredClaims
}

// Operator returns the operator name carried in the token
func (c *Claims) Operator() string {
	return c.Subject
}

// Service provides operator token generation and validation
type Service struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// NewService creates a new JWT service
// secret should be a cryptographically secure random string
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Enabled reports whether a secret is configured
func (s *Service) Enabled() bool {
	return len(s.secret) > 0
}

// GenerateToken creates an HS256 token for operator. Returns the token and its lifetime in seconds.
func (s *Service) GenerateToken(operator string) (string, int64, error) {
	if !s.Enabled() {
		return "", 0, ErrNoSecret
	}
	if operator == "" {
		return "", 0, ErrEmptyOperator
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator,
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(s.ttl.Seconds()), nil
}

// ValidateToken validates and parses an operator token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if !s.Enabled() {
		return nil, ErrNoSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, ErrEmptyOperator
	}

	return claims, nil
}
