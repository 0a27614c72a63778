// Package contract implements the user registry, the login challenge lifecycle
// and the redeem-once signing operation on top of a state.Store.
//
// UserRegistry, ChallengeStore and RedemptionService assume serialized calls.
// Contract is the serialization point for concurrent hosts.
package contract

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/iudanet/enable/internal/crypto"
	"github.com/iudanet/enable/internal/crypto/sign"
	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/state"
)

// Contract exposes AddUser, AddLogin and SignMessage and runs them one at a time
type Contract struct {
	logger     *slog.Logger
	scheme     sign.Scheme
	users      *UserRegistry
	challenges *ChallengeStore
	redemption *RedemptionService
	mu         sync.Mutex
}

// New wires the registry, the challenge store and the redemption service over one store
func New(store state.Store, scheme sign.Scheme, logger *slog.Logger) *Contract {
	users := NewUserRegistry(store)
	challenges := NewChallengeStore(store, users)

	return &Contract{
		logger:     logger,
		scheme:     scheme,
		users:      users,
		challenges: challenges,
		redemption: NewRedemptionService(store, users, challenges, scheme),
	}
}

// Scheme returns the name of the signature scheme in use
func (c *Contract) Scheme() string {
	return c.scheme.Name()
}

// AddUser registers a user
func (c *Contract) AddUser(ctx context.Context, id string, privateKey, publicKey []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.users.AddUser(ctx, id, privateKey, publicKey); err != nil {
		c.logger.ErrorContext(ctx, "failed to add user",
			slog.String("user_id", id),
			operatorAttr(ctx),
			slog.Any("error", err))
		return err
	}

	c.logger.InfoContext(ctx, "user added",
		slog.String("user_id", id),
		slog.String("public_key", crypto.Fingerprint(publicKey)),
		operatorAttr(ctx))
	return nil
}

// AddLogin issues a challenge for userID
func (c *Contract) AddLogin(ctx context.Context, userID string, code models.Code) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.challenges.AddLogin(ctx, userID, code); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.logger.WarnContext(ctx, "login for unknown user", slog.String("user_id", userID), operatorAttr(ctx))
			return err
		}
		c.logger.ErrorContext(ctx, "failed to add login",
			slog.String("user_id", userID),
			operatorAttr(ctx),
			slog.Any("error", err))
		return err
	}

	c.logger.InfoContext(ctx, "login added", slog.String("user_id", userID), operatorAttr(ctx))
	return nil
}

// SignMessage redeems code and signs message
func (c *Contract) SignMessage(ctx context.Context, code models.Code, message []byte) (*SignedMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	signed, err := c.redemption.SignMessage(ctx, code, message)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeNotFound), errors.Is(err, ErrCodeAlreadyUsed):
			// Коды в логи не пишем
			c.logger.WarnContext(ctx, "redemption rejected", slog.Any("error", err))
		case errors.Is(err, ErrInvariant):
			c.logger.ErrorContext(ctx, "state invariant violated", slog.Any("error", err))
		default:
			c.logger.ErrorContext(ctx, "failed to sign message", slog.Any("error", err))
		}
		return nil, err
	}

	c.logger.InfoContext(ctx, "message signed",
		slog.String("scheme", signed.Scheme),
		slog.String("public_key", crypto.Fingerprint(signed.PublicKey)))
	return signed, nil
}
