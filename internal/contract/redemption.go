package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/enable/internal/crypto/sign"
	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/state"
)

// SignedMessage is the result of a successful redemption
type SignedMessage struct {
	Signature []byte
	PublicKey []byte
	Scheme    string
}

// RedemptionService redeems challenges for signatures
type RedemptionService struct {
	store      state.Store
	users      *UserRegistry
	challenges *ChallengeStore
	scheme     sign.Scheme
}

// NewRedemptionService creates a redemption service signing with scheme
func NewRedemptionService(store state.Store, users *UserRegistry, challenges *ChallengeStore, scheme sign.Scheme) *RedemptionService {
	return &RedemptionService{
		store:      store,
		users:      users,
		challenges: challenges,
		scheme:     scheme,
	}
}

// SignMessage redeems the challenge issued with code and signs message with the
// key of the challenge owner. The challenge is persisted as used only after the
// signature is produced; on any error state is left untouched.
func (s *RedemptionService) SignMessage(ctx context.Context, code models.Code, message []byte) (*SignedMessage, error) {
	logins, err := s.challenges.logins(ctx)
	if err != nil {
		return nil, err
	}

	login := findLogin(logins, code)
	if login == nil {
		return nil, ErrCodeNotFound
	}
	if !login.Valid {
		return nil, ErrCodeAlreadyUsed
	}

	// Только рабочая копия, в хранилище пока ничего не пишем
	login.Valid = false

	users, err := s.users.users(ctx)
	if err != nil {
		return nil, err
	}

	user := findUser(users, login.UserID)
	if user == nil {
		return nil, fmt.Errorf("%w: challenge references missing user %q", ErrInvariant, login.UserID)
	}

	keyPair, err := s.scheme.KeyPair(user.PrivateKey)
	if err != nil {
		if errors.Is(err, sign.ErrMalformedKey) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedKeyMaterial, err)
		}
		return nil, fmt.Errorf("failed to reconstruct key pair: %w", err)
	}

	signature, err := keyPair.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	if err := state.Save(ctx, s.store, state.Logins, logins); err != nil {
		return nil, err
	}

	publicKey := user.PublicKey
	if len(publicKey) == 0 {
		publicKey = keyPair.PublicKey()
	}

	return &SignedMessage{
		Signature: signature,
		PublicKey: publicKey,
		Scheme:    s.scheme.Name(),
	}, nil
}
