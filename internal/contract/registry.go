package contract

import (
	"context"

	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/state"
)

// UserRegistry is an append-only list of users kept under state.Users
type UserRegistry struct {
	store state.Store
}

// NewUserRegistry creates a registry over store
func NewUserRegistry(store state.Store) *UserRegistry {
	return &UserRegistry{store: store}
}

// AddUser appends a user. Neither id uniqueness nor key length is checked here:
// a bad key surfaces as ErrMalformedKeyMaterial on redemption.
func (r *UserRegistry) AddUser(ctx context.Context, id string, privateKey, publicKey []byte) error {
	users, err := r.users(ctx)
	if err != nil {
		return err
	}

	users = append(users, models.User{
		ID:         id,
		PrivateKey: append([]byte(nil), privateKey...),
		PublicKey:  append([]byte(nil), publicKey...),
	})

	return state.Save(ctx, r.store, state.Users, users)
}

// FindUser returns the first user registered under id
func (r *UserRegistry) FindUser(ctx context.Context, id string) (*models.User, error) {
	users, err := r.users(ctx)
	if err != nil {
		return nil, err
	}

	user := findUser(users, id)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *UserRegistry) users(ctx context.Context) ([]models.User, error) {
	return state.Load[models.User](ctx, r.store, state.Users)
}

// findUser - первое совпадение в порядке вставки
func findUser(users []models.User, id string) *models.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}
