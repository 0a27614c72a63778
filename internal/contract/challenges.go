package contract

import (
	"context"

	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/state"
)

// ChallengeStore is an append-only list of login challenges kept under state.Logins
type ChallengeStore struct {
	store state.Store
	users *UserRegistry
}

// NewChallengeStore creates a challenge store that validates owners against users
func NewChallengeStore(store state.Store, users *UserRegistry) *ChallengeStore {
	return &ChallengeStore{store: store, users: users}
}

// AddLogin issues a valid challenge with code for userID.
// Returns ErrUserNotFound without touching state if the user does not exist.
func (c *ChallengeStore) AddLogin(ctx context.Context, userID string, code models.Code) error {
	if _, err := c.users.FindUser(ctx, userID); err != nil {
		return err
	}

	logins, err := c.logins(ctx)
	if err != nil {
		return err
	}

	logins = append(logins, models.Login{
		UserID: userID,
		Code:   code,
		Valid:  true,
	})

	return state.Save(ctx, c.store, state.Logins, logins)
}

// FindChallenge returns the first challenge issued with code, redeemed or not
func (c *ChallengeStore) FindChallenge(ctx context.Context, code models.Code) (*models.Login, error) {
	logins, err := c.logins(ctx)
	if err != nil {
		return nil, err
	}

	login := findLogin(logins, code)
	if login == nil {
		return nil, ErrCodeNotFound
	}
	return login, nil
}

func (c *ChallengeStore) logins(ctx context.Context) ([]models.Login, error) {
	return state.Load[models.Login](ctx, c.store, state.Logins)
}

// findLogin returns a pointer into logins so the caller can flip Valid in place
func findLogin(logins []models.Login, code models.Code) *models.Login {
	for i := range logins {
		if logins[i].Code.Equal(code) {
			return &logins[i]
		}
	}
	return nil
}
