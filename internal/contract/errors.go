package contract

import "errors"

// Contract errors
var (
	// ErrUserNotFound indicates that no user is registered under the id
	ErrUserNotFound = errors.New("user not found")

	// ErrCodeNotFound indicates that no challenge was issued with the code
	ErrCodeNotFound = errors.New("code not found")

	// ErrCodeAlreadyUsed indicates that the challenge was already redeemed
	ErrCodeAlreadyUsed = errors.New("code already used")

	// ErrMalformedKeyMaterial indicates that the stored private key cannot form a key pair
	ErrMalformedKeyMaterial = errors.New("malformed key material")

	// ErrInvariant indicates corrupted state: a challenge references a missing user
	ErrInvariant = errors.New("internal invariant violated")
)
