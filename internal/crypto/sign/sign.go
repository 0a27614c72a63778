// Package sign reconstructs signing key pairs from stored secret keys and signs
// raw message bytes with them.
//
// Hashing and domain separation belong to the scheme: secp256k1 signs the
// Keccak-256 digest of the message, ed25519 signs the message itself.
package sign

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SecretKeySize is the length of a secret key for every supported scheme
const SecretKeySize = 32

var (
	// ErrMalformedKey indicates that secret key bytes cannot form a key pair
	ErrMalformedKey = errors.New("malformed key material")

	// ErrUnknownScheme indicates an unsupported scheme name
	ErrUnknownScheme = errors.New("unknown signature scheme")
)

// Scheme reconstructs key pairs and verifies signatures
type Scheme interface {
	// Name returns the scheme identifier used in configuration and responses
	Name() string

	// KeyPair reconstructs a key pair from a SecretKeySize-byte secret.
	// Returns an error wrapping ErrMalformedKey for unusable secrets.
	KeyPair(secret []byte) (KeyPair, error)

	// Verify reports whether signature is valid for message under publicKey
	Verify(publicKey, message, signature []byte) bool
}

// KeyPair is a reconstructed signing key
type KeyPair interface {
	// PublicKey returns the serialized public key
	PublicKey() []byte

	// Sign signs the raw message bytes
	Sign(message []byte) ([]byte, error)
}

var schemes = map[string]Scheme{
	Secp256k1Name: Secp256k1{},
	Ed25519Name:   Ed25519{},
}

// ByName returns the scheme registered under name (case-insensitive)
func ByName(name string) (Scheme, error) {
	scheme, ok := schemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownScheme, name, strings.Join(Names(), ", "))
	}
	return scheme, nil
}

// Names returns the supported scheme names in sorted order
func Names() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkSecretSize(secret []byte) error {
	if len(secret) != SecretKeySize {
		return fmt.Errorf("%w: secret key must be %d bytes, got %d", ErrMalformedKey, SecretKeySize, len(secret))
	}
	return nil
}
