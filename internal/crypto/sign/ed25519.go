package sign

import (
	"golang.org/x/crypto/ed25519"
)

// Ed25519Name is the identifier of the ed25519 scheme
const Ed25519Name = "ed25519"

// Ed25519 treats the 32-byte secret as an RFC 8032 seed
type Ed25519 struct{}

// Name returns "ed25519"
func (Ed25519) Name() string {
	return Ed25519Name
}

// KeyPair expands the seed into a private key
func (Ed25519) KeyPair(secret []byte) (KeyPair, error) {
	if err := checkSecretSize(secret); err != nil {
		return nil, err
	}
	return &ed25519KeyPair{key: ed25519.NewKeyFromSeed(secret)}, nil
}

// Verify checks an ed25519 signature over the raw message
func (Ed25519) Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(publicKey, message, signature)
}

type ed25519KeyPair struct {
	key ed25519.PrivateKey
}

func (k *ed25519KeyPair) PublicKey() []byte {
	return append([]byte(nil), k.key[ed25519.SeedSize:]...)
}

func (k *ed25519KeyPair) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.key, message), nil
}
