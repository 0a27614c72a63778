package sign

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

// Secp256k1Name is the identifier of the secp256k1 scheme
const Secp256k1Name = "secp256k1"

const (
	// Secp256k1SignatureSize - r (32) || s (32) || v (1)
	Secp256k1SignatureSize = 65
	// recoveryOffset - смещение v для несжатого ключа, как в Ethereum
	recoveryOffset = 27
)

// Secp256k1 signs Keccak-256 digests and produces 65-byte recoverable signatures
// laid out as r || s || v with v in {27, 28}. Public keys are 65-byte
// uncompressed SEC1 points.
type Secp256k1 struct{}

// Name returns "secp256k1"
func (Secp256k1) Name() string {
	return Secp256k1Name
}

// KeyPair rejects secrets that are zero or not below the group order
func (Secp256k1) KeyPair(secret []byte) (KeyPair, error) {
	if err := checkSecretSize(secret); err != nil {
		return nil, err
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(secret); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("%w: secret key is not a valid secp256k1 scalar", ErrMalformedKey)
	}

	return &secp256k1KeyPair{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// Verify recovers the signer from signature and compares it with publicKey.
// publicKey may be compressed (33 bytes), uncompressed (65 bytes) or the
// 64-byte form without the 0x04 prefix.
func (s Secp256k1) Verify(publicKey, message, signature []byte) bool {
	expected, err := parsePublicKey(publicKey)
	if err != nil {
		return false
	}

	recovered, err := recoverKey(message, signature)
	if err != nil {
		return false
	}

	return recovered.IsEqual(expected)
}

// Recover returns the uncompressed public key that produced signature over message
func (Secp256k1) Recover(message, signature []byte) ([]byte, error) {
	key, err := recoverKey(message, signature)
	if err != nil {
		return nil, err
	}
	return key.SerializeUncompressed(), nil
}

// Keccak256 returns the legacy Keccak-256 digest used by Ethereum
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

type secp256k1KeyPair struct {
	key *secp256k1.PrivateKey
}

func (k *secp256k1KeyPair) PublicKey() []byte {
	return k.key.PubKey().SerializeUncompressed()
}

func (k *secp256k1KeyPair) Sign(message []byte) ([]byte, error) {
	// SignCompact возвращает v || r || s, переставляем в r || s || v
	compact := ecdsa.SignCompact(k.key, Keccak256(message), false)
	if len(compact) != Secp256k1SignatureSize {
		return nil, fmt.Errorf("unexpected compact signature length %d", len(compact))
	}

	signature := make([]byte, 0, Secp256k1SignatureSize)
	signature = append(signature, compact[1:]...)
	signature = append(signature, compact[0])
	return signature, nil
}

func recoverKey(message, signature []byte) (*secp256k1.PublicKey, error) {
	if len(signature) != Secp256k1SignatureSize {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", Secp256k1SignatureSize, len(signature))
	}

	v := signature[Secp256k1SignatureSize-1]
	// Принимаем и v в {0, 1}
	if v < recoveryOffset {
		v += recoveryOffset
	}

	compact := make([]byte, 0, Secp256k1SignatureSize)
	compact = append(compact, v)
	compact = append(compact, signature[:Secp256k1SignatureSize-1]...)

	key, _, err := ecdsa.RecoverCompact(compact, Keccak256(message))
	if err != nil {
		return nil, fmt.Errorf("failed to recover public key: %w", err)
	}
	return key, nil
}

func parsePublicKey(publicKey []byte) (*secp256k1.PublicKey, error) {
	if len(publicKey) == 64 {
		publicKey = append([]byte{0x04}, publicKey...)
	}
	return secp256k1.ParsePubKey(publicKey)
}
