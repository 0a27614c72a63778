package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt1, SaltSize)

	salt2, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt1, salt2, "соли должны отличаться")
}

func TestDecodeSalt(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(make([]byte, SaltSize))

	salt, err := DecodeSalt(valid)
	require.NoError(t, err)
	assert.Len(t, salt, SaltSize)

	_, err = DecodeSalt("!!!not base64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode salt")

	_, err = DecodeSalt(base64.StdEncoding.EncodeToString([]byte("short")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salt must be at least")
}

func TestDeriveStateKey(t *testing.T) {
	salt := make([]byte, SaltSize)
	for i := range salt {
		salt[i] = byte(i)
	}

	tests := []struct {
		name       string
		passphrase string
		errMsg     string
		salt       []byte
		wantErr    bool
	}{
		{name: "successful derivation", passphrase: "correct horse battery staple", salt: salt},
		{name: "empty passphrase", passphrase: "", salt: salt, wantErr: true, errMsg: "passphrase cannot be empty"},
		{name: "short salt", passphrase: "pass", salt: []byte("abc"), wantErr: true, errMsg: "salt must be at least"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveStateKey(tt.passphrase, tt.salt)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, KeySize)
		})
	}
}

func TestDeriveStateKey_Deterministic(t *testing.T) {
	salt := make([]byte, SaltSize)

	key1, err := DeriveStateKey("passphrase", salt)
	require.NoError(t, err)
	key2, err := DeriveStateKey("passphrase", salt)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	// Другая passphrase дает другой ключ
	key3, err := DeriveStateKey("passphrase2", salt)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key3)
}
