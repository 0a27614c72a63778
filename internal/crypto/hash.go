package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLen - количество hex символов в отпечатке
const fingerprintLen = 16

// Fingerprint возвращает короткий SHA256 отпечаток публичного ключа для логов
// Сам ключ в логи не пишется
func Fingerprint(publicKey []byte) string {
	if len(publicKey) == 0 {
		return ""
	}
	hash := sha256.Sum256(publicKey)
	return hex.EncodeToString(hash[:])[:fingerprintLen]
}
