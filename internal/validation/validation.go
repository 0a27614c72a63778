package validation

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxUserIDLen максимальная длина user_id в байтах
const MaxUserIDLen = 256

// ValidateUserID проверяет user_id на границе API
// Идентификатор непрозрачен для контракта, отсекаем только пустые,
// слишком длинные и содержащие управляющие символы значения
func ValidateUserID(id string) error {
	if id == "" {
		return fmt.Errorf("user_id cannot be empty")
	}

	if len(id) > MaxUserIDLen {
		return fmt.Errorf("user_id must not exceed %d bytes", MaxUserIDLen)
	}

	if !utf8.ValidString(id) {
		return fmt.Errorf("user_id must be valid UTF-8")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return fmt.Errorf("user_id must not contain control characters")
		}
	}

	return nil
}

// DecodeHex декодирует hex строку поля field, префикс 0x допускается
func DecodeHex(field, value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")

	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be hex-encoded: %w", field, err)
	}
	return data, nil
}

// DecodeRequiredHex как DecodeHex, но пустое значение является ошибкой
func DecodeRequiredHex(field, value string) ([]byte, error) {
	data, err := DecodeHex(field, value)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is required", field)
	}
	return data, nil
}
