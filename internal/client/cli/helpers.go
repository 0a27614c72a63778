package cli

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/iudanet/enable/internal/validation"
)

// KeySources - источники секретного ключа
type KeySources struct {
	FromArgs string
	FromFile string
}

// readPrivateKey получает hex ключ с приоритетом:
// 1. Параметр командной строки
// 2. Файл
// 3. Переменная окружения ENABLE_PRIVATE_KEY
// 4. Интерактивный ввод без эха
func (c *Cli) readPrivateKey(sources KeySources) ([]byte, error) {
	value, err := c.privateKeyHex(sources)
	if err != nil {
		return nil, err
	}
	return validation.DecodeRequiredHex("private key", value)
}

func (c *Cli) privateKeyHex(sources KeySources) (string, error) {
	if sources.FromArgs != "" {
		return sources.FromArgs, nil
	}

	if sources.FromFile != "" {
		content, err := os.ReadFile(sources.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read key file: %w", err)
		}
		key := strings.TrimSpace(string(content))
		if key == "" {
			return "", fmt.Errorf("key file is empty")
		}
		return key, nil
	}

	if envKey := c.getenv(PrivateKeyEnv); envKey != "" {
		return envKey, nil
	}

	key, err := c.io.ReadSecret("Private key (hex): ")
	if err != nil {
		return "", fmt.Errorf("failed to read private key: %w", err)
	}
	return key, nil
}

// readMessage возвращает сообщение из аргумента или файла.
// Сообщение передается в JSON строкой, поэтому должно быть в UTF-8:
// иначе сервер подпишет байты с U+FFFD вместо исходных
func readMessage(text, file string) ([]byte, error) {
	var message []byte
	switch {
	case text != "" && file != "":
		return nil, fmt.Errorf("use either -message or -message-file")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read message file: %w", err)
		}
		message = data
	default:
		message = []byte(text)
	}

	if !utf8.Valid(message) {
		return nil, fmt.Errorf("message must be valid UTF-8 text")
	}
	return message, nil
}

// render выводит data по шаблону
func (c *Cli) render(name, text string, data any) error {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tmpl.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}
