// Package api holds the JSON request and response bodies of the HTTP boundary.
// Byte fields are hex-encoded, challenge codes are decimal strings.
package api

// AddUserRequest представляет запрос на регистрацию пользователя
type AddUserRequest struct {
	UserID     string `json:"user_id"`              // идентификатор пользователя
	PrivateKey string `json:"private_key"`          // секретный ключ (hex, 32 байта)
	PublicKey  string `json:"public_key,omitempty"` // публичный ключ (hex), необязателен
}

// AddUserResponse представляет ответ на успешную регистрацию
type AddUserResponse struct {
	UserID string `json:"user_id"`
}

// AddLoginRequest представляет запрос на выпуск challenge
type AddLoginRequest struct {
	UserID string `json:"user_id"`
	Code   string `json:"code"` // 256-битное число, десятичное или 0x hex
}

// AddLoginResponse представляет ответ на выпуск challenge
type AddLoginResponse struct {
	UserID string `json:"user_id"`
	Code   string `json:"code"` // десятичная запись
}

// SignRequest представляет запрос на погашение challenge
type SignRequest struct {
	Code    string `json:"code"`
	Message string `json:"message"` // подписываются байты строки как есть
}

// SignResponse представляет подпись и публичный ключ владельца challenge
type SignResponse struct {
	Signature string `json:"signature"`  // hex
	PublicKey string `json:"public_key"` // hex
	Scheme    string `json:"scheme"`     // secp256k1 или ed25519
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Scheme  string `json:"scheme"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // текст HTTP статуса
	Code    string `json:"code"`              // машинный код ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// Машинные коды ошибок
const (
	CodeBadRequest           = "bad_request"
	CodeUnauthorized         = "unauthorized"
	CodeUserNotFound         = "user_not_found"
	CodeCodeNotFound         = "code_not_found"
	CodeCodeAlreadyUsed      = "code_already_used"
	CodeMalformedKeyMaterial = "malformed_key_material"
	CodeRateLimited          = "rate_limited"
	CodeInternal             = "internal"
)
