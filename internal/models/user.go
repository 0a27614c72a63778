package models

// User представляет identity, привязанную к паре ключей
type User struct {
	ID         string `json:"user_id"`              // идентификатор, задается вызывающей стороной
	PrivateKey []byte `json:"private_key"`          // секретный ключ (ожидается 32 bytes)
	PublicKey  []byte `json:"public_key,omitempty"` // публичный ключ, может отсутствовать
}

// Login представляет одноразовый login challenge
type Login struct {
	UserID string `json:"user_id"` // ссылка на User.ID по значению
	Code   Code   `json:"code"`    // 256-bit код, сериализуется десятичной строкой
	Valid  bool   `json:"valid"`   // true до первого успешного погашения
}
