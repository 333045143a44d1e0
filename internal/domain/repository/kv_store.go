package repository

import "context"

// Llaves persistidas por el cliente.
const (
	KeyToken     = "token"
	KeyTokenType = "token_type"
	KeyExpiresIn = "expires_in"
	KeyUser      = "user"
	KeyBaseURL   = "api_base_url"
)

// SessionKeys llaves que se borran en logout o al recibir 401. KeyBaseURL es un ajuste y sobrevive.
var SessionKeys = []string{KeyToken, KeyTokenType, KeyExpiresIn, KeyUser}

// KeyValueStore define el puerto de persistencia local del cliente (equivalente a localStorage).
type KeyValueStore interface {
	// Get devuelve el valor y si existía.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete borra las llaves dadas; llaves inexistentes no son error.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
