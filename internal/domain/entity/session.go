package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Session sesión autenticada contra la API. Se crea en el login y se destruye
// en el logout o cuando cualquier endpoint responde 401.
type Session struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	User      *User  `json:"user,omitempty"`
}

// AuthorizationHeader devuelve "<TokenType capitalizado> <token>" (ej. "Bearer abc").
func (s Session) AuthorizationHeader() string {
	return AuthorizationHeader(s.TokenType, s.Token)
}

// AuthorizationHeader arma el header a partir del tipo y el token. Tipo vacío = Bearer.
func AuthorizationHeader(tokenType, token string) string {
	tokenType = strings.TrimSpace(tokenType)
	if tokenType == "" {
		tokenType = "bearer"
	}
	first, size := utf8.DecodeRuneInString(tokenType)
	return string(unicode.ToUpper(first)) + strings.ToLower(tokenType[size:]) + " " + token
}
