package ports

import (
	"context"
	"io"
)

// APIRequester define el puerto de salida hacia la API REST del condominio.
// Lo implementa *apiclient.Client; los casos de uso solo conocen este contrato.
type APIRequester interface {
	// Request llama un endpoint autenticado. body puede ser nil; out puede ser nil para ignorar la respuesta.
	// Errores: domain.ErrAuthExpired (401, sesión borrada), domain.ErrInvalidResponse, *domain.HTTPError.
	Request(ctx context.Context, method, endpoint string, body, out any) error
	// RequestNoAuth igual que Request pero sin header Authorization (login, reset de contraseña).
	RequestNoAuth(ctx context.Context, method, endpoint string, body, out any) error
	// Upload envía multipart/form-data con un único archivo en field.
	Upload(ctx context.Context, endpoint, field, filename string, r io.Reader, out any) error
}

// Notifier puerto de salida para notificaciones al usuario (toasts).
type Notifier interface {
	Success(title, message string) string
	Error(title, message string) string
	Info(title, message string) string
}

// SessionExpirySource lo implementa el cliente HTTP: avisa cuando un 401 borró la sesión.
type SessionExpirySource interface {
	OnAuthExpired(fn func())
}
