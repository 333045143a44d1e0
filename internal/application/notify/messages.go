package notify

import (
	"context"
	"errors"

	"github.com/jhoicas/portaria-api/internal/domain"
)

// ErrorMessage traduce un error de la API al texto que se muestra en el toast.
func ErrorMessage(err error) string {
	var httpErr *domain.HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.Message != "":
		return httpErr.Message
	case errors.As(err, &httpErr):
		return "O servidor respondeu com erro"
	case errors.Is(err, domain.ErrAuthExpired):
		return "Sessão expirada, faça login novamente"
	case errors.Is(err, domain.ErrInvalidResponse):
		return "Resposta inválida do servidor, verifique a URL da API"
	case errors.Is(err, context.DeadlineExceeded):
		return "Tempo de espera esgotado"
	default:
		return "Falha de comunicação com o servidor"
	}
}
