package entity

import "time"

// Tipos de toast.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
	ToastWarning = "warning"
)

// Toast notificación efímera; se destruye por timer o al descartarla.
type Toast struct {
	ID        string
	Type      string
	Title     string
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}
