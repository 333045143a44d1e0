package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/pkg/clock"
)

var _ ports.Notifier = (*Toaster)(nil)

// Toaster cola de notificaciones efímeras con auto-dismiss.
type Toaster struct {
	clock           clock.Clock
	defaultDuration time.Duration
	log             zerolog.Logger

	mu       sync.Mutex
	toasts   []entity.Toast
	timers   map[string]clock.Timer
	onChange []func([]entity.Toast)
	closed   bool
}

// NewToaster construye la cola. duration <= 0 usa 4 s.
func NewToaster(c clock.Clock, duration time.Duration, log zerolog.Logger) *Toaster {
	if duration <= 0 {
		duration = 4 * time.Second
	}
	if c == nil {
		c = clock.Real{}
	}
	return &Toaster{
		clock:           c,
		defaultDuration: duration,
		log:             log.With().Str("component", "toaster").Logger(),
		timers:          make(map[string]clock.Timer),
	}
}

// OnChange registra un observador que recibe la lista vigente en cada cambio.
func (t *Toaster) OnChange(fn func([]entity.Toast)) {
	t.mu.Lock()
	t.onChange = append(t.onChange, fn)
	t.mu.Unlock()
}

// Show encola un toast y programa su descarte. duration <= 0 usa la duración por defecto.
func (t *Toaster) Show(kind, title, message string, duration time.Duration) string {
	if duration <= 0 {
		duration = t.defaultDuration
	}
	toast := entity.Toast{
		ID:        uuid.NewString(),
		Type:      kind,
		Title:     title,
		Message:   message,
		Duration:  duration,
		CreatedAt: t.clock.Now(),
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ""
	}
	t.toasts = append(t.toasts, toast)
	id := toast.ID
	t.timers[id] = t.clock.AfterFunc(duration, func() { t.Dismiss(id) })
	snapshot, observers := t.snapshotLocked()
	t.mu.Unlock()

	ev := t.log.Debug()
	if kind == entity.ToastError {
		ev = t.log.Warn()
	}
	ev.Str("type", kind).Str("title", title).Str("message", message).Msg("toast")

	notifyAll(observers, snapshot)
	return id
}

// Success atajo para un toast de éxito.
func (t *Toaster) Success(title, message string) string {
	return t.Show(entity.ToastSuccess, title, message, 0)
}

// Error atajo para un toast de error.
func (t *Toaster) Error(title, message string) string {
	return t.Show(entity.ToastError, title, message, 0)
}

// Info atajo para un toast informativo.
func (t *Toaster) Info(title, message string) string {
	return t.Show(entity.ToastInfo, title, message, 0)
}

// Warning atajo para un toast de advertencia.
func (t *Toaster) Warning(title, message string) string {
	return t.Show(entity.ToastWarning, title, message, 0)
}

// Dismiss descarta un toast (manual o por timer). Ids desconocidos se ignoran.
func (t *Toaster) Dismiss(id string) {
	t.mu.Lock()
	idx := -1
	for i, toast := range t.toasts {
		if toast.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		return
	}
	t.toasts = append(t.toasts[:idx], t.toasts[idx+1:]...)
	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
	snapshot, observers := t.snapshotLocked()
	t.mu.Unlock()

	notifyAll(observers, snapshot)
}

// List devuelve una copia de los toasts vigentes, del más antiguo al más reciente.
func (t *Toaster) List() []entity.Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]entity.Toast(nil), t.toasts...)
}

// Close detiene todos los timers; después de Close, Show no encola nada.
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.toasts = nil
}

func (t *Toaster) snapshotLocked() ([]entity.Toast, []func([]entity.Toast)) {
	return append([]entity.Toast(nil), t.toasts...), append([]func([]entity.Toast){}, t.onChange...)
}

func notifyAll(observers []func([]entity.Toast), snapshot []entity.Toast) {
	for _, fn := range observers {
		fn(snapshot)
	}
}
