// Package memdb es el almacenamiento en memoria del servidor mock de la API.
package memdb

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// Table colección de registros con id asignado por el servidor.
type Table[T any] struct {
	name  string
	getID func(T) entity.ID
	setID func(*T, entity.ID)
	text  func(T) string // texto indexado para ?search=

	mu   sync.RWMutex
	rows []T
}

// NewTable crea una tabla vacía.
func NewTable[T any](name string, getID func(T) entity.ID, setID func(*T, entity.ID), text func(T) string) *Table[T] {
	return &Table[T]{name: name, getID: getID, setID: setID, text: text}
}

// Insert agrega el registro; si no trae id se le asigna un UUID.
func (t *Table[T]) Insert(row T) T {
	if t.getID(row) == "" {
		t.setID(&row, entity.ID(uuid.NewString()))
	}
	t.mu.Lock()
	t.rows = append(t.rows, row)
	t.mu.Unlock()
	return row
}

// Get busca por id.
func (t *Table[T]) Get(id entity.ID) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if t.getID(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %s: %w", t.name, id, domain.ErrNotFound)
}

// Update aplica fn sobre el registro id. El id no puede cambiar.
func (t *Table[T]) Update(id entity.ID, fn func(*T)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.getID(t.rows[i]) == id {
			fn(&t.rows[i])
			t.setID(&t.rows[i], id)
			return t.rows[i], nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %s: %w", t.name, id, domain.ErrNotFound)
}

// Delete elimina el registro id.
func (t *Table[T]) Delete(id entity.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.getID(t.rows[i]) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s %s: %w", t.name, id, domain.ErrNotFound)
}

// All copia de todos los registros en orden de inserción.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]T(nil), t.rows...)
}

// Find registros que cumplen pred.
func (t *Table[T]) Find(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Page filtra por search y devuelve la página pedida (1-based).
func (t *Table[T]) Page(page, perPage int, search string) entity.Page[T] {
	var filtered []T
	for _, r := range t.All() {
		if matches(t.text(r), search) {
			filtered = append(filtered, r)
		}
	}
	return Paginate(filtered, page, perPage)
}

// Paginate corta items al formato { data, current_page, last_page, per_page, total, from, to }.
func Paginate[T any](items []T, page, perPage int) entity.Page[T] {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	lastPage := (total + perPage - 1) / perPage
	if lastPage == 0 {
		lastPage = 1
	}
	p := entity.Page[T]{Data: []T{}, CurrentPage: page, LastPage: lastPage, PerPage: perPage, Total: total}
	start := (page - 1) * perPage
	if start >= total {
		return p
	}
	end := start + perPage
	if end > total {
		end = total
	}
	p.Data = append(p.Data, items[start:end]...)
	p.From, p.To = start+1, end
	return p
}
