package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/notify"
	"github.com/jhoicas/portaria-api/internal/application/pagination"
	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/application/validation"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// ResourceConfig describe un recurso CRUD de la API.
type ResourceConfig[T any] struct {
	Endpoint string         // ej. "/visitors"
	Label    string         // nombre para los toasts, ej. "Visitante"
	Key      func(T) string // llave natural (deduplicación del listado y cache)
}

// Resource caso de uso CRUD genérico: mantiene en memoria la última página cargada
// y avisa al usuario del resultado de cada mutación.
type Resource[T any, P any] struct {
	api      ports.APIRequester
	notifier ports.Notifier
	cfg      ResourceConfig[T]
	log      zerolog.Logger

	mu     sync.RWMutex
	items  []T
	page   entity.Pagination
	loaded bool
}

// NewResource construye el caso de uso del recurso.
func NewResource[T any, P any](api ports.APIRequester, notifier ports.Notifier, cfg ResourceConfig[T], log zerolog.Logger) *Resource[T, P] {
	return &Resource[T, P]{
		api:      api,
		notifier: notifier,
		cfg:      cfg,
		log:      log.With().Str("component", "resource").Str("endpoint", cfg.Endpoint).Logger(),
	}
}

// Endpoint ruta base del recurso.
func (r *Resource[T, P]) Endpoint() string { return r.cfg.Endpoint }

// Fetch trae una página sin tocar el cache. Sirve como pagination.Fetcher.
func (r *Resource[T, P]) Fetch(ctx context.Context, page int, search string) (*entity.Page[T], error) {
	var out entity.Page[T]
	if err := r.api.Request(ctx, http.MethodGet, listEndpoint(r.cfg.Endpoint, page, search), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Load reemplaza el cache con la página pedida. Si falla, conserva el estado anterior
// y solo registra el error.
func (r *Resource[T, P]) Load(ctx context.Context, page int, search string) {
	p, err := r.Fetch(ctx, page, search)
	if err != nil {
		r.log.Error().Err(err).Int("page", page).Str("search", search).Msg("cargar listado")
		return
	}
	r.mu.Lock()
	r.items = append([]T(nil), p.Data...)
	r.page = p.Meta()
	r.loaded = true
	r.mu.Unlock()
}

// List construye un listado paginado con búsqueda sobre este recurso.
func (r *Resource[T, P]) List(opts pagination.Options) *pagination.List[T] {
	return pagination.New[T](r.Fetch, r.cfg.Key, opts)
}

// Items copia de la última página cargada.
func (r *Resource[T, P]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]T(nil), r.items...)
}

// Pagination metadatos de la última página cargada.
func (r *Resource[T, P]) Pagination() entity.Pagination {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.page
}

// Get obtiene un registro por id.
func (r *Resource[T, P]) Get(ctx context.Context, id entity.ID) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	var out T
	if err := r.api.Request(ctx, http.MethodGet, itemEndpoint(r.cfg.Endpoint, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Add valida y crea el registro. Los errores de validación no llegan a la red ni generan toast.
func (r *Resource[T, P]) Add(ctx context.Context, payload P) (*T, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	var out T
	if err := r.api.Request(ctx, http.MethodPost, r.cfg.Endpoint, payload, &out); err != nil {
		r.fail("cadastrar", err)
		return nil, err
	}
	r.notifier.Success(r.cfg.Label+" cadastrado com sucesso", "")
	r.mu.Lock()
	if r.loaded {
		r.items = append([]T{out}, r.items...)
		r.page.Total++
	}
	r.mu.Unlock()
	return &out, nil
}

// Update valida y actualiza el registro id.
func (r *Resource[T, P]) Update(ctx context.Context, id entity.ID, payload P) (*T, error) {
	if id == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"id": "Campo obrigatório"}}
	}
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	var out T
	if err := r.api.Request(ctx, http.MethodPut, itemEndpoint(r.cfg.Endpoint, id), payload, &out); err != nil {
		r.fail("atualizar", err)
		return nil, err
	}
	r.notifier.Success(r.cfg.Label+" atualizado com sucesso", "")
	r.mu.Lock()
	for i := range r.items {
		if r.cfg.Key(r.items[i]) == string(id) {
			r.items[i] = out
			break
		}
	}
	r.mu.Unlock()
	return &out, nil
}

// Delete elimina el registro id.
func (r *Resource[T, P]) Delete(ctx context.Context, id entity.ID) error {
	if id == "" {
		return &domain.ValidationError{Fields: map[string]string{"id": "Campo obrigatório"}}
	}
	if err := r.api.Request(ctx, http.MethodDelete, itemEndpoint(r.cfg.Endpoint, id), nil, nil); err != nil {
		r.fail("remover", err)
		return err
	}
	r.notifier.Success(r.cfg.Label+" removido com sucesso", "")
	r.mu.Lock()
	kept := make([]T, 0, len(r.items))
	for _, it := range r.items {
		if r.cfg.Key(it) != string(id) {
			kept = append(kept, it)
		}
	}
	if len(kept) < len(r.items) && r.page.Total > 0 {
		r.page.Total--
	}
	r.items = kept
	r.mu.Unlock()
	return nil
}

func (r *Resource[T, P]) fail(action string, err error) {
	r.log.Error().Err(err).Str("action", action).Msg("mutación rechazada")
	if errors.Is(err, context.Canceled) {
		return
	}
	r.notifier.Error("Erro ao "+action+" "+strings.ToLower(r.cfg.Label), notify.ErrorMessage(err))
}

func listEndpoint(endpoint string, page int, search string) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if search != "" {
		q.Set("search", search)
	}
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

func itemEndpoint(endpoint string, id entity.ID) string {
	return endpoint + "/" + url.PathEscape(string(id))
}
