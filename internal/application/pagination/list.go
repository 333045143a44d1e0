// Package pagination implementa el listado paginado con búsqueda y scroll infinito:
// carga páginas de un endpoint, acumula ítems sin duplicados y nunca tiene más de
// un request en curso.
//
// Estados:
//
//	Idle ──SetSearch──▶ Debouncing ──timer──▶ Loading(reset)
//	Idle ──Open/Reset─▶ Loading(reset) ──respuesta──▶ Idle | Debouncing
//	Idle ──Visible/LoadMore (hasNextPage)──▶ Loading(append)
//
// Un reset disparado por el debounce mientras hay un request en curso queda
// pendiente y se ejecuta al terminar ese request.
package pagination

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/pkg/clock"
)

// Errores del listado.
var (
	ErrBusy        = errors.New("pagination: ya hay una carga en curso")
	ErrNoMorePages = errors.New("pagination: no hay más páginas")
	ErrClosed      = errors.New("pagination: listado cerrado")
)

// DefaultDebounce ventana de debounce de la búsqueda.
const DefaultDebounce = 500 * time.Millisecond

// State estado del listado.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateLoading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Fetcher trae una página del endpoint.
type Fetcher[T any] func(ctx context.Context, page int, search string) (*entity.Page[T], error)

// KeyFunc devuelve la llave natural de deduplicación de un ítem.
type KeyFunc[T any] func(T) string

// Snapshot estado observable del listado.
type Snapshot[T any] struct {
	Items          []T
	CurrentPage    int
	HasNextPage    bool
	TotalCount     int
	Search         string // último término buscado
	State          State
	InitialLoading bool
	Err            error // error de la última carga, nil si tuvo éxito
}

// Options parámetros del listado.
type Options struct {
	Debounce  time.Duration // 0 = DefaultDebounce
	Lookahead int           // ítems antes del final en que Visible dispara la siguiente página
	Clock     clock.Clock
	Logger    zerolog.Logger
}

// List listado paginado. Seguro para uso concurrente.
type List[T any] struct {
	fetch     Fetcher[T]
	key       KeyFunc[T]
	clock     clock.Clock
	debounce  time.Duration
	lookahead int
	log       zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	state        State
	closed       bool
	loaded       bool
	items        []T
	seen         map[string]struct{}
	currentPage  int
	hasNext      bool
	total        int
	term         string // texto actual del buscador
	lastSearched string // término de la última carga reset
	timer        clock.Timer
	timerGen     int
	pendingReset bool
	lastErr      error
	requests     int
	observers    []func(Snapshot[T])
}

// New construye el listado. Llamar Open para la carga inicial y Close al descartarlo.
func New[T any](fetch Fetcher[T], key KeyFunc[T], opts Options) *List[T] {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Lookahead < 0 {
		opts.Lookahead = 0
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &List[T]{
		fetch:     fetch,
		key:       key,
		clock:     opts.Clock,
		debounce:  opts.Debounce,
		lookahead: opts.Lookahead,
		log:       opts.Logger.With().Str("component", "pagination").Logger(),
		ctx:       ctx,
		cancel:    cancel,
		seen:      make(map[string]struct{}),
	}
}

// OnChange registra un observador; recibe un Snapshot tras cada transición relevante.
func (l *List[T]) OnChange(fn func(Snapshot[T])) {
	l.mu.Lock()
	l.observers = append(l.observers, fn)
	l.mu.Unlock()
}

// Open carga la página 1 con el término actual (montaje de la pantalla).
func (l *List[T]) Open(ctx context.Context) error {
	return l.Reset(ctx)
}

// Refresh recarga desde la página 1 (refresco manual).
func (l *List[T]) Refresh(ctx context.Context) error {
	return l.Reset(ctx)
}

// SetSearch registra el texto del buscador y reinicia el timer de debounce.
// Al vencer, si el término difiere del último buscado, se hace una carga reset.
func (l *List[T]) SetSearch(term string) {
	term = normalizeTerm(term)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.term = term
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timerGen++
	gen := l.timerGen
	l.timer = l.clock.AfterFunc(l.debounce, func() { l.fireDebounce(gen) })
	if l.state != StateLoading {
		l.state = StateDebouncing
	}
}

func (l *List[T]) fireDebounce(gen int) {
	l.mu.Lock()
	if l.closed || gen != l.timerGen {
		l.mu.Unlock()
		return
	}
	l.timer = nil
	if l.term == l.lastSearched {
		if l.state == StateDebouncing {
			l.state = StateIdle
		}
		l.mu.Unlock()
		return
	}
	if l.state == StateLoading {
		l.pendingReset = true
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	if err := l.Reset(l.ctx); err != nil && !errors.Is(err, ErrClosed) {
		l.log.Debug().Err(err).Msg("búsqueda con debounce")
	}
}

// Reset reemplaza los ítems por la página 1 del término actual.
// Si falla, el listado queda vacío y sin página siguiente.
func (l *List[T]) Reset(ctx context.Context) error {
	l.mu.Lock()
	if err := l.beginLoadLocked(); err != nil {
		l.mu.Unlock()
		return err
	}
	search := l.term
	l.lastSearched = search
	l.pendingReset = false
	snap, obs := l.snapshotLocked()
	l.mu.Unlock()
	notifyAll(obs, snap)

	page, err := l.fetchPage(ctx, 1, search)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.items = nil
	l.seen = make(map[string]struct{})
	if err != nil {
		l.currentPage, l.hasNext, l.total = 0, false, 0
		l.lastErr = err
		l.log.Error().Err(err).Str("search", search).Msg("cargar página 1")
	} else {
		l.appendLocked(page.Data)
		l.currentPage, l.hasNext, l.total = page.CurrentPage, page.HasNextPage(), page.Total
		l.lastErr = nil
	}
	l.loaded = true
	follow := l.endLoadLocked()
	snap, obs = l.snapshotLocked()
	l.mu.Unlock()
	notifyAll(obs, snap)

	if follow {
		if ferr := l.Reset(l.ctx); ferr != nil && !errors.Is(ferr, ErrClosed) {
			l.log.Debug().Err(ferr).Msg("búsqueda pendiente")
		}
	}
	return err
}

// LoadMore agrega la página siguiente descartando ítems cuya llave ya existe.
// Si falla, los ítems ya cargados se conservan.
func (l *List[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed && l.state != StateLoading && (!l.loaded || !l.hasNext) {
		l.mu.Unlock()
		return ErrNoMorePages
	}
	if err := l.beginLoadLocked(); err != nil {
		l.mu.Unlock()
		return err
	}
	next := l.currentPage + 1
	search := l.lastSearched
	snap, obs := l.snapshotLocked()
	l.mu.Unlock()
	notifyAll(obs, snap)

	page, err := l.fetchPage(ctx, next, search)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		l.lastErr = err
		l.log.Error().Err(err).Int("page", next).Msg("cargar página siguiente")
	} else {
		l.appendLocked(page.Data)
		l.currentPage = page.CurrentPage
		if l.currentPage == 0 {
			l.currentPage = next
		}
		l.hasNext, l.total = page.HasNextPage(), page.Total
		l.lastErr = nil
	}
	follow := l.endLoadLocked()
	snap, obs = l.snapshotLocked()
	l.mu.Unlock()
	notifyAll(obs, snap)

	if follow {
		if ferr := l.Reset(l.ctx); ferr != nil && !errors.Is(ferr, ErrClosed) {
			l.log.Debug().Err(ferr).Msg("búsqueda pendiente")
		}
	}
	return err
}

// Visible informa que el ítem index se está mostrando (sentinela de scroll).
// Si entra en la ventana de anticipación y hay página siguiente, carga la siguiente página.
// Devuelve true si se emitió un request.
func (l *List[T]) Visible(ctx context.Context, index int) (bool, error) {
	l.mu.Lock()
	trigger := !l.closed && l.loaded && l.hasNext && l.state != StateLoading &&
		index >= len(l.items)-1-l.lookahead
	l.mu.Unlock()
	if !trigger {
		return false, nil
	}
	err := l.LoadMore(ctx)
	if errors.Is(err, ErrBusy) || errors.Is(err, ErrNoMorePages) {
		return false, nil
	}
	return true, err
}

// Snapshot devuelve una copia del estado actual.
func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	snap, _ := l.snapshotLocked()
	return snap
}

// Requests total de requests emitidos por este listado.
func (l *List[T]) Requests() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requests
}

// Close cancela el request en curso y el debounce; resultados posteriores se descartan.
func (l *List[T]) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.pendingReset = false
	l.mu.Unlock()
	l.cancel()
}

// ── transiciones ──────────────────────────────────────────────────────────────

func (l *List[T]) beginLoadLocked() error {
	if l.closed {
		return ErrClosed
	}
	if l.state == StateLoading {
		return ErrBusy
	}
	l.state = StateLoading
	l.requests++
	return nil
}

// endLoadLocked sale de Loading; devuelve true si hay un reset pendiente que ejecutar.
func (l *List[T]) endLoadLocked() bool {
	if l.timer != nil {
		l.state = StateDebouncing
	} else {
		l.state = StateIdle
	}
	follow := l.pendingReset && l.term != l.lastSearched
	l.pendingReset = false
	return follow
}

func (l *List[T]) fetchPage(ctx context.Context, page int, search string) (*entity.Page[T], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(l.ctx, cancel)
	defer stop()

	p, err := l.fetch(ctx, page, search)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &entity.Page[T]{CurrentPage: page, LastPage: page}, nil
	}
	return p, nil
}

func (l *List[T]) appendLocked(data []T) {
	discarded := 0
	for _, item := range data {
		k := l.key(item)
		if _, dup := l.seen[k]; dup {
			discarded++
			continue
		}
		l.seen[k] = struct{}{}
		l.items = append(l.items, item)
	}
	if discarded > 0 {
		l.log.Debug().Int("discarded", discarded).Msg("ítems duplicados descartados")
	}
}

func (l *List[T]) snapshotLocked() (Snapshot[T], []func(Snapshot[T])) {
	snap := Snapshot[T]{
		Items:          append([]T(nil), l.items...),
		CurrentPage:    l.currentPage,
		HasNextPage:    l.hasNext,
		TotalCount:     l.total,
		Search:         l.lastSearched,
		State:          l.state,
		InitialLoading: l.state == StateLoading && !l.loaded,
		Err:            l.lastErr,
	}
	return snap, append([]func(Snapshot[T]){}, l.observers...)
}

func notifyAll[T any](observers []func(Snapshot[T]), snap Snapshot[T]) {
	for _, fn := range observers {
		fn(snap)
	}
}

// normalizeTerm recorta espacios y normaliza a NFC para que "José" escrito con
// acento combinado no cuente como un término distinto.
func normalizeTerm(term string) string {
	return norm.NFC.String(strings.TrimSpace(term))
}
