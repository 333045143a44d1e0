package entity

// Page página devuelta por la API: { data, current_page, last_page, per_page, total, from, to }.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// HasNextPage indica si existe una página posterior a la actual.
func (p Page[T]) HasNextPage() bool {
	return p.CurrentPage < p.LastPage
}

// Pagination metadatos de paginación sin los ítems.
type Pagination struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

// Meta extrae los metadatos de la página.
func (p Page[T]) Meta() Pagination {
	return Pagination{CurrentPage: p.CurrentPage, LastPage: p.LastPage, PerPage: p.PerPage, Total: p.Total}
}
