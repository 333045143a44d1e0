package dto

// PageRequest query de listados paginados: ?page=&per_page=&search=.
type PageRequest struct {
	Page    int    `query:"page" validate:"min=0"`
	PerPage int    `query:"per_page" validate:"min=0,max=100"`
	Search  string `query:"search" validate:"max=120"`
}

// DefaultPage aplica valores por defecto si Page/PerPage son cero.
func (p *PageRequest) DefaultPage(perPage int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = perPage
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
