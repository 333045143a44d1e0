package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
)

// InfosHandler catálogos de estados y ciudades.
type InfosHandler struct {
	store *memdb.Store
}

// NewInfosHandler construye el handler de catálogos.
func NewInfosHandler(store *memdb.Store) *InfosHandler {
	return &InfosHandler{store: store}
}

// States GET /infos/state.
func (h *InfosHandler) States(c *fiber.Ctx) error {
	return c.JSON(h.store.States())
}

// Cities GET /infos/city?state=UF.
func (h *InfosHandler) Cities(c *fiber.Ctx) error {
	uf := strings.ToUpper(strings.TrimSpace(c.Query("state")))
	if len(uf) != 2 {
		return writeError(c, &domain.ValidationError{Fields: map[string]string{"state": "UF inválida"}})
	}
	return c.JSON(h.store.Cities(uf))
}
