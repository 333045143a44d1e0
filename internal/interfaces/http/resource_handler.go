package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/validation"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
)

// ResourceHandler CRUD genérico sobre una tabla de memdb.
// T es la entidad devuelta; P es el DTO que llega en POST/PUT.
type ResourceHandler[T, P any] struct {
	table   *memdb.Table[T]
	build   func(in P, cur T, now string) T
	check   func(in P) error
	now     func() string
	perPage int
}

// NewResourceHandler construye el handler. build copia el DTO sobre la entidad actual
// (valor cero en altas). check es opcional y valida referencias a otras tablas.
func NewResourceHandler[T, P any](table *memdb.Table[T], perPage int, now func() string, build func(P, T, string) T, check func(P) error) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{table: table, build: build, check: check, now: now, perPage: perPage}
}

// Register monta GET / , POST / , GET /:id, PUT /:id y DELETE /:id sobre el grupo.
// Los middlewares extra se aplican solo a las rutas de escritura.
func (h *ResourceHandler[T, P]) Register(r fiber.Router, write ...fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", append(write, h.Create)...)
	r.Put("/:id", append(write, h.Update)...)
	r.Delete("/:id", append(write, h.Delete)...)
}

// List devuelve una página Laravel filtrada por ?search=.
func (h *ResourceHandler[T, P]) List(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	q.DefaultPage(h.perPage)
	if err := validation.Struct(q); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.table.Page(q.Page, q.PerPage, q.Search))
}

// Get devuelve un registro por id.
func (h *ResourceHandler[T, P]) Get(c *fiber.Ctx) error {
	row, err := h.table.Get(entity.ID(c.Params("id")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(row)
}

// Create valida el DTO e inserta. Responde 201 con la entidad creada.
func (h *ResourceHandler[T, P]) Create(c *fiber.Ctx) error {
	in, err := h.parse(c)
	if err != nil {
		return writeError(c, err)
	}
	var zero T
	row := h.table.Insert(h.build(in, zero, h.now()))
	return c.Status(fiber.StatusCreated).JSON(row)
}

// Update valida el DTO y reemplaza los campos editables; el id se conserva.
func (h *ResourceHandler[T, P]) Update(c *fiber.Ctx) error {
	in, err := h.parse(c)
	if err != nil {
		return writeError(c, err)
	}
	now := h.now()
	row, err := h.table.Update(entity.ID(c.Params("id")), func(cur *T) {
		*cur = h.build(in, *cur, now)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(row)
}

// Delete elimina el registro. Responde 204.
func (h *ResourceHandler[T, P]) Delete(c *fiber.Ctx) error {
	if err := h.table.Delete(entity.ID(c.Params("id"))); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ResourceHandler[T, P]) parse(c *fiber.Ctx) (P, error) {
	var in P
	if err := c.BodyParser(&in); err != nil {
		return in, &fiber.Error{Code: fiber.StatusBadRequest, Message: "cuerpo inválido"}
	}
	if err := validation.Struct(in); err != nil {
		return in, err
	}
	if h.check != nil {
		if err := h.check(in); err != nil {
			return in, err
		}
	}
	return in, nil
}
