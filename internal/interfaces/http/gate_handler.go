package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/validation"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
)

// PlateFormField campo multipart de la foto de placa.
const PlateFormField = "plate"

const maxPlateBytes = 5 << 20

// GateHandler agenda del día y acciones de portaria.
type GateHandler struct {
	store   *memdb.Store
	perPage int
	log     zerolog.Logger
}

// NewGateHandler construye el handler de portaria.
func NewGateHandler(store *memdb.Store, perPage int, log zerolog.Logger) *GateHandler {
	return &GateHandler{store: store, perPage: perPage, log: log}
}

// Schedule godoc
// @Summary      Agenda de visitantes
// @Tags         gate
// @Produce      json
// @Param        page    query  int     false  "página"
// @Param        search  query  string  false  "nombre, CPF o residencia"
// @Success      200     {object}  entity.Page[entity.ScheduleEntry]
// @Router       /api/visitors/schedule [get]
func (h *GateHandler) Schedule(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	q.DefaultPage(h.perPage)
	return c.JSON(h.store.Schedule(q.Page, q.PerPage, q.Search))
}

// Action registra entrada o salida de un visitante.
// @Router       /api/gate/actions [post]
func (h *GateHandler) Action(c *fiber.Ctx) error {
	var in dto.GateActionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return writeError(c, err)
	}
	res, err := h.store.GateAction(in.ScheduleID, in.VisitorID, in.Action)
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("schedule_id", string(in.ScheduleID)).Str("visitor_id", string(in.VisitorID)).
		Str("action", in.Action).Str("by", GetUserID(c)).Msg("acción de portaria")
	return c.JSON(res)
}

// Plate recibe la foto de la placa (multipart, campo "plate").
// El archivo no se persiste; se devuelve la placa deducida del nombre y una URL simulada.
// @Router       /api/gate/plate [post]
func (h *GateHandler) Plate(c *fiber.Ctx) error {
	fh, err := c.FormFile(PlateFormField)
	if err != nil {
		return writeError(c, &domain.ValidationError{Fields: map[string]string{PlateFormField: "Arquivo obrigatório"}})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return writeError(c, &domain.ValidationError{Fields: map[string]string{PlateFormField: "Formato não suportado (use JPG ou PNG)"}})
	}
	if fh.Size > maxPlateBytes {
		return writeError(c, &domain.ValidationError{Fields: map[string]string{PlateFormField: "Arquivo muito grande"}})
	}
	plate := strings.ToUpper(strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename)))
	return c.Status(fiber.StatusCreated).JSON(entity.PlateUpload{
		Plate:    plate,
		PhotoURL: "/storage/plates/" + uuid.NewString() + ext,
	})
}
