package usecase

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/notify"
	"github.com/jhoicas/portaria-api/internal/application/pagination"
	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/application/validation"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// Endpoints de la portaria.
const (
	ScheduleEndpoint    = "/visitors/schedule"
	GateActionsEndpoint = "/gate/actions"
	GatePlateEndpoint   = "/gate/plate"
	PlateField          = "plate"
)

var plateExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// GateUseCase operación de la portaria: agenda del día, entrada/salida y foto de placa.
type GateUseCase struct {
	api      ports.APIRequester
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewGateUseCase construye el caso de uso.
func NewGateUseCase(api ports.APIRequester, notifier ports.Notifier, log zerolog.Logger) *GateUseCase {
	return &GateUseCase{api: api, notifier: notifier, log: log.With().Str("component", "gate").Logger()}
}

// FetchSchedule trae una página de la agenda de visitas.
func (uc *GateUseCase) FetchSchedule(ctx context.Context, page int, search string) (*entity.Page[entity.ScheduleEntry], error) {
	var out entity.Page[entity.ScheduleEntry]
	if err := uc.api.Request(ctx, http.MethodGet, listEndpoint(ScheduleEndpoint, page, search), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScheduleList listado de la agenda deduplicado por "<id>-<visitorId>".
func (uc *GateUseCase) ScheduleList(opts pagination.Options) *pagination.List[entity.ScheduleEntry] {
	return pagination.New[entity.ScheduleEntry](uc.FetchSchedule, entity.ScheduleEntry.Key, opts)
}

// ConfirmEntry registra la entrada del visitante.
func (uc *GateUseCase) ConfirmEntry(ctx context.Context, e entity.ScheduleEntry) (*entity.GateActionResult, error) {
	return uc.action(ctx, e, entity.GateActionEntry)
}

// ConfirmExit registra la salida del visitante.
func (uc *GateUseCase) ConfirmExit(ctx context.Context, e entity.ScheduleEntry) (*entity.GateActionResult, error) {
	return uc.action(ctx, e, entity.GateActionExit)
}

func (uc *GateUseCase) action(ctx context.Context, e entity.ScheduleEntry, action string) (*entity.GateActionResult, error) {
	req := dto.GateActionRequest{ScheduleID: e.ID, VisitorID: e.VisitorID, Action: action}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	var out entity.GateActionResult
	if err := uc.api.Request(ctx, http.MethodPost, GateActionsEndpoint, req, &out); err != nil {
		uc.log.Error().Err(err).Str("action", action).Str("key", e.Key()).Msg("acción de portaria")
		uc.notifier.Error("Erro ao registrar "+actionLabel(action), notify.ErrorMessage(err))
		return nil, err
	}
	if action == entity.GateActionExit {
		uc.notifier.Success("Saída registrada", e.VisitorName)
	} else {
		uc.notifier.Success("Entrada registrada", e.VisitorName)
	}
	return &out, nil
}

func actionLabel(action string) string {
	if action == entity.GateActionExit {
		return "saída"
	}
	return "entrada"
}

// UploadPlate sube la foto de la placa del vehículo (multipart, campo "plate").
func (uc *GateUseCase) UploadPlate(ctx context.Context, filename string, r io.Reader) (*entity.PlateUpload, error) {
	if !plateExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, &domain.ValidationError{Fields: map[string]string{PlateField: "Formato de imagem inválido (use JPG ou PNG)"}}
	}
	var out entity.PlateUpload
	if err := uc.api.Upload(ctx, GatePlateEndpoint, PlateField, filepath.Base(filename), r, &out); err != nil {
		uc.log.Error().Err(err).Str("file", filename).Msg("subir foto de placa")
		uc.notifier.Error("Erro ao enviar foto da placa", notify.ErrorMessage(err))
		return nil, err
	}
	uc.notifier.Success("Foto da placa enviada", out.Plate)
	return &out, nil
}
