package ports

import (
	"context"
	"time"

	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// GateLogReport datos del informe de movimiento de la portaria.
type GateLogReport struct {
	Title       string
	Operator    string // usuario que genera el informe
	Search      string // filtro aplicado, vacío = todos
	GeneratedAt time.Time
	Entries     []entity.ScheduleEntry
}

// ReportGenerator puerto de salida que renderiza informes a PDF.
type ReportGenerator interface {
	GateLogPDF(ctx context.Context, report GateLogReport) ([]byte, error)
}
