package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/pkg/clock"
)

// DefaultReportMaxPages tope de páginas que se recorren para un informe.
const DefaultReportMaxPages = 50

// ReportUseCase genera el informe PDF de la agenda de la portaria.
type ReportUseCase struct {
	gate *GateUseCase
	gen  ports.ReportGenerator
	clk  clock.Clock
	log  zerolog.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(gate *GateUseCase, gen ports.ReportGenerator, clk clock.Clock, log zerolog.Logger) *ReportUseCase {
	if clk == nil {
		clk = clock.Real{}
	}
	return &ReportUseCase{gate: gate, gen: gen, clk: clk, log: log.With().Str("component", "report").Logger()}
}

// CollectSchedule recorre la agenda página a página (sin duplicados) hasta la última o hasta maxPages.
func (uc *ReportUseCase) CollectSchedule(ctx context.Context, search string, maxPages int) ([]entity.ScheduleEntry, error) {
	if maxPages <= 0 {
		maxPages = DefaultReportMaxPages
	}
	seen := make(map[string]struct{})
	var out []entity.ScheduleEntry
	for page := 1; page <= maxPages; page++ {
		p, err := uc.gate.FetchSchedule(ctx, page, search)
		if err != nil {
			return nil, fmt.Errorf("report: página %d: %w", page, err)
		}
		for _, e := range p.Data {
			if _, dup := seen[e.Key()]; dup {
				continue
			}
			seen[e.Key()] = struct{}{}
			out = append(out, e)
		}
		if !p.HasNextPage() {
			return out, nil
		}
	}
	uc.log.Warn().Int("max_pages", maxPages).Msg("informe truncado")
	return out, nil
}

// GateLog genera el PDF y devuelve sus bytes junto con la cantidad de entradas incluidas.
func (uc *ReportUseCase) GateLog(ctx context.Context, operator, search string, maxPages int) ([]byte, int, error) {
	entries, err := uc.CollectSchedule(ctx, search, maxPages)
	if err != nil {
		return nil, 0, err
	}
	doc, err := uc.gen.GateLogPDF(ctx, ports.GateLogReport{
		Title:       "Relatório de portaria",
		Operator:    operator,
		Search:      search,
		GeneratedAt: uc.clk.Now(),
		Entries:     entries,
	})
	if err != nil {
		return nil, 0, err
	}
	uc.log.Info().Int("entries", len(entries)).Int("bytes", len(doc)).Msg("informe generado")
	return doc, len(entries), nil
}
