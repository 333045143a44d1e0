// Package pdf genera el relatório de portaria en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + operador    │  Fecha de emisión + filtro  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total | pendientes | dentro | finalizados         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Visitante | CPF | Residência | Período | Status     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el resumen + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author va en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GateLogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GateLogPDF(ctx context.Context, report ports.GateLogReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	title := nonEmpty(report.Title, "Relatório de portaria")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.author, "portaria"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Entries))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum agendamento encontrado.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	m.AddRows(tableDetailRows(report.Entries)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, report ports.GateLogReport) core.Row {
	filter := "Todos os agendamentos"
	if report.Search != "" {
		filter = "Filtro: " + report.Search
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Operador: "+nonEmpty(report.Operator, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido em "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(filter, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

type summary struct {
	total, pending, inside, done int
}

func summarize(entries []entity.ScheduleEntry) summary {
	s := summary{total: len(entries)}
	for _, e := range entries {
		switch e.Status {
		case entity.ScheduleStatusInside:
			s.inside++
		case entity.ScheduleStatusDone:
			s.done++
		default:
			s.pending++
		}
	}
	return s
}

func summaryRow(entries []entity.ScheduleEntry) core.Row {
	s := summarize(entries)
	cell := func(label string, n int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray}),
			text.New(fmt.Sprintf("%d", n), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 5, Color: colorPrimary}),
		)
	}
	return row.New(14).Add(
		cell("TOTAL", s.total),
		cell("AGUARDANDO", s.pending),
		cell("NO CONDOMÍNIO", s.inside),
		cell("FINALIZADOS", s.done),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Visitante", 3),
		h("CPF", 2),
		h("Residência", 2),
		h("Período", 3),
		h("Status", 2),
	)
}

func tableDetailRows(entries []entity.ScheduleEntry) []core.Row {
	result := make([]core.Row, 0, len(entries))
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1}))
	}
	for _, e := range entries {
		result = append(result, row.New(7).Add(
			cell(e.VisitorName, 3),
			cell(nonEmpty(e.VisitorCPF, "-"), 2),
			cell(nonEmpty(e.Residence, "-"), 2),
			cell(period(e.StartDate, e.EndDate), 3),
			cell(statusLabel(e.Status), 2),
		))
	}
	return result
}

func footerRow(report ports.GateLogReport) core.Row {
	s := summarize(report.Entries)
	qr := fmt.Sprintf("portaria;emitido=%s;total=%d;aguardando=%d;dentro=%d;finalizados=%d",
		report.GeneratedAt.Format("2006-01-02T15:04"), s.total, s.pending, s.inside, s.done)
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Documento de controle interno da portaria.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New("Os horários refletem os registros de entrada e saída confirmados no sistema.", props.Text{
				Size: 7, Top: 14, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// period formatea "2026-03-10" → "10/03/2026"; un solo día se muestra una vez.
func period(start, end string) string {
	s, e := brDate(start), brDate(end)
	if e == "" || s == e {
		return nonEmpty(s, "-")
	}
	return s + " a " + e
}

func brDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 || len(parts[2]) < 2 {
		return iso
	}
	return parts[2][:2] + "/" + parts[1] + "/" + parts[0]
}

func statusLabel(status string) string {
	switch status {
	case entity.ScheduleStatusInside:
		return "No condomínio"
	case entity.ScheduleStatusDone:
		return "Finalizado"
	default:
		return "Aguardando"
	}
}
