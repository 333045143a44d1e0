package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/portaria-api/internal/application/usecase"
	"github.com/jhoicas/portaria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/portaria-api/pkg/clock"
)

func (c *cli) reportCmd() *cobra.Command {
	var (
		out      string
		search   string
		maxPages int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generar el PDF de la agenda de portaria",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, _ []string) error {
			operator := ""
			if u := c.auth.User(); u != nil {
				operator = u.Name
			}
			report := usecase.NewReportUseCase(c.gate(), pdf.NewMarotoPDFGenerator(c.cfg.App.Name), clock.Real{}, c.logger())
			doc, count, err := report.GateLog(cmd.Context(), operator, search, maxPages)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, doc, 0o644); err != nil {
				return fmt.Errorf("guardar informe: %w", err)
			}
			c.toaster.Success("Relatório gerado", fmt.Sprintf("%d visitantes em %s", count, out))
			return nil
		}),
	}
	cmd.Flags().StringVar(&out, "out", "portaria.pdf", "archivo PDF de salida")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filtrar la agenda")
	cmd.Flags().IntVar(&maxPages, "max-pages", usecase.DefaultReportMaxPages, "páginas máximas a recorrer")
	return cmd
}
