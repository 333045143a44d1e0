package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/portaria-api/internal/application/usecase"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

var scheduleView = view[entity.ScheduleEntry]{
	headers: []string{"AGENDAMENTO", "VISITANTE_ID", "VISITANTE", "CPF", "RESIDÊNCIA", "PERÍODO", "STATUS", "RESPONSÁVEIS"},
	row: func(e entity.ScheduleEntry) []string {
		names := make([]string, 0, len(e.Responsibles))
		for _, r := range e.Responsibles {
			names = append(names, r.Name)
		}
		return []string{
			string(e.ID), string(e.VisitorID), e.VisitorName, e.VisitorCPF, e.Residence,
			e.StartDate + " - " + e.EndDate, e.Status, strings.Join(names, ", "),
		}
	},
}

func (c *cli) gate() *usecase.GateUseCase {
	return usecase.NewGateUseCase(c.client, c.toaster, c.logger())
}

func (c *cli) scheduleCmd() *cobra.Command {
	var (
		search string
		page   int
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Agenda de visitantes (un renglón por visitante agendado)",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, _ []string) error {
			gate := c.gate()
			if all {
				items, meta, err := scrollAll(cmd, gate.ScheduleList(c.listOpts("schedule")), search)
				if err != nil {
					return err
				}
				if err := c.render(items, scheduleView.headers, rowsOf(items, scheduleView.row)); err != nil {
					return err
				}
				c.renderFooter(len(items), meta)
				return nil
			}
			p, err := gate.FetchSchedule(cmd.Context(), page, search)
			if err != nil {
				return err
			}
			if err := c.render(p, scheduleView.headers, rowsOf(p.Data, scheduleView.row)); err != nil {
				return err
			}
			c.renderFooter(len(p.Data), p.Meta())
			return nil
		}),
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "nombre, CPF o residencia")
	cmd.Flags().IntVar(&page, "page", 1, "página")
	cmd.Flags().BoolVar(&all, "all", false, "recorrer todas las páginas")
	return cmd
}

func (c *cli) gateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "gate", Short: "Acciones de portaria"}

	action := func(use, short string, entry bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " SCHEDULE_ID VISITOR_ID",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: c.authed(func(cmd *cobra.Command, args []string) error {
				e := entity.ScheduleEntry{ID: entity.ID(args[0]), VisitorID: entity.ID(args[1])}
				gate := c.gate()
				confirm := gate.ConfirmExit
				if entry {
					confirm = gate.ConfirmEntry
				}
				res, err := confirm(cmd.Context(), e)
				if err != nil {
					return err
				}
				return c.render(res, []string{"AGENDAMENTO", "VISITANTE", "AÇÃO", "STATUS", "HORA"},
					[][]string{{string(res.ScheduleID), string(res.VisitorID), res.Action, res.Status, res.At}})
			}),
		}
	}
	cmd.AddCommand(
		action("entry", "Confirmar la entrada del visitante", true),
		action("exit", "Confirmar la salida del visitante", false),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "plate FILE",
		Short: "Enviar la foto de la placa del vehículo (JPG o PNG)",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir foto: %w", err)
			}
			defer f.Close()
			up, err := c.gate().UploadPlate(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}
			return c.render(up, []string{"PLACA", "FOTO"}, [][]string{{up.Plate, up.PhotoURL}})
		}),
	})
	return cmd
}

func (c *cli) infosCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "infos", Short: "Catálogos de estados y ciudades"}
	cmd.AddCommand(&cobra.Command{
		Use:   "states",
		Short: "Estados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			states, err := usecase.NewInfosUseCase(c.client).States(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(states, []string{"UF", "NOME"}, rowsOf(states, func(s entity.State) []string {
				return []string{s.UF, s.Name}
			}))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "cities UF",
		Short: "Ciudades de una UF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cities, err := usecase.NewInfosUseCase(c.client).Cities(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.render(cities, []string{"ID", "NOME", "UF"}, rowsOf(cities, func(ci entity.City) []string {
				return []string{string(ci.ID), ci.Name, ci.UF}
			}))
		},
	})
	return cmd
}
