package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/usecase"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// view columnas de la tabla de un recurso.
type view[T any] struct {
	headers []string
	row     func(T) []string
}

// resourceCmd arma list/get/add/update/delete para un recurso CRUD.
func resourceCmd[T, P any](c *cli, use string, aliases []string, short string, build func(*cli) *usecase.Resource[T, P], v view[T]) *cobra.Command {
	cmd := &cobra.Command{Use: use, Aliases: aliases, Short: short}

	var (
		page   int
		search string
		all    bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar " + use,
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, _ []string) error {
			res := build(c)
			if all {
				items, meta, err := scrollAll(cmd, res.List(c.listOpts(use)), search)
				if err != nil {
					return err
				}
				if err := c.render(items, v.headers, rowsOf(items, v.row)); err != nil {
					return err
				}
				c.renderFooter(len(items), meta)
				return nil
			}
			p, err := res.Fetch(cmd.Context(), page, search)
			if err != nil {
				return err
			}
			if err := c.render(p, v.headers, rowsOf(p.Data, v.row)); err != nil {
				return err
			}
			c.renderFooter(len(p.Data), p.Meta())
			return nil
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "página")
	list.Flags().StringVarP(&search, "search", "s", "", "texto de búsqueda")
	list.Flags().BoolVar(&all, "all", false, "recorrer todas las páginas")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Ver un registro",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			item, err := build(c).Get(cmd.Context(), entity.ID(args[0]))
			if err != nil {
				return err
			}
			return c.render(item, v.headers, [][]string{v.row(*item)})
		}),
	}

	var data, file string
	add := &cobra.Command{
		Use:   "add",
		Short: "Cadastrar (JSON en --data o --file)",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, _ []string) error {
			var payload P
			if err := readPayload(data, file, cmd.InOrStdin(), &payload); err != nil {
				return err
			}
			item, err := build(c).Add(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return c.render(item, v.headers, [][]string{v.row(*item)})
		}),
	}
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Actualizar (JSON en --data o --file)",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			var payload P
			if err := readPayload(data, file, cmd.InOrStdin(), &payload); err != nil {
				return err
			}
			item, err := build(c).Update(cmd.Context(), entity.ID(args[0]), payload)
			if err != nil {
				return err
			}
			return c.render(item, v.headers, [][]string{v.row(*item)})
		}),
	}
	for _, sub := range []*cobra.Command{add, update} {
		sub.Flags().StringVar(&data, "data", "", "payload JSON")
		sub.Flags().StringVarP(&file, "file", "f", "", "archivo JSON (- para stdin)")
	}

	del := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Eliminar un registro",
		Args:    cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			return build(c).Delete(cmd.Context(), entity.ID(args[0]))
		}),
	}

	cmd.AddCommand(list, get, add, update, del)
	return cmd
}

func (c *cli) residencesCmd() *cobra.Command {
	return resourceCmd(c, "residences", []string{"residence"}, "Residencias",
		func(c *cli) *usecase.Residences { return usecase.NewResidences(c.client, c.toaster, c.logger()) },
		view[entity.Residence]{
			headers: []string{"ID", "BLOCO", "NÚMERO", "TIPO", "PROPRIETÁRIO"},
			row: func(r entity.Residence) []string {
				return []string{string(r.ID), r.Block, r.Number, r.Type, r.Owner}
			},
		})
}

func (c *cli) residentsCmd() *cobra.Command {
	return resourceCmd(c, "residents", []string{"resident"}, "Moradores",
		func(c *cli) *usecase.Residents { return usecase.NewResidents(c.client, c.toaster, c.logger()) },
		view[entity.Resident]{
			headers: []string{"ID", "NOME", "CPF", "TELEFONE", "RESIDÊNCIA"},
			row: func(r entity.Resident) []string {
				return []string{string(r.ID), r.Name, r.CPF, r.Phone, string(r.ResidenceID)}
			},
		})
}

func (c *cli) employeesCmd() *cobra.Command {
	return resourceCmd(c, "employees", []string{"employee"}, "Funcionários",
		func(c *cli) *usecase.Employees { return usecase.NewEmployees(c.client, c.toaster, c.logger()) },
		view[entity.Employee]{
			headers: []string{"ID", "NOME", "CPF", "CARGO", "INÍCIO"},
			row: func(e entity.Employee) []string {
				return []string{string(e.ID), e.Name, e.CPF, e.Position, e.StartDate}
			},
		})
}

func (c *cli) guestsCmd() *cobra.Command {
	return resourceCmd(c, "guests", []string{"visitors", "guest"}, "Visitantes",
		func(c *cli) *usecase.Guests { return usecase.NewGuests(c.client, c.toaster, c.logger()) },
		view[entity.Guest]{
			headers: []string{"ID", "NOME", "CPF", "TELEFONE", "PLACA"},
			row: func(g entity.Guest) []string {
				return []string{string(g.ID), g.Name, g.CPF, g.Phone, g.Plate}
			},
		})
}

func (c *cli) appointmentsCmd() *cobra.Command {
	return resourceCmd(c, "appointments", []string{"appointment"}, "Agendamentos",
		func(c *cli) *usecase.Appointments { return usecase.NewAppointments(c.client, c.toaster, c.logger()) },
		view[entity.Appointment]{
			headers: []string{"ID", "RESIDÊNCIA", "VISITANTES", "INÍCIO", "FIM"},
			row: func(a entity.Appointment) []string {
				return []string{string(a.ID), string(a.ResidenceID), strconv.Itoa(len(a.GuestIDs)), a.StartDate, a.EndDate}
			},
		})
}

func (c *cli) providersCmd() *cobra.Command {
	v := view[entity.ServiceProvider]{
		headers: []string{"ID", "NOME", "EMPRESA", "SERVIÇO", "PERÍODO"},
		row: func(p entity.ServiceProvider) []string {
			return []string{string(p.ID), p.Name, p.Company, p.Service, p.StartDate + " - " + p.EndDate}
		},
	}
	cmd := resourceCmd(c, "providers", []string{"provider"}, "Prestadores de serviço",
		func(c *cli) *usecase.Resource[entity.ServiceProvider, dto.ProviderRequest] {
			return usecase.NewProviders(c.client, c.toaster, c.logger()).Resource
		}, v)
	cmd.AddCommand(&cobra.Command{
		Use:   "directory",
		Short: "Directorio completo de prestadores (sin paginar)",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, _ []string) error {
			items, err := usecase.NewProviders(c.client, c.toaster, c.logger()).Directory(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(items, v.headers, rowsOf(items, v.row))
		}),
	})
	return cmd
}

func (c *cli) deliveriesCmd() *cobra.Command {
	return resourceCmd(c, "deliveries", []string{"delivery"}, "Encomendas",
		func(c *cli) *usecase.Deliveries { return usecase.NewDeliveries(c.client, c.toaster, c.logger()) },
		view[entity.Delivery]{
			headers: []string{"ID", "DESTINATÁRIO", "TRANSPORTADORA", "RASTREIO", "STATUS"},
			row: func(d entity.Delivery) []string {
				return []string{string(d.ID), d.Recipient, d.Carrier, d.TrackingCode, d.Status}
			},
		})
}

func (c *cli) companiesCmd() *cobra.Command {
	return resourceCmd(c, "companies", []string{"company"}, "Condomínios",
		func(c *cli) *usecase.Companies { return usecase.NewCompanies(c.client, c.toaster, c.logger()) },
		view[entity.Company]{
			headers: []string{"ID", "NOME", "CNPJ", "CIDADE", "UF"},
			row: func(co entity.Company) []string {
				return []string{string(co.ID), co.Name, co.CNPJ, co.City, co.State}
			},
		})
}
