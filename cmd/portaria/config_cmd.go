package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/portaria-api/internal/domain"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Ajustes locales del cliente"}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-url URL",
		Short: "Cambiar la URL base de la API (se conserva tras logout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.client.SetBaseURL(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.toaster.Success("URL salva", c.client.BaseURL(cmd.Context()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Mostrar la configuración efectiva y la sesión guardada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			settings := map[string]string{
				"api_base_url":   c.client.BaseURL(ctx),
				"storage_driver": c.cfg.Storage.Driver,
				"env":            c.cfg.App.Env,
				"debounce_ms":    strconv.Itoa(c.cfg.List.DebounceMs),
				"dev_bypass":     strconv.FormatBool(c.cfg.DevBypass.Enabled),
				"session":        "-",
			}
			s, err := c.auth.Session(ctx)
			switch {
			case err == nil && s.User != nil:
				settings["session"] = s.User.Email + " (" + s.TokenType + ")"
			case err == nil:
				settings["session"] = s.TokenType
			case !errors.Is(err, domain.ErrNotAuthenticated):
				return err
			}
			order := []string{"api_base_url", "storage_driver", "env", "debounce_ms", "dev_bypass", "session"}
			rows := make([][]string, 0, len(order))
			for _, k := range order {
				rows = append(rows, []string{k, settings[k]})
			}
			return c.render(settings, []string{"AJUSTE", "VALOR"}, rows)
		},
	})
	return cmd
}
