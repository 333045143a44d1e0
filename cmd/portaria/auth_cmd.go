package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión y guardar el token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("PORTARIA_PASSWORD")
			}
			user, err := c.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return c.renderUser(user)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "e-mail")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (o PORTARIA_PASSWORD)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión y borrar el token local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.auth.Logout(cmd.Context())
		},
	}
}

func (c *cli) meCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Perfil del usuario autenticado",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, _ []string) error {
			return c.renderUser(c.auth.User())
		}),
	}

	var in dto.UpdateProfileRequest
	update := &cobra.Command{
		Use:   "update",
		Short: "Actualizar nombre, e-mail, teléfono o contraseña",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, _ []string) error {
			cur := c.auth.User()
			if in.Name == "" {
				in.Name = cur.Name
			}
			if in.Email == "" {
				in.Email = cur.Email
			}
			if in.Phone == "" {
				in.Phone = cur.Phone
			}
			user, err := c.auth.UpdateProfile(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.renderUser(user)
		}),
	}
	update.Flags().StringVar(&in.Name, "name", "", "nombre")
	update.Flags().StringVar(&in.Email, "email", "", "e-mail")
	update.Flags().StringVar(&in.Phone, "phone", "", "teléfono")
	update.Flags().StringVar(&in.Password, "password", "", "nueva contraseña")
	update.Flags().StringVar(&in.PasswordConfirmation, "password-confirmation", "", "confirmación de la contraseña")
	cmd.AddCommand(update)
	return cmd
}

func (c *cli) resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password EMAIL",
		Short: "Enviar el e-mail de recuperación de contraseña",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.auth.SendPasswordReset(cmd.Context(), args[0])
		},
	}
}

func (c *cli) renderUser(u *entity.User) error {
	if u == nil {
		return fmt.Errorf("sin usuario")
	}
	return c.render(u, []string{"ID", "NOME", "E-MAIL", "PERFIL"},
		[][]string{{string(u.ID), u.Name, u.Email, u.Role}})
}
