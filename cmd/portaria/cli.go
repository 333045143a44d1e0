package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/portaria-api/internal/application/auth"
	"github.com/jhoicas/portaria-api/internal/application/notify"
	"github.com/jhoicas/portaria-api/internal/application/pagination"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/domain/repository"
	"github.com/jhoicas/portaria-api/internal/infrastructure/apiclient"
	"github.com/jhoicas/portaria-api/internal/infrastructure/storage"
	"github.com/jhoicas/portaria-api/pkg/clock"
	"github.com/jhoicas/portaria-api/pkg/config"
	"github.com/jhoicas/portaria-api/pkg/logger"
)

// cli dependencias compartidas por los subcomandos. Se arma en PersistentPreRunE.
type cli struct {
	out    io.Writer
	errOut io.Writer
	format string

	cfg     *config.Config
	log     *logger.Logger
	store   repository.KeyValueStore
	client  *apiclient.Client
	toaster *notify.Toaster
	auth    *auth.AuthUseCase

	mu    sync.Mutex
	shown map[string]bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut, shown: make(map[string]bool)}

	root := &cobra.Command{
		Use:           "portaria",
		Short:         "Cliente de portaria: visitantes, agenda y cadastros del condominio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.close()
		},
	}
	root.PersistentFlags().StringVarP(&c.format, "output", "o", "table", "formato de salida: table | json")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.meCmd(),
		c.resetPasswordCmd(),
		c.configCmd(),
		c.residencesCmd(),
		c.residentsCmd(),
		c.employeesCmd(),
		c.guestsCmd(),
		c.appointmentsCmd(),
		c.providersCmd(),
		c.deliveriesCmd(),
		c.companiesCmd(),
		c.scheduleCmd(),
		c.gateCmd(),
		c.infosCmd(),
		c.reportCmd(),
	)

	root.SetOut(out)
	root.SetErr(errOut)
	return root
}

func (c *cli) setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: c.errOut})

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("abrir almacenamiento local: %w", err)
	}
	c.store = store
	c.client = apiclient.New(store, apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
		Logger:  c.log.Component("apiclient"),
	})
	c.toaster = notify.NewToaster(clock.Real{}, cfg.Toast.Duration(), c.log.Component("toast"))
	c.toaster.OnChange(c.printToasts)
	c.auth = auth.NewAuthUseCase(c.client, store, c.toaster, auth.Options{
		DevBypass: cfg.DevBypass,
		Logger:    c.log.Component("auth"),
	})
	return nil
}

func (c *cli) close() error {
	if c.toaster != nil {
		c.toaster.Close()
	}
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// printToasts muestra cada toast una sola vez en stderr.
func (c *cli) printToasts(toasts []entity.Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range toasts {
		if c.shown[t.ID] {
			continue
		}
		c.shown[t.ID] = true
		if t.Message == "" {
			fmt.Fprintf(c.errOut, "[%s] %s\n", t.Type, t.Title)
			continue
		}
		fmt.Fprintf(c.errOut, "[%s] %s: %s\n", t.Type, t.Title, t.Message)
	}
}

// requireSession restaura la sesión persistida; sin sesión el comando no sigue.
func (c *cli) requireSession(ctx context.Context) error {
	ok, err := c.auth.Restore(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: ejecute `portaria login`", domain.ErrNotAuthenticated)
	}
	return nil
}

// listOpts opciones de los listados paginados a partir de la configuración.
func (c *cli) listOpts(component string) pagination.Options {
	return pagination.Options{
		Debounce:  c.cfg.List.Debounce(),
		Lookahead: c.cfg.List.Lookahead,
		Logger:    c.log.Component(component),
	}
}

func (c *cli) logger() zerolog.Logger { return c.log.Zerolog() }

// authed envuelve un RunE que necesita sesión.
func (c *cli) authed(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := c.requireSession(cmd.Context()); err != nil {
			return err
		}
		err := run(cmd, args)
		if apiclient.IsAuthExpired(err) {
			return fmt.Errorf("%w: ejecute `portaria login`", err)
		}
		return err
	}
}
