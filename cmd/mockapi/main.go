// Command mockapi levanta una API de condominio en memoria para desarrollo y pruebas del cliente.
// Se niega a arrancar con APP_ENV=production.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
	httpRouter "github.com/jhoicas/portaria-api/internal/interfaces/http"
	"github.com/jhoicas/portaria-api/pkg/config"
	"github.com/jhoicas/portaria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if cfg.App.IsProduction() {
		log.Fatal().Msg("el servidor mock no se ejecuta en producción")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando servidor mock")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "portaria-mock-secret"
		log.Warn().Msg("JWT_SECRET vacío, usando secreto de desarrollo")
	}

	store := memdb.New(nil)
	if _, err := store.SeedAdmin(cfg.Mock.AdminEmail, cfg.Mock.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	}
	if cfg.Mock.Seed {
		store.SeedSample()
		log.Info().Msg("datos de ejemplo cargados")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		Store:   store,
		JWT:     cfg.JWT,
		PerPage: cfg.HTTP.PerPage,
		Log:     log.Component("mockapi"),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Mock.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Mock.SwaggerFile,
			Path:     "docs",
			Title:    "Portaria Mock API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servidor mock detenido")
}
