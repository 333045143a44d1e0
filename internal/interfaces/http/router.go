package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
	"github.com/jhoicas/portaria-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store   *memdb.Store
	JWT     config.JWTConfig
	PerPage int
	Log     zerolog.Logger
}

// NewApp construye la aplicación Fiber del servidor mock con recover, log de peticiones y /health.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "portaria-mock",
		ErrorHandler: errorHandler,
		BodyLimit:    8 << 20,
	})
	app.Use(recover.New())
	app.Use(requestLogger(deps.Log))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	Router(app, deps)
	return app
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.PerPage <= 0 {
		deps.PerPage = 15
	}
	api := app.Group("/api")
	now := deps.Store.Timestamp
	st := deps.Store

	// Auth (público)
	authHandler := NewAuthHandler(st, deps.JWT, deps.Log.With().Str("component", "auth").Logger())
	api.Post("/login", authHandler.Login)
	api.Post("/send-reset", authHandler.SendReset)

	// Catálogos (público)
	infos := NewInfosHandler(st)
	api.Get("/infos/state", infos.States)
	api.Get("/infos/city", infos.Cities)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))
	protected.Post("/logout", authHandler.Logout)
	protected.Get("/user/me", authHandler.Me)
	protected.Put("/user/me", authHandler.UpdateMe)

	// Portaria: la agenda va antes de /visitors/:id
	gate := NewGateHandler(st, deps.PerPage, deps.Log.With().Str("component", "gate").Logger())
	protected.Get("/visitors/schedule", gate.Schedule)
	protected.Post("/gate/actions", gate.Action)
	protected.Post("/gate/plate", gate.Plate)

	// Prestadores: el directorio va antes de /provider/:id
	protected.Get("/provider/list-providers", func(c *fiber.Ctx) error {
		return c.JSON(st.Providers.All())
	})

	NewResourceHandler(st.Companies, deps.PerPage, now, buildCompany, nil).
		Register(protected.Group("/company"), AdminOnly())
	NewResourceHandler(st.Residences, deps.PerPage, now, buildResidence, nil).
		Register(protected.Group("/residence"), RequireRole(entity.RoleAdmin, entity.RoleSindico))
	NewResourceHandler(st.Residents, deps.PerPage, now, buildResident, checkResident(st)).
		Register(protected.Group("/resident"), RequireRole(entity.RoleAdmin, entity.RoleSindico))
	NewResourceHandler(st.Employees, deps.PerPage, now, buildEmployee, nil).
		Register(protected.Group("/employees"), RequireRole(entity.RoleAdmin, entity.RoleSindico))
	NewResourceHandler(st.Guests, deps.PerPage, now, buildGuest, nil).
		Register(protected.Group("/visitors"))
	NewResourceHandler(st.Appointments, deps.PerPage, now, buildAppointment, checkAppointment(st)).
		Register(protected.Group("/appointments"))
	NewResourceHandler(st.Providers, deps.PerPage, now, buildProvider, checkProvider(st)).
		Register(protected.Group("/provider"))
	NewResourceHandler(st.Deliveries, deps.PerPage, now, buildDelivery, checkDelivery(st)).
		Register(protected.Group("/deliveries"))
}

// requestLogger registra método, ruta, status y duración de cada petición.
func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).Str("path", c.Path()).Int("status", status).
			Dur("took", time.Since(start)).Msg("request")
		return err
	}
}
