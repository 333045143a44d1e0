package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/validation"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
	"github.com/jhoicas/portaria-api/pkg/config"
	"github.com/jhoicas/portaria-api/pkg/jwt"
)

// AuthHandler maneja login, logout, perfil y recuperación de contraseña.
type AuthHandler struct {
	store *memdb.Store
	jwt   config.JWTConfig
	log   zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(store *memdb.Store, jwtCfg config.JWTConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{store: store, jwt: jwtCfg, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  entity.Session
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return writeError(c, err)
	}
	user, err := h.store.Authenticate(in.Email, in.Password)
	if err != nil {
		h.log.Info().Str("email", in.Email).Msg("login rechazado")
		return writeError(c, err)
	}
	token, err := jwt.Generate(h.jwt.Secret, string(user.ID), string(user.CondominiumID), user.Role, h.jwt.Issuer, h.jwt.Expiration)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entity.Session{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: h.jwt.Expiration * 60,
		User:      &user,
	})
}

// Logout el token es stateless; solo confirma la operación.
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.log.Debug().Str("user_id", GetUserID(c)).Msg("logout")
	return c.JSON(dto.MessageResponse{Message: "Logout realizado"})
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200   {object}  entity.User
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/user/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// errOtherCondominium token emitido para otro condominio (el usuario fue movido):
// 401 para que el cliente descarte la sesión.
var errOtherCondominium = fiber.NewError(fiber.StatusUnauthorized, "token emitido para otro condominio")

// currentUser carga el usuario del token.
func (h *AuthHandler) currentUser(c *fiber.Ctx) (entity.User, error) {
	user, err := h.store.UserByID(entity.ID(GetUserID(c)))
	if err != nil {
		return entity.User{}, err
	}
	if string(user.CondominiumID) != GetCondominiumID(c) {
		h.log.Info().Str("user_id", string(user.ID)).Msg("token de otro condominio")
		return entity.User{}, errOtherCondominium
	}
	return user, nil
}

// UpdateMe actualiza nombre, email, teléfono y opcionalmente la contraseña.
// @Router       /api/user/me [put]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return writeError(c, err)
	}
	current, err := h.currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	user, err := h.store.UpdateUser(current.ID, in.Name, in.Email, in.Phone, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// SendReset responde igual exista o no el email.
// @Router       /api/send-reset [post]
func (h *AuthHandler) SendReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("email", in.Email).Msg("reset de contraseña solicitado")
	return c.JSON(dto.MessageResponse{Message: "Se o e-mail estiver cadastrado, você receberá as instruções"})
}
