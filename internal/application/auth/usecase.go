// Package auth mantiene la sesión del usuario de la portaria.
//
// Estados: Unauthenticated ──Login/Restore──▶ Authenticated ──Logout | 401──▶ Unauthenticated.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/notify"
	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/application/validation"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/domain/repository"
	"github.com/jhoicas/portaria-api/pkg/config"
)

// Endpoints de autenticación.
const (
	LoginEndpoint     = "/login"
	LogoutEndpoint    = "/logout"
	MeEndpoint        = "/user/me"
	SendResetEndpoint = "/send-reset"
)

// MockTokenType tipo de token de las sesiones creadas por el bypass de desarrollo.
const MockTokenType = "Mock"

// State estado de autenticación.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Options parámetros del caso de uso.
type Options struct {
	DevBypass config.DevBypassConfig
	Logger    zerolog.Logger
}

// AuthUseCase login, logout, restauración de sesión y perfil.
type AuthUseCase struct {
	api      ports.APIRequester
	store    repository.KeyValueStore
	notifier ports.Notifier
	bypass   config.DevBypassConfig
	log      zerolog.Logger

	mu        sync.RWMutex
	state     State
	user      *entity.User
	observers []func(State, *entity.User)
}

// NewAuthUseCase construye el caso de uso. Si api avisa de sesiones expiradas (401),
// el estado pasa a Unauthenticated automáticamente.
func NewAuthUseCase(api ports.APIRequester, store repository.KeyValueStore, notifier ports.Notifier, opts Options) *AuthUseCase {
	uc := &AuthUseCase{
		api:      api,
		store:    store,
		notifier: notifier,
		bypass:   opts.DevBypass,
		log:      opts.Logger.With().Str("component", "auth").Logger(),
	}
	if src, ok := api.(ports.SessionExpirySource); ok {
		src.OnAuthExpired(uc.expired)
	}
	return uc
}

// OnChange registra un observador de transiciones de estado.
func (uc *AuthUseCase) OnChange(fn func(State, *entity.User)) {
	uc.mu.Lock()
	uc.observers = append(uc.observers, fn)
	uc.mu.Unlock()
}

// State estado actual.
func (uc *AuthUseCase) State() State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state
}

// User perfil en memoria; nil si no hay sesión.
func (uc *AuthUseCase) User() *entity.User {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.user == nil {
		return nil
	}
	u := *uc.user
	return &u
}

// IsAuthenticated atajo para State() == StateAuthenticated.
func (uc *AuthUseCase) IsAuthenticated() bool { return uc.State() == StateAuthenticated }

// Login autentica contra POST /login y persiste la sesión. Si la respuesta no trae
// el usuario, lo busca en GET /user/me.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	req := dto.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if uc.bypassMatches(req) {
		return uc.loginBypass(ctx, req.Email)
	}

	var session entity.Session
	if err := uc.api.RequestNoAuth(ctx, http.MethodPost, LoginEndpoint, req, &session); err != nil {
		uc.log.Warn().Err(err).Str("email", req.Email).Msg("login rechazado")
		uc.notifier.Error("Falha no login", loginMessage(err))
		return nil, err
	}
	if session.Token == "" {
		err := fmt.Errorf("%w: login sin access_token", domain.ErrInvalidResponse)
		uc.notifier.Error("Falha no login", notify.ErrorMessage(err))
		return nil, err
	}
	if err := uc.persist(ctx, session); err != nil {
		return nil, err
	}

	user := session.User
	if user == nil {
		me, err := uc.fetchMe(ctx)
		if err != nil {
			uc.clear(ctx)
			uc.notifier.Error("Falha no login", notify.ErrorMessage(err))
			return nil, err
		}
		user = me
	}

	uc.transition(StateAuthenticated, user)
	uc.log.Info().Str("user_id", user.ID.String()).Msg("sesión iniciada")
	uc.notifier.Success("Bem-vindo", user.Name)
	return user, nil
}

func (uc *AuthUseCase) bypassMatches(req dto.LoginRequest) bool {
	return uc.bypass.Enabled &&
		uc.bypass.Email != "" &&
		strings.EqualFold(req.Email, uc.bypass.Email) &&
		req.Password == uc.bypass.Password
}

func (uc *AuthUseCase) loginBypass(ctx context.Context, email string) (*entity.User, error) {
	uc.log.Warn().Str("email", email).Msg("login con bypass de desarrollo, sin validar contra la API")
	user := &entity.User{ID: "dev", Name: "Desenvolvimento", Email: email, Role: entity.RoleAdmin}
	session := entity.Session{Token: "dev-bypass", TokenType: MockTokenType, User: user}
	if err := uc.persist(ctx, session); err != nil {
		return nil, err
	}
	uc.transition(StateAuthenticated, user)
	uc.notifier.Info("Modo de desenvolvimento", "Sessão local sem validação da API")
	return user, nil
}

// Logout avisa a la API (best effort) y borra la sesión local.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	tokenType, _, _ := uc.store.Get(ctx, repository.KeyTokenType)
	if tokenType != MockTokenType {
		if err := uc.api.Request(ctx, http.MethodPost, LogoutEndpoint, nil, nil); err != nil && !errors.Is(err, domain.ErrAuthExpired) {
			uc.log.Debug().Err(err).Msg("logout remoto")
		}
	}
	if err := uc.store.Delete(context.WithoutCancel(ctx), repository.SessionKeys...); err != nil {
		return fmt.Errorf("auth: borrar sesión: %w", err)
	}
	uc.transition(StateUnauthenticated, nil)
	uc.log.Info().Msg("sesión cerrada")
	return nil
}

// Restore valida la sesión persistida al arrancar. Devuelve true si quedó autenticado.
// Cualquier falla borra la sesión y deja el estado en Unauthenticated.
func (uc *AuthUseCase) Restore(ctx context.Context) (bool, error) {
	token, ok, err := uc.store.Get(ctx, repository.KeyToken)
	if err != nil {
		return false, fmt.Errorf("auth: leer token: %w", err)
	}
	if !ok || token == "" {
		uc.transition(StateUnauthenticated, nil)
		return false, nil
	}

	tokenType, _, _ := uc.store.Get(ctx, repository.KeyTokenType)
	if tokenType == MockTokenType {
		user, err := uc.storedUser(ctx)
		if !uc.bypass.Enabled || err != nil || user == nil {
			uc.log.Warn().Msg("sesión de bypass descartada")
			uc.clear(ctx)
			return false, nil
		}
		uc.transition(StateAuthenticated, user)
		return true, nil
	}

	user, err := uc.fetchMe(ctx)
	if err != nil {
		uc.clear(ctx)
		if errors.Is(err, domain.ErrAuthExpired) {
			return false, nil
		}
		return false, err
	}
	uc.transition(StateAuthenticated, user)
	return true, nil
}

// RefreshProfile vuelve a leer GET /user/me.
func (uc *AuthUseCase) RefreshProfile(ctx context.Context) (*entity.User, error) {
	if !uc.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	user, err := uc.fetchMe(ctx)
	if err != nil {
		return nil, err
	}
	uc.transition(StateAuthenticated, user)
	return user, nil
}

// UpdateProfile valida y envía PUT /user/me.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, in dto.UpdateProfileRequest) (*entity.User, error) {
	if !uc.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var user entity.User
	if err := uc.api.Request(ctx, http.MethodPut, MeEndpoint, in, &user); err != nil {
		uc.log.Error().Err(err).Msg("actualizar perfil")
		uc.notifier.Error("Erro ao atualizar perfil", notify.ErrorMessage(err))
		return nil, err
	}
	if user.ID == "" {
		// la API puede responder solo un mensaje; se relee el perfil
		me, err := uc.fetchMe(ctx)
		if err != nil {
			return nil, err
		}
		user = *me
	} else if err := uc.saveUser(ctx, &user); err != nil {
		return nil, err
	}
	uc.transition(StateAuthenticated, &user)
	uc.notifier.Success("Perfil atualizado", "")
	return &user, nil
}

// SendPasswordReset pide el e-mail de recuperación de contraseña.
func (uc *AuthUseCase) SendPasswordReset(ctx context.Context, email string) error {
	req := dto.PasswordResetRequest{Email: strings.TrimSpace(email)}
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := uc.api.RequestNoAuth(ctx, http.MethodPost, SendResetEndpoint, req, nil); err != nil {
		uc.notifier.Error("Erro ao enviar e-mail", notify.ErrorMessage(err))
		return err
	}
	uc.notifier.Success("E-mail enviado", "Verifique sua caixa de entrada")
	return nil
}

// Session lee la sesión persistida.
func (uc *AuthUseCase) Session(ctx context.Context) (*entity.Session, error) {
	token, ok, err := uc.store.Get(ctx, repository.KeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	s := &entity.Session{Token: token}
	s.TokenType, _, _ = uc.store.Get(ctx, repository.KeyTokenType)
	if raw, ok, _ := uc.store.Get(ctx, repository.KeyExpiresIn); ok {
		s.ExpiresIn, _ = strconv.Atoi(raw)
	}
	s.User, _ = uc.storedUser(ctx)
	return s, nil
}

// ── internos ──────────────────────────────────────────────────────────────────

func (uc *AuthUseCase) fetchMe(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := uc.api.Request(ctx, http.MethodGet, MeEndpoint, nil, &user); err != nil {
		return nil, err
	}
	if err := uc.saveUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (uc *AuthUseCase) persist(ctx context.Context, s entity.Session) error {
	tokenType := s.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	for _, kv := range [][2]string{
		{repository.KeyToken, s.Token},
		{repository.KeyTokenType, tokenType},
		{repository.KeyExpiresIn, strconv.Itoa(s.ExpiresIn)},
	} {
		if err := uc.store.Set(ctx, kv[0], kv[1]); err != nil {
			return fmt.Errorf("auth: guardar %s: %w", kv[0], err)
		}
	}
	if s.User != nil {
		return uc.saveUser(ctx, s.User)
	}
	return nil
}

func (uc *AuthUseCase) saveUser(ctx context.Context, u *entity.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("auth: serializar usuario: %w", err)
	}
	if err := uc.store.Set(ctx, repository.KeyUser, string(b)); err != nil {
		return fmt.Errorf("auth: guardar usuario: %w", err)
	}
	return nil
}

func (uc *AuthUseCase) storedUser(ctx context.Context) (*entity.User, error) {
	raw, ok, err := uc.store.Get(ctx, repository.KeyUser)
	if err != nil || !ok {
		return nil, err
	}
	var u entity.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("auth: usuario persistido inválido: %w", err)
	}
	return &u, nil
}

func (uc *AuthUseCase) clear(ctx context.Context) {
	if err := uc.store.Delete(context.WithoutCancel(ctx), repository.SessionKeys...); err != nil {
		uc.log.Error().Err(err).Msg("borrar sesión")
	}
	uc.transition(StateUnauthenticated, nil)
}

// expired lo invoca el cliente HTTP después de borrar la sesión por un 401.
func (uc *AuthUseCase) expired() {
	if uc.State() == StateUnauthenticated {
		return
	}
	uc.transition(StateUnauthenticated, nil)
	uc.notifier.Info("Sessão expirada", "Faça login novamente")
}

func (uc *AuthUseCase) transition(to State, user *entity.User) {
	uc.mu.Lock()
	uc.state = to
	if user != nil {
		u := *user
		uc.user = &u
	} else {
		uc.user = nil
	}
	observers := append([]func(State, *entity.User){}, uc.observers...)
	uc.mu.Unlock()

	for _, fn := range observers {
		fn(to, user)
	}
}

func loginMessage(err error) string {
	if domain.IsHTTPStatus(err, http.StatusUnauthorized) || domain.IsHTTPStatus(err, http.StatusUnprocessableEntity) {
		return "E-mail ou senha inválidos"
	}
	return notify.ErrorMessage(err)
}
