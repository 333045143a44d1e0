package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portaria-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/portaria-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "portaria-test"
)

// issueToken firma un token para el usuario y condominio dados, sin pasar por /login.
func issueToken(t *testing.T, userID, condominiumID, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, condominiumID, role, testIssuer, expMin)
	require.NoError(t, err)
	return tok
}

// adminID id del admin sembrado, leído de la sesión de login.
func adminID(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/login", "", map[string]string{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, status)
	s := decode[entity.Session](t, raw)
	require.NotNil(t, s.User)
	return string(s.User.ID)
}

// rawAuth lanza GET path con el header Authorization tal cual.
func rawAuth(t *testing.T, app *fiber.App, path, header string) (int, errorBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CodigosDeRechazo(t *testing.T) {
	app, _ := newMockApp(t)
	expired := issueToken(t, "u-1", "", entity.RolePorteiro, -1)
	otherSecret, err := pkgjwt.Generate("otro-secret", "u-1", "", entity.RolePorteiro, testIssuer, 60)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto de Bearer", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"token malformado", "Bearer no.es.jwt", "INVALID_TOKEN"},
		{"token expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"firmado con otro secret", "Bearer " + otherSecret, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := rawAuth(t, app, "/api/visitors", tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_EsquemaSinDistinguirMayusculas(t *testing.T) {
	app, _ := newMockApp(t)
	status, _ := rawAuth(t, app, "/api/visitors", "bearer "+issueToken(t, "u-1", "", entity.RolePorteiro, 60))
	assert.Equal(t, http.StatusOK, status)
}

func TestPerfil_TokenDeOtroCondominioRechazado(t *testing.T) {
	app, _ := newMockApp(t)
	id := adminID(t, app)

	status, _ := call(t, app, http.MethodGet, "/api/user/me", issueToken(t, id, "", entity.RoleAdmin, 60), nil)
	assert.Equal(t, http.StatusOK, status, "el condominio del token coincide con el del usuario")

	moved := issueToken(t, id, "condominio-antiguo", entity.RoleAdmin, 60)
	status, _ = call(t, app, http.MethodGet, "/api/user/me", moved, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodPut, "/api/user/me", moved, map[string]string{"name": "Outro", "email": adminEmail})
	assert.Equal(t, http.StatusUnauthorized, status, "tampoco puede editar el perfil")
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos por rol en las rutas del mock
// ──────────────────────────────────────────────────────────────────────────────

func TestRoles_EscriturasPorRecurso(t *testing.T) {
	app, _ := newMockApp(t)

	cases := []struct {
		path    string
		allowed []string
		denied  []string
	}{
		{"/api/company", []string{entity.RoleAdmin}, []string{entity.RoleSindico, entity.RolePorteiro}},
		{"/api/residence", []string{entity.RoleAdmin, entity.RoleSindico}, []string{entity.RolePorteiro}},
		{"/api/resident", []string{entity.RoleAdmin, entity.RoleSindico}, []string{entity.RolePorteiro}},
		{"/api/employees", []string{entity.RoleAdmin, entity.RoleSindico}, []string{entity.RolePorteiro}},
		{"/api/visitors", []string{entity.RoleAdmin, entity.RoleSindico, entity.RolePorteiro}, nil},
		{"/api/appointments", []string{entity.RoleAdmin, entity.RoleSindico, entity.RolePorteiro}, nil},
		{"/api/deliveries", []string{entity.RoleAdmin, entity.RoleSindico, entity.RolePorteiro}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			for _, role := range tc.denied {
				status, raw := call(t, app, http.MethodPost, tc.path, issueToken(t, "u-1", "", role, 60), map[string]string{})
				assert.Equal(t, http.StatusForbidden, status, role)
				assert.Equal(t, "FORBIDDEN", decode[errorBody](t, raw).Code, role)

				status, _ = call(t, app, http.MethodDelete, tc.path+"/no-existe", issueToken(t, "u-1", "", role, 60), nil)
				assert.Equal(t, http.StatusForbidden, status, "delete con rol %s", role)
			}
			for _, role := range tc.allowed {
				// el cuerpo vacío no pasa la validación: 422 prueba que el rol sí pasó
				status, _ := call(t, app, http.MethodPost, tc.path, issueToken(t, "u-1", "", role, 60), map[string]string{})
				assert.Equal(t, http.StatusUnprocessableEntity, status, role)
			}
		})
	}
}

func TestRoles_LecturasAbiertasATodoAutenticado(t *testing.T) {
	app, _ := newMockApp(t)
	tok := issueToken(t, "u-1", "", entity.RolePorteiro, 60)
	for _, path := range []string{"/api/company", "/api/residence", "/api/resident", "/api/employees"} {
		status, _ := call(t, app, http.MethodGet, path, tok, nil)
		assert.Equal(t, http.StatusOK, status, path)
	}
}

func TestRoles_TokenSinRol(t *testing.T) {
	app, _ := newMockApp(t)
	tok := issueToken(t, "u-1", "", "", 60)

	status, raw := call(t, app, http.MethodPost, "/api/residence", tok, map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", decode[errorBody](t, raw).Code)

	status, _ = call(t, app, http.MethodGet, "/api/residence", tok, nil)
	assert.Equal(t, http.StatusOK, status, "las lecturas no exigen rol")
}
