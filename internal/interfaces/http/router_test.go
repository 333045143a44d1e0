package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
	apphttp "github.com/jhoicas/portaria-api/internal/interfaces/http"
	"github.com/jhoicas/portaria-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminEmail    = "admin@portaria.local"
	adminPassword = "admin123"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// newMockApp levanta la app con datos de ejemplo y un admin.
func newMockApp(t *testing.T) (*fiber.App, *memdb.Store) {
	t.Helper()
	store := memdb.New(func() time.Time { return fixedNow })
	_, err := store.SeedAdmin(adminEmail, adminPassword)
	require.NoError(t, err)
	store.SeedSample()
	app := apphttp.NewApp(apphttp.RouterDeps{
		Store:   store,
		JWT:     config.JWTConfig{Secret: testJWTSecret, Expiration: 60, Issuer: testIssuer},
		PerPage: 15,
		Log:     zerolog.Nop(),
	})
	return app, store
}

// call lanza una petición JSON y devuelve status y cuerpo crudo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, string(raw))
	var s entity.Session
	require.NoError(t, json.Unmarshal(raw, &s))
	return s.Token
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := newMockApp(t)
	status, raw := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestLogin_DevuelveSesionConUsuario(t *testing.T) {
	app, _ := newMockApp(t)
	status, raw := call(t, app, http.MethodPost, "/api/login", "", map[string]string{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, status)

	s := decode[entity.Session](t, raw)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "bearer", s.TokenType)
	assert.Equal(t, 3600, s.ExpiresIn)
	require.NotNil(t, s.User)
	assert.Equal(t, adminEmail, s.User.Email)
	assert.Equal(t, entity.RoleAdmin, s.User.Role)
}

func TestLogin_PasswordIncorrecto_401(t *testing.T) {
	app, _ := newMockApp(t)
	status, raw := call(t, app, http.MethodPost, "/api/login", "", map[string]string{"email": adminEmail, "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Credenciais inválidas", decode[errorBody](t, raw).Message)
}

func TestLogin_EmailInvalido_422(t *testing.T) {
	app, _ := newMockApp(t)
	status, raw := call(t, app, http.MethodPost, "/api/login", "", map[string]string{"email": "no-es-email", "password": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	body := decode[errorBody](t, raw)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Errors, "email")
}

func TestMe_SinToken_401(t *testing.T) {
	app, _ := newMockApp(t)
	status, raw := call(t, app, http.MethodGet, "/api/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", decode[errorBody](t, raw).Code)
}

func TestMe_GetYPut(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/user/me", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, adminEmail, decode[entity.User](t, raw).Email)

	status, raw = call(t, app, http.MethodPut, "/api/user/me", tok, map[string]string{
		"name": "Síndica Geral", "email": adminEmail, "password": "nova-senha", "password_confirmation": "nova-senha",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "Síndica Geral", decode[entity.User](t, raw).Name)

	// la contraseña nueva ya sirve para entrar
	login(t, app, adminEmail, "nova-senha")
}

func TestSendReset_RespondeIgualSinImportarElEmail(t *testing.T) {
	app, _ := newMockApp(t)
	s1, r1 := call(t, app, http.MethodPost, "/api/send-reset", "", map[string]string{"email": adminEmail})
	s2, r2 := call(t, app, http.MethodPost, "/api/send-reset", "", map[string]string{"email": "nadie@portaria.local"})
	assert.Equal(t, http.StatusOK, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, string(r1), string(r2))
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD genérico
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FormatoDePaginaLaravel(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/residence?page=1&per_page=1", tok, nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[entity.Page[entity.Residence]](t, raw)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.LastPage)
	assert.Equal(t, 2, page.Total)
	assert.True(t, page.HasNextPage())
}

func TestList_BusquedaSinAcentos(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/visitors?search=joao", tok, nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[entity.Page[entity.Guest]](t, raw)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "João Pedro", page.Data[0].Name)
}

func TestCreate_CPFInvalido_422(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodPost, "/api/visitors", tok, map[string]string{"name": "Rita", "cpf": "111.111.111-11"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CPF inválido", decode[errorBody](t, raw).Errors["cpf"])
}

func TestCreateGetUpdateDelete(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodPost, "/api/visitors", tok, map[string]string{"name": "Rita Campos", "cpf": "529.982.247-25", "plate": "xyz9a88"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[entity.Guest](t, raw)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "XYZ9A88", created.Plate)
	assert.Equal(t, fixedNow.Format(time.RFC3339), created.CreatedAt)

	status, raw = call(t, app, http.MethodGet, "/api/visitors/"+string(created.ID), tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rita Campos", decode[entity.Guest](t, raw).Name)

	status, raw = call(t, app, http.MethodPut, "/api/visitors/"+string(created.ID), tok, map[string]string{"name": "Rita C. Campos", "cpf": "529.982.247-25"})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[entity.Guest](t, raw)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Rita C. Campos", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	status, _ = call(t, app, http.MethodDelete, "/api/visitors/"+string(created.ID), tok, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodGet, "/api/visitors/"+string(created.ID), tok, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDelete_Inexistente_404(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)
	status, raw := call(t, app, http.MethodDelete, "/api/deliveries/no-existe", tok, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, raw).Code)
}

func TestAppointment_VisitanteInexistente_422(t *testing.T) {
	app, store := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)
	residence := store.Residences.All()[0]

	status, raw := call(t, app, http.MethodPost, "/api/appointments", tok, map[string]any{
		"residence_id": residence.ID, "guest_ids": []string{"fantasma"},
		"start_date": "2026-03-10", "end_date": "2026-03-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, decode[errorBody](t, raw).Errors, "guest_ids")
}

func TestPorteiro_NoPuedeCrearResidencia(t *testing.T) {
	app, store := newMockApp(t)
	_, err := store.CreateUser(entity.User{Name: "Portero", Email: "porteiro@portaria.local", Role: entity.RolePorteiro}, "porteiro1")
	require.NoError(t, err)
	tok := login(t, app, "porteiro@portaria.local", "porteiro1")

	status, _ := call(t, app, http.MethodGet, "/api/residence", tok, nil)
	assert.Equal(t, http.StatusOK, status, "lectura permitida")

	status, raw := call(t, app, http.MethodPost, "/api/residence", tok, map[string]string{"number": "303"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decode[errorBody](t, raw).Code)
}

func TestProviderDirectory_NoColisionaConId(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/provider/list-providers", tok, nil)
	require.Equal(t, http.StatusOK, status)
	providers := decode[[]entity.ServiceProvider](t, raw)
	require.Len(t, providers, 1)
	assert.Equal(t, "Net Fibra", providers[0].Company)
}

// ──────────────────────────────────────────────────────────────────────────────
// Portaria y catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestSchedule_YAccionesDePortaria(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/visitors/schedule", tok, nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[entity.Page[entity.ScheduleEntry]](t, raw)
	require.Equal(t, 3, page.Total)
	entry := page.Data[0]
	assert.Equal(t, entity.ScheduleStatusPending, entry.Status)

	action := map[string]any{"schedule_id": entry.ID, "visitor_id": entry.VisitorID, "action": "entry"}
	status, raw = call(t, app, http.MethodPost, "/api/gate/actions", tok, action)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, entity.ScheduleStatusInside, decode[entity.GateActionResult](t, raw).Status)

	status, _ = call(t, app, http.MethodPost, "/api/gate/actions", tok, action)
	assert.Equal(t, http.StatusConflict, status, "entrada duplicada")

	action["action"] = "saida"
	status, _ = call(t, app, http.MethodPost, "/api/gate/actions", tok, action)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func uploadPlate(t *testing.T, app *fiber.App, token, filename string) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(apphttp.PlateFormField, filename)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\xff\xd8\xff\xe0 fake image"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/gate/plate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestPlate_Upload(t *testing.T) {
	app, _ := newMockApp(t)
	tok := login(t, app, adminEmail, adminPassword)

	status, raw := uploadPlate(t, app, tok, "abc1d23.jpg")
	require.Equal(t, http.StatusCreated, status, string(raw))
	up := decode[entity.PlateUpload](t, raw)
	assert.Equal(t, "ABC1D23", up.Plate)
	assert.Contains(t, up.PhotoURL, ".jpg")

	status, raw = uploadPlate(t, app, tok, "placa.gif")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, decode[errorBody](t, raw).Errors, apphttp.PlateFormField)
}

func TestInfos_Ciudades(t *testing.T) {
	app, _ := newMockApp(t)

	status, raw := call(t, app, http.MethodGet, "/api/infos/state", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]entity.State](t, raw), 3)

	status, raw = call(t, app, http.MethodGet, "/api/infos/city?state=sp", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]entity.City](t, raw), 2)

	status, _ = call(t, app, http.MethodGet, "/api/infos/city?state=XYZ", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
