package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portaria-api/internal/application/auth"
	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/notify"
	"github.com/jhoicas/portaria-api/internal/application/pagination"
	"github.com/jhoicas/portaria-api/internal/application/usecase"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/domain/repository"
	"github.com/jhoicas/portaria-api/internal/infrastructure/apiclient"
	"github.com/jhoicas/portaria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/portaria-api/internal/infrastructure/storage"
	"github.com/jhoicas/portaria-api/pkg/clock"
)

// fiberTransport despacha las peticiones del cliente directo a la app, sin socket.
type fiberTransport struct{ app *fiber.App }

func (t fiberTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.app.Test(req, -1)
}

type e2eFixture struct {
	store   *storage.MemoryStore
	client  *apiclient.Client
	toaster *notify.Toaster
	auth    *auth.AuthUseCase
	clk     *clock.Fake
}

func newE2E(t *testing.T) *e2eFixture {
	t.Helper()
	app, _ := newMockApp(t)
	store := storage.NewMemoryStore()
	client := apiclient.New(store, apiclient.Options{
		BaseURL:    "http://portaria.test/api",
		HTTPClient: &http.Client{Transport: fiberTransport{app: app}},
		Logger:     zerolog.Nop(),
	})
	clk := clock.NewFake(fixedNow)
	toaster := notify.NewToaster(clk, 0, zerolog.Nop())
	t.Cleanup(toaster.Close)
	return &e2eFixture{
		store:   store,
		client:  client,
		toaster: toaster,
		auth:    auth.NewAuthUseCase(client, store, toaster, auth.Options{Logger: zerolog.Nop()}),
		clk:     clk,
	}
}

func (f *e2eFixture) listOpts() pagination.Options {
	return pagination.Options{Clock: f.clk, Logger: zerolog.Nop()}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cliente contra el servidor mock
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_LoginListarYConfirmarEntrada(t *testing.T) {
	ctx := context.Background()
	f := newE2E(t)

	user, err := f.auth.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.Equal(t, adminEmail, user.Email)
	tokenType, _, _ := f.store.Get(ctx, repository.KeyTokenType)
	assert.Equal(t, "bearer", tokenType)

	guests := usecase.NewGuests(f.client, f.toaster, zerolog.Nop())
	list := guests.List(f.listOpts())
	defer list.Close()
	require.NoError(t, list.Open(ctx))
	snap := list.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 2, snap.TotalCount)
	assert.False(t, snap.HasNextPage)

	gate := usecase.NewGateUseCase(f.client, f.toaster, zerolog.Nop())
	schedule := gate.ScheduleList(f.listOpts())
	defer schedule.Close()
	require.NoError(t, schedule.Open(ctx))
	entries := schedule.Snapshot().Items
	require.Len(t, entries, 3)

	res, err := gate.ConfirmEntry(ctx, entries[0])
	require.NoError(t, err)
	assert.Equal(t, entity.ScheduleStatusInside, res.Status)

	_, err = gate.ConfirmEntry(ctx, entries[0])
	assert.True(t, domain.IsHTTPStatus(err, http.StatusConflict), "entrada duplicada: %v", err)
}

func TestE2E_AltaConErrorDeValidacionDelServidor(t *testing.T) {
	ctx := context.Background()
	f := newE2E(t)
	_, err := f.auth.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	appointments := usecase.NewAppointments(f.client, f.toaster, zerolog.Nop())
	_, err = appointments.Add(ctx, dto.AppointmentRequest{
		ResidenceID: "no-existe", GuestIDs: []entity.ID{"x"}, StartDate: "2026-03-10", EndDate: "2026-03-10",
	})
	assert.True(t, domain.IsHTTPStatus(err, http.StatusUnprocessableEntity), "%v", err)
	toasts := f.toaster.List()
	require.NotEmpty(t, toasts)
	assert.Equal(t, entity.ToastError, toasts[len(toasts)-1].Type)
}

func TestE2E_TokenInvalidoCierraLaSesion(t *testing.T) {
	ctx := context.Background()
	f := newE2E(t)
	_, err := f.auth.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	require.NoError(t, f.client.SetBaseURL(ctx, "http://portaria.test/api"))

	require.NoError(t, f.store.Set(ctx, repository.KeyToken, "token-adulterado"))
	_, err = f.auth.RefreshProfile(ctx)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.False(t, f.auth.IsAuthenticated())

	_, ok, _ := f.store.Get(ctx, repository.KeyToken)
	assert.False(t, ok, "el token se borra con el 401")
	baseURL, ok, _ := f.store.Get(ctx, repository.KeyBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "http://portaria.test/api", baseURL)
}

func TestE2E_ReporteDePortaria(t *testing.T) {
	ctx := context.Background()
	f := newE2E(t)
	_, err := f.auth.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	gate := usecase.NewGateUseCase(f.client, f.toaster, zerolog.Nop())
	report := usecase.NewReportUseCase(gate, pdf.NewMarotoPDFGenerator("Portaria"), f.clk, zerolog.Nop())

	doc, count, err := report.GateLog(ctx, "Administrador", "ana beatriz", usecase.DefaultReportMaxPages)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "Ana está agendada en dos residencias")
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestE2E_Restore(t *testing.T) {
	ctx := context.Background()
	f := newE2E(t)
	_, err := f.auth.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	// nuevo proceso sobre el mismo almacenamiento
	again := auth.NewAuthUseCase(f.client, f.store, f.toaster, auth.Options{Logger: zerolog.Nop()})
	ok, err := again.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, adminEmail, again.User().Email)

	require.NoError(t, again.Logout(ctx))
	ok, err = again.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
