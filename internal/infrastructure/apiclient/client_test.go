package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/repository"
	"github.com/jhoicas/portaria-api/internal/infrastructure/apiclient"
	"github.com/jhoicas/portaria-api/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newClient(t *testing.T, handler http.HandlerFunc) (*apiclient.Client, *storage.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := storage.NewMemoryStore()
	c := apiclient.New(store, apiclient.Options{BaseURL: srv.URL + "/api/", Logger: zerolog.Nop()})
	return c, store
}

func loginStore(t *testing.T, store *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.KeyToken, "tok-123"))
	require.NoError(t, store.Set(ctx, repository.KeyTokenType, "bearer"))
	require.NoError(t, store.Set(ctx, repository.KeyUser, `{"id":1,"name":"Ana"}`))
}

// ──────────────────────────────────────────────────────────────────────────────
// Request
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_EnviaBearerCapitalizado(t *testing.T) {
	var gotAuth, gotPath string
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "name": "Portaria"}`))
	})
	loginStore(t, store)

	var out struct {
		ID   json.Number `json:"id"`
		Name string      `json:"name"`
	}
	require.NoError(t, c.Request(context.Background(), http.MethodGet, "/user/me", nil, &out))

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/user/me", gotPath)
	assert.Equal(t, "Portaria", out.Name)
}

func TestRequest_401BorraSesionYNotifica(t *testing.T) {
	calls := 0
	var lastAuth string
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		lastAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	})
	loginStore(t, store)

	expired := 0
	c.OnAuthExpired(func() { expired++ })

	err := c.Request(context.Background(), http.MethodGet, "/residence", nil, nil)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Equal(t, 1, expired)

	for _, k := range repository.SessionKeys {
		_, ok, _ := store.Get(context.Background(), k)
		assert.False(t, ok, "la llave %s debe borrarse tras el 401", k)
	}

	// La siguiente llamada sale sin credenciales.
	_ = c.Request(context.Background(), http.MethodGet, "/residence", nil, nil)
	assert.Equal(t, 2, calls)
	assert.Empty(t, lastAuth)
}

func TestRequest_HTMLEsRespuestaInvalida(t *testing.T) {
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body>502 Bad Gateway</body></html>"))
	})
	loginStore(t, store)

	err := c.Request(context.Background(), http.MethodGet, "/visitors", nil, &struct{}{})
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestRequest_HTMLSinContentType(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("  <html>oops</html>"))
	})

	err := c.Request(context.Background(), http.MethodGet, "/visitors", nil, &struct{}{})
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestRequest_JSONInvalido(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	})

	err := c.Request(context.Background(), http.MethodGet, "/visitors", nil, &struct{}{})
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestRequest_HTTPErrorConMensaje(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"CPF já cadastrado"}`))
	})

	err := c.Request(context.Background(), http.MethodPost, "/visitors", map[string]string{"name": "x"}, nil)
	var httpErr *domain.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, "CPF já cadastrado", httpErr.Message)
	assert.True(t, domain.IsHTTPStatus(err, http.StatusUnprocessableEntity))
}

func TestRequest_SerializaBody(t *testing.T) {
	var got map[string]string
	var contentType string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Request(context.Background(), http.MethodPut, "/user/me", map[string]string{"name": "Ana"}, &struct{}{}))
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Ana", got["name"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestNoAuth / Upload / BaseURL
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestNoAuth_SinHeaderY401NoBorraSesion(t *testing.T) {
	var gotAuth string
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	})
	loginStore(t, store)

	err := c.RequestNoAuth(context.Background(), http.MethodPost, "/login", map[string]string{"email": "a@b.c"}, nil)
	assert.Empty(t, gotAuth)
	assert.True(t, domain.IsHTTPStatus(err, http.StatusUnauthorized))
	assert.NotErrorIs(t, err, domain.ErrAuthExpired)

	_, ok, _ := store.Get(context.Background(), repository.KeyToken)
	assert.True(t, ok, "un 401 en endpoint público no debe borrar la sesión")
}

func TestUpload_MultipartCampoPlate(t *testing.T) {
	var field, filename, content string
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for k, files := range r.MultipartForm.File {
			field = k
			filename = files[0].Filename
			f, err := files[0].Open()
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			b, _ := io.ReadAll(f)
			content = string(b)
		}
		_, _ = w.Write([]byte(`{"plate":"ABC1D23"}`))
	})
	loginStore(t, store)

	var out struct {
		Plate string `json:"plate"`
	}
	err := c.Upload(context.Background(), "/gate/plate", "plate", "placa.jpg", strings.NewReader("jpeg-bytes"), &out)
	require.NoError(t, err)
	assert.Equal(t, "plate", field)
	assert.Equal(t, "placa.jpg", filename)
	assert.Equal(t, "jpeg-bytes", content)
	assert.Equal(t, "ABC1D23", out.Plate)
}

func TestSetBaseURL(t *testing.T) {
	var hit bool
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {})
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		_, _ = w.Write([]byte(`{}`))
	}))
	defer other.Close()

	ctx := context.Background()
	var verr *domain.ValidationError
	assert.True(t, errors.As(c.SetBaseURL(ctx, "ftp://x"), &verr))
	assert.True(t, errors.As(c.SetBaseURL(ctx, "no-es-url"), &verr))

	require.NoError(t, c.SetBaseURL(ctx, other.URL+"/"))
	assert.Equal(t, other.URL, c.BaseURL(ctx))
	require.NoError(t, c.RequestNoAuth(ctx, http.MethodGet, "/infos/state", nil, nil))
	assert.True(t, hit)
}
