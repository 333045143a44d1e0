// Package apiclient implementa el cliente HTTP de la API REST del condominio:
// inyecta el header Authorization, serializa JSON, detecta páginas de error HTML
// y fuerza el logout cuando la API responde 401.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/domain/repository"
)

// Verificar en tiempo de compilación que Client implementa APIRequester.
var _ ports.APIRequester = (*Client)(nil)

const maxBodyBytes = 10 << 20

// Options parámetros del cliente.
type Options struct {
	BaseURL    string        // URL por defecto si el usuario no guardó otra
	Timeout    time.Duration // 0 = sin timeout de red
	HTTPClient *http.Client  // opcional; si se pasa, Timeout se ignora
	Logger     zerolog.Logger
}

// Client cliente autenticado de la API. Lee token y base URL del KeyValueStore en cada llamada.
type Client struct {
	store          repository.KeyValueStore
	httpClient     *http.Client
	defaultBaseURL string
	log            zerolog.Logger

	mu        sync.RWMutex
	onExpired []func()
}

// New construye el cliente.
func New(store repository.KeyValueStore, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		store:          store,
		httpClient:     hc,
		defaultBaseURL: strings.TrimRight(opts.BaseURL, "/"),
		log:            opts.Logger.With().Str("component", "apiclient").Logger(),
	}
}

// OnAuthExpired registra un callback que se ejecuta después de borrar la sesión por un 401.
func (c *Client) OnAuthExpired(fn func()) {
	c.mu.Lock()
	c.onExpired = append(c.onExpired, fn)
	c.mu.Unlock()
}

// BaseURL devuelve la URL persistida por el usuario o la de configuración.
func (c *Client) BaseURL(ctx context.Context) string {
	v, ok, err := c.store.Get(ctx, repository.KeyBaseURL)
	if err != nil {
		c.log.Warn().Err(err).Msg("leer base URL persistida")
	}
	if ok && v != "" {
		return strings.TrimRight(v, "/")
	}
	return c.defaultBaseURL
}

// SetBaseURL valida y persiste una nueva URL base (pantalla de ajustes).
func (c *Client) SetBaseURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &domain.ValidationError{Fields: map[string]string{"base_url": "URL inválida, use http:// ou https://"}}
	}
	return c.store.Set(ctx, repository.KeyBaseURL, strings.TrimRight(raw, "/"))
}

// Request llama un endpoint autenticado.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, method, endpoint, reader, "application/json", true, out)
}

// RequestNoAuth llama un endpoint público. Un 401 aquí son credenciales inválidas, no sesión expirada.
func (c *Client) RequestNoAuth(ctx context.Context, method, endpoint string, body, out any) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, method, endpoint, reader, "application/json", false, out)
}

// Upload envía multipart/form-data con un único archivo.
func (c *Client) Upload(ctx context.Context, endpoint, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("apiclient: crear parte multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("apiclient: copiar archivo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("apiclient: cerrar multipart: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, &buf, mw.FormDataContentType(), true, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, auth bool, out any) error {
	target := c.BaseURL(ctx) + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("apiclient: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if header := c.authorization(ctx); header != "" {
			req.Header.Set("Authorization", header)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("apiclient: %s %s cancelado: %w", method, endpoint, ctx.Err())
		}
		return fmt.Errorf("apiclient: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("apiclient: leer respuesta: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode == http.StatusUnauthorized && auth {
		c.expireSession(ctx)
		return domain.ErrAuthExpired
	}
	if isHTML(resp.Header.Get("Content-Type"), raw) {
		return fmt.Errorf("%w: HTML recibido (HTTP %d) en %s", domain.ErrInvalidResponse, resp.StatusCode, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.HTTPError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidResponse, endpoint, err)
	}
	return nil
}

func (c *Client) authorization(ctx context.Context) string {
	token, ok, err := c.store.Get(ctx, repository.KeyToken)
	if err != nil || !ok || token == "" {
		return ""
	}
	tokenType, _, _ := c.store.Get(ctx, repository.KeyTokenType)
	return entity.AuthorizationHeader(tokenType, token)
}

// expireSession borra las llaves de sesión y notifica a los interesados (AuthUseCase).
func (c *Client) expireSession(ctx context.Context) {
	// La sesión se borra aunque el request original haya sido cancelado.
	if err := c.store.Delete(context.WithoutCancel(ctx), repository.SessionKeys...); err != nil {
		c.log.Error().Err(err).Msg("borrar sesión tras 401")
	}
	c.log.Warn().Msg("API respondió 401, sesión borrada")

	c.mu.RLock()
	listeners := append([]func(){}, c.onExpired...)
	c.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: serializar body: %w", err)
	}
	return bytes.NewReader(b), nil
}

func isHTML(contentType string, raw []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// errorMessage extrae "message" o "error" del cuerpo de error de la API.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// IsAuthExpired atajo para errors.Is(err, domain.ErrAuthExpired).
func IsAuthExpired(err error) bool { return errors.Is(err, domain.ErrAuthExpired) }
