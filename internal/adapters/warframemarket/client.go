package warframemarket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

const (
	defaultBaseURL  = "https://api.warframe.market/v1"
	defaultTimeout  = 10 * time.Second
	defaultPlatform = "pc"
	defaultLanguage = "en"

	// cuánto del body de un error HTTP se incluye en el mensaje
	maxErrorBody = 512
)

// Client es el HTTP client de warframe.market.
// Hace exactamente una request por llamada: sin retries ni rate limiting.
// Es seguro para uso concurrente.
type Client struct {
	http     *http.Client
	baseURL  string
	platform string
	language string
}

// Option configura un Client.
type Option func(*Client)

// WithTimeout cambia el timeout del http.Client por defecto.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient reemplaza el http.Client (útil en tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithPlatform fija la plataforma (pc, ps4, xbox, switch) de la que se leen órdenes.
func WithPlatform(platform string) Option {
	return func(c *Client) {
		if platform != "" {
			c.platform = platform
		}
	}
}

// WithLanguage fija el idioma de los nombres de items.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// NewClient crea un Client contra baseURL.
// Si baseURL está vacío usa la API v1 de producción.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		http:     &http.Client{Timeout: defaultTimeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		platform: defaultPlatform,
		language: defaultLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetchPayload hace un GET a path y desenvuelve el campo "payload" de la respuesta.
// Todo fallo se devuelve como *domain.FetchError.
func fetchPayload[P payload](ctx context.Context, c *Client, op, slug, path string) (P, error) {
	var zero P

	fail := func(status int, err error) (P, error) {
		return zero, &domain.FetchError{Op: op, Slug: slug, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fail(0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Platform", c.platform)
	req.Header.Set("Language", c.language)

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fail(resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	var env apiResponse[P]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	if env.Payload == nil {
		return fail(resp.StatusCode, errors.New("decode response: missing payload"))
	}
	return *env.Payload, nil
}
