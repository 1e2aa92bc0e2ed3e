// Package backendapi lee ventas, compras, movimientos y stock desde la API REST del backend
// de inventario. Las respuestas paginadas tienen la forma {"data": [...], "meta": {...}} y los
// registros se normalizan con pkg/normalize porque el backend no siempre anida igual.
package backendapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

var (
	_ repository.SalesRepository         = (*Client)(nil)
	_ repository.PurchaseRepository      = (*Client)(nil)
	_ repository.StockMovementRepository = (*Client)(nil)
	_ repository.ProductRepository       = (*Client)(nil)
)

// Config parámetros de conexión al backend.
type Config struct {
	BaseURL           string
	Token             string        // Bearer; vacío = sin cabecera Authorization
	Timeout           time.Duration // por petición
	RequestsPerSecond float64       // 0 = sin límite
}

// StatusError respuesta no 2xx del backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backendapi: status %d: %s", e.StatusCode, e.Body)
}

// Client cliente HTTP del backend; implementa todos los puertos de lectura.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient construye el cliente.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		log:        log,
	}
}

// pageEnvelope respuesta paginada; los números de data quedan como json.Number.
type pageEnvelope struct {
	Data []map[string]any `json:"data"`
	Meta paginate.Meta    `json:"meta"`
}

// getPage pide una página de un listado por producto.
func (c *Client) getPage(ctx context.Context, resource, productID string, page, perPage int) (*pageEnvelope, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var env pageEnvelope
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(productID)+"/"+resource, q, &env); err != nil {
		return nil, err
	}
	// Algunos listados no informan meta; se asume página única.
	if env.Meta.LastPage == 0 && env.Meta.CurrentPage == 0 {
		env.Meta = paginate.Meta{CurrentPage: page, PerPage: perPage, LastPage: page, Total: len(env.Data)}
	}
	return &env, nil
}

// getJSON ejecuta un GET respetando el limitador y decodifica el cuerpo en out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("backendapi: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backendapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("path", path).Str("query", query.Encode()).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("backend GET")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("backendapi: decodificar %s: %w", path, err)
	}
	return nil
}
