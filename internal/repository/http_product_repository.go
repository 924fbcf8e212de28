package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Lixing-Zhang/crud-admin/internal/models"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the admin request id to the products API
const RequestIDHeader = "X-Request-ID"

// HTTPProductRepository talks to the products REST API.
//
//	GET    {baseURL}
//	POST   {baseURL}
//	PUT    {baseURL}/{id}
//	DELETE {baseURL}/{id}
type HTTPProductRepository struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPProductRepository creates a client for the collection at baseURL,
// e.g. http://localhost:6400/products.
func NewHTTPProductRepository(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPProductRepository {
	return &HTTPProductRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetAll fetches the full product collection
func (r *HTTPProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	resp, err := r.do(ctx, http.MethodGet, r.baseURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

// Create posts a new product; the API assigns its id
func (r *HTTPProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	return r.send(ctx, http.MethodPost, r.baseURL, in)
}

// Update replaces the product with the given id
func (r *HTTPProductRepository) Update(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	return r.send(ctx, http.MethodPut, r.itemURL(id), in)
}

// Delete removes the product with the given id
func (r *HTTPProductRepository) Delete(ctx context.Context, id int64) error {
	resp, err := r.do(ctx, http.MethodDelete, r.itemURL(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (r *HTTPProductRepository) itemURL(id int64) string {
	return r.baseURL + "/" + strconv.FormatInt(id, 10)
}

// send writes in as JSON and decodes the returned product when the API
// sends one back. An empty body is not an error.
func (r *HTTPProductRepository) send(ctx context.Context, method, url string, in models.ProductInput) (*models.Product, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	resp, err := r.do(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		r.logger.Debug("ignoring undecodable product response", "method", method, "url", url, "error", err)
		return nil, nil
	}
	return &product, nil
}

func (r *HTTPProductRepository) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, requestID(ctx))

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call products api: %w", err)
	}

	r.logger.Debug("products api call",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s %s returned status %d",
			ErrUpstream, resp.Request.Method, resp.Request.URL, resp.StatusCode)
	}
	return nil
}

func requestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
