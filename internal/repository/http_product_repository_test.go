package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Lixing-Zhang/crud-admin/internal/models"
	"github.com/Lixing-Zhang/crud-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves the products REST API from an in-memory repository and
// records the requests it saw.
type fakeAPI struct {
	repo *InMemoryProductRepository

	mu       sync.Mutex
	requests []*http.Request
}

func newFakeAPI(t *testing.T, seed ...models.Product) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{repo: NewInMemoryProductRepository(seed...)}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			api.mu.Lock()
			api.requests = append(api.requests, req.Clone(context.Background()))
			api.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		products, _ := api.repo.GetAll(req.Context())
		_ = json.NewEncoder(w).Encode(products)
	})
	r.Post("/products", func(w http.ResponseWriter, req *http.Request) {
		var in models.ProductInput
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		p, _ := api.repo.Create(req.Context(), in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	})
	r.Put("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
		var in models.ProductInput
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		p, err := api.repo.Update(req.Context(), id, in)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	})
	r.Delete("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
		if err := api.repo.Delete(req.Context(), id); err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) last() *http.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[len(a.requests)-1]
}

func newTestRepo(srv *httptest.Server) *HTTPProductRepository {
	return NewHTTPProductRepository(srv.URL+"/products/", 5*time.Second, logger.Nop())
}

func TestHTTPProductRepository_GetAll(t *testing.T) {
	_, srv := newFakeAPI(t, seedProducts()...)
	repo := newTestRepo(srv)

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "T-Shirt", products[0].Title)
	assert.Equal(t, 109.95, products[1].Price)
	assert.JSONEq(t, `{"rate":3.9,"count":120}`, products[1].Rating.String())
}

func TestHTTPProductRepository_GetAll_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	repo := NewHTTPProductRepository(srv.URL, time.Second, logger.Nop())
	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestHTTPProductRepository_Create(t *testing.T) {
	api, srv := newFakeAPI(t)
	repo := newTestRepo(srv)

	created, err := repo.Create(context.Background(), models.ProductInput{
		Title:  "Mug",
		Price:  1500000,
		Rating: models.EmptyRating,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.ID)

	req := api.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/products", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.NotEmpty(t, req.Header.Get(RequestIDHeader))
}

func TestHTTPProductRepository_UpdateAndDelete(t *testing.T) {
	api, srv := newFakeAPI(t, seedProducts()...)
	repo := newTestRepo(srv)
	ctx := context.Background()

	_, err := repo.Update(ctx, 1, models.ProductInput{Title: "Shirt", Price: 30})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, api.last().Method)
	assert.Equal(t, "/products/1", api.last().URL.Path)

	p, err := api.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", p.Title)

	require.NoError(t, repo.Delete(ctx, 2))
	assert.Equal(t, http.MethodDelete, api.last().Method)
	assert.Equal(t, "/products/2", api.last().URL.Path)

	err = repo.Delete(ctx, 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestHTTPProductRepository_PropagatesRequestID(t *testing.T) {
	api, srv := newFakeAPI(t)
	repo := newTestRepo(srv)

	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "req-42")
	_, err := repo.GetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, "req-42", api.last().Header.Get(RequestIDHeader))
}

func TestHTTPProductRepository_EmptyWriteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := NewHTTPProductRepository(srv.URL, time.Second, logger.Nop())
	p, err := repo.Update(context.Background(), 7, models.ProductInput{Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestHTTPProductRepository_UpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := NewHTTPProductRepository(srv.URL, time.Second, logger.Nop())

	_, err := repo.GetAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.Contains(t, err.Error(), "500")

	_, err = repo.Create(context.Background(), models.ProductInput{})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestHTTPProductRepository_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo := NewHTTPProductRepository(url, time.Second, logger.Nop())
	_, err := repo.GetAll(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}
