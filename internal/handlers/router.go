package handlers

import (
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/crud-admin/internal/middleware"
	"github.com/Lixing-Zhang/crud-admin/internal/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps collects what NewRouter wires together
type RouterDeps struct {
	Products    *ProductHandler
	Prices      *PriceHandler
	Health      *HealthHandler
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter builds the admin router
func NewRouter(d RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", d.Health.ServeHTTP)
	r.Handle("/static/*", web.Static())

	// Admin pages
	r.Get("/", d.Products.ListProducts)
	r.Post("/theme", d.Products.ToggleTheme)
	r.Route("/products", func(r chi.Router) {
		r.Post("/", d.Products.SaveProduct)
		r.Get("/new", d.Products.NewProduct)
		r.Get("/{productId}/edit", d.Products.EditProduct)
		r.Get("/{productId}/delete", d.Products.ConfirmDelete)
		r.Post("/{productId}/delete", d.Products.DeleteProduct)
	})

	// JSON endpoints used by the page scripts
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Get("/price/mask", d.Prices.Mask)
	})

	return r
}
