package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Lixing-Zhang/crud-admin/internal/form"
	"github.com/Lixing-Zhang/crud-admin/internal/models"
	"github.com/Lixing-Zhang/crud-admin/internal/price"
	"github.com/Lixing-Zhang/crud-admin/internal/repository"
	"github.com/Lixing-Zhang/crud-admin/internal/service"
	"github.com/Lixing-Zhang/crud-admin/internal/theme"
	"github.com/go-chi/chi/v5"
)

const genericFailure = "Something went wrong while talking to the products API. Please try again."

var notices = map[string]string{
	string(service.ActionCreated): "Product added",
	string(service.ActionUpdated): "Product updated",
	string(service.ActionDeleted): "Product deleted",
}

// ProductHandler serves the admin pages: the card list, the add/edit form
// and the delete confirmation.
type ProductHandler struct {
	catalog   *service.CatalogService
	formatter *price.Formatter
	themes    *theme.Store
	tmpl      *template.Template
	logger    *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	catalog *service.CatalogService,
	formatter *price.Formatter,
	themes *theme.Store,
	tmpl *template.Template,
	logger *slog.Logger,
) *ProductHandler {
	return &ProductHandler{
		catalog:   catalog,
		formatter: formatter,
		themes:    themes,
		tmpl:      tmpl,
		logger:    logger,
	}
}

// productCard is one rendered card
type productCard struct {
	ID       int64
	Title    string
	Category string
	Image    string
	Price    string
}

type pageData struct {
	Theme    theme.Theme
	Products []productCard
	Form     *form.ProductForm
	Confirm  *productCard
	Notice   string
	Error    string
}

// ListProducts handles GET /
// Fetches the full collection and renders it.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Refresh(r.Context())
	if err != nil {
		h.failure(w, r, err)
		return
	}

	data := h.page(r, products)
	data.Notice = notices[r.URL.Query().Get("notice")]
	h.render(w, http.StatusOK, data)
}

// NewProduct handles GET /products/new
func (h *ProductHandler) NewProduct(w http.ResponseWriter, r *http.Request) {
	products, err := h.loaded(r.Context())
	if err != nil {
		h.failure(w, r, err)
		return
	}

	data := h.page(r, products)
	data.Form = form.Blank()
	h.render(w, http.StatusOK, data)
}

// EditProduct handles GET /products/{productId}/edit
// The form is pre-filled from the snapshot; unknown ids go back to the list.
func (h *ProductHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	products, err := h.loaded(r.Context())
	if err != nil {
		h.failure(w, r, err)
		return
	}

	p, ok := h.findParam(r)
	if !ok {
		seeOther(w, r, "/")
		return
	}

	data := h.page(r, products)
	data.Form = form.FromProduct(*p, h.formatter)
	h.render(w, http.StatusOK, data)
}

// SaveProduct handles POST /products
// Creates when the hidden id is empty, updates otherwise.
func (h *ProductHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	f, err := form.Decode(r)
	if err != nil {
		h.logger.Warn("failed to decode product form", "error", err)
		h.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}

	if err := f.Validate(); err != nil {
		h.logger.Info("product form rejected", "mode", f.Mode(), "fields", f.Errors)
		h.invalid(w, r, f)
		return
	}

	in, err := f.Input()
	if err != nil {
		f.Errors["price"] = "is not a valid amount"
		h.invalid(w, r, f)
		return
	}

	action, err := h.catalog.Save(r.Context(), f.ProductID(), in)
	if err != nil {
		h.failure(w, r, err)
		return
	}

	seeOther(w, r, "/?notice="+url.QueryEscape(string(action)))
}

// ConfirmDelete handles GET /products/{productId}/delete
func (h *ProductHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	products, err := h.loaded(r.Context())
	if err != nil {
		h.failure(w, r, err)
		return
	}

	p, ok := h.findParam(r)
	if !ok {
		seeOther(w, r, "/")
		return
	}

	card := h.card(*p)
	data := h.page(r, products)
	data.Confirm = &card
	h.render(w, http.StatusOK, data)
}

// DeleteProduct handles POST /products/{productId}/delete
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		h.logger.Warn("invalid product ID format", "productId", chi.URLParam(r, "productId"))
		h.renderError(w, r, http.StatusBadRequest, "Invalid product ID.")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.failure(w, r, err)
		return
	}

	seeOther(w, r, "/?notice="+string(service.ActionDeleted))
}

// ToggleTheme handles POST /theme
func (h *ProductHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	next := h.themes.Toggle(w, r)
	h.logger.Debug("theme toggled", "theme", next)
	seeOther(w, r, backTo(r))
}

// loaded returns the snapshot, fetching it first if nothing was fetched yet
func (h *ProductHandler) loaded(ctx context.Context) ([]models.Product, error) {
	if _, fetchedAt := h.catalog.Snapshot(); !fetchedAt.IsZero() {
		return h.catalog.Products(), nil
	}
	return h.catalog.Refresh(ctx)
}

func (h *ProductHandler) findParam(r *http.Request) (*models.Product, bool) {
	id, ok := productIDParam(r)
	if !ok {
		return nil, false
	}
	p, err := h.catalog.Find(id)
	if err != nil {
		h.logger.Info("product not found", "productId", id)
		return nil, false
	}
	return p, true
}

func (h *ProductHandler) invalid(w http.ResponseWriter, r *http.Request, f *form.ProductForm) {
	data := h.page(r, h.catalog.Products())
	data.Form = f
	h.render(w, http.StatusUnprocessableEntity, data)
}

// failure maps a catalog error to a page. Network and API failures are not
// broken down further: the user sees one generic message.
func (h *ProductHandler) failure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrProductNotFound) {
		h.logger.Info("product not found upstream", "path", r.URL.Path, "error", err)
		h.renderError(w, r, http.StatusNotFound, "Product not found.")
		return
	}

	h.logger.Error("products api call failed", "path", r.URL.Path, "error", err)
	h.renderError(w, r, http.StatusBadGateway, genericFailure)
}

func (h *ProductHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderHTML(w, h.tmpl, "error", status, pageData{
		Theme: h.themes.FromRequest(r),
		Error: message,
	}, h.logger)
}

func (h *ProductHandler) render(w http.ResponseWriter, status int, data pageData) {
	renderHTML(w, h.tmpl, "products", status, data, h.logger)
}

func (h *ProductHandler) page(r *http.Request, products []models.Product) pageData {
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, h.card(p))
	}
	return pageData{
		Theme:    h.themes.FromRequest(r),
		Products: cards,
	}
}

func (h *ProductHandler) card(p models.Product) productCard {
	return productCard{
		ID:       p.ID,
		Title:    p.Title,
		Category: p.Category,
		Image:    p.Image,
		Price:    h.formatter.FormatAmount(p.Price),
	}
}

// backTo returns the local path of the referring page, or / when there is
// none or it points elsewhere.
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
