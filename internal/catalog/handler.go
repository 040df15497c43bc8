package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fabyoh/storefront/internal/pkg/httputil"
)

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterPublicRoutes registers routes that require no authentication.
// The catalog is readable by anyone, including anonymous visitors.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
}

// RegisterAdminRoutes registers routes requiring the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/addproduct", h.CreateProduct)
	r.Put("/products/{id}", h.UpdateProduct)
	r.Delete("/products/{id}", h.DeleteProduct)
}

var serviceErrorMappings = []httputil.ErrorMapping{
	{Error: ErrProductNotFound, Status: http.StatusNotFound},
}

// ProductRequest represents a product create or update body.
type ProductRequest struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	PriceCents  int64          `json:"price_cents" validate:"required,gt=0"`
	ImageURL    string         `json:"image_url" validate:"omitempty,url"`
	Attrs       map[string]any `json:"attrs"`
}

// CreateProduct handles POST /addproduct.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), CreateProductInput(req))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, UpdateProductInput(req))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.Message(w, http.StatusOK, "product deleted")
}
