package shopping

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fabyoh/storefront/internal/pkg/httputil"
)

// Handler handles HTTP requests for the shopping module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new shopping handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterProtectedRoutes registers cart and wishlist routes. All of
// them operate on the authenticated owner's rows only.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/cart", h.AddCartItem)
	r.Get("/carts", h.ListCartItems)
	r.Patch("/cart/{id}", h.UpdateCartItemQuantity)
	r.Delete("/carts/{id}", h.RemoveCartItem)

	r.Post("/wishlist", h.AddWishlistItem)
	r.Get("/wishlists", h.ListWishlistItems)
	r.Delete("/wishlist/{id}", h.RemoveWishlistItem)
}

var serviceErrorMappings = []httputil.ErrorMapping{
	{Error: ErrCartItemNotFound, Status: http.StatusNotFound},
	{Error: ErrWishlistItemNotFound, Status: http.StatusNotFound},
}

// AddCartItemRequest represents a cart add body.
type AddCartItemRequest struct {
	ProductRef string         `json:"product_ref" validate:"required,uuid"`
	Quantity   int            `json:"quantity" validate:"required,gt=0"`
	Attrs      map[string]any `json:"attrs"`
}

// AddCartItem handles POST /cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	item, err := h.service.AddCartItem(r.Context(), identity.Email, AddCartItemInput{
		ProductRef: req.ProductRef,
		Quantity:   req.Quantity,
		Attrs:      req.Attrs,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, item)
}

// ListCartItems handles GET /carts.
func (h *Handler) ListCartItems(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.service.ListCartItems(r.Context(), identity.Email)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, items)
}

// UpdateCartItemRequest represents a quantity change body.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartItemQuantity handles PATCH /cart/{id}.
func (h *Handler) UpdateCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	item, err := h.service.UpdateCartItemQuantity(r.Context(), id, identity.Email, req.Quantity)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, item)
}

// RemoveCartItem handles DELETE /carts/{id}.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	if err := h.service.RemoveCartItem(r.Context(), id, identity.Email); err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.Message(w, http.StatusOK, "cart item removed")
}

// AddWishlistItemRequest represents a wishlist add body.
type AddWishlistItemRequest struct {
	ProductRef string         `json:"product_ref" validate:"required,uuid"`
	Attrs      map[string]any `json:"attrs"`
}

// AddWishlistItem handles POST /wishlist.
func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	item, err := h.service.AddWishlistItem(r.Context(), identity.Email, AddWishlistItemInput{
		ProductRef: req.ProductRef,
		Attrs:      req.Attrs,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, item)
}

// ListWishlistItems handles GET /wishlists.
func (h *Handler) ListWishlistItems(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.service.ListWishlistItems(r.Context(), identity.Email)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, items)
}

// RemoveWishlistItem handles DELETE /wishlist/{id}.
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid wishlist item id")
		return
	}

	if err := h.service.RemoveWishlistItem(r.Context(), id, identity.Email); err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.Message(w, http.StatusOK, "wishlist item removed")
}
