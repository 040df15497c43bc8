package orders

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/currency"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/payment"
	"github.com/fabyoh/storefront/internal/pkg/httputil"
)

// Handler handles HTTP requests for the orders module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new orders handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterProtectedRoutes registers routes available to any authenticated user.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/create-payment-intent", h.CreatePaymentIntent)
	r.Post("/paypal/create-payment", h.CreateRedirectPayment)
	r.Post("/paypal/execute-payment", h.ExecuteRedirectPayment)
	r.Post("/payment", h.Checkout)
	r.Get("/orders", h.ListOwnOrders)
}

// RegisterAdminRoutes registers routes requiring the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/adminOrders", h.ListAllOrders)
	r.Patch("/adminOrders/{id}", h.UpdateStatus)
}

var serviceErrorMappings = []httputil.ErrorMapping{
	{Error: ErrOrderNotFound, Status: http.StatusNotFound},
	{Error: ErrInvalidStatus, Status: http.StatusBadRequest},
	{Error: ErrInvalidTransition, Status: http.StatusBadRequest},
	{Error: payment.ErrPaymentFailed, Status: http.StatusInternalServerError, Message: "payment failed"},
}

// PaymentIntentRequest represents a card charge intent body. Price is in
// major currency units; it is converted to cents for the provider.
type PaymentIntentRequest struct {
	Price    float64 `json:"price" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required"`
}

func (h *Handler) decodeAmount(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	var req PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return 0, "", false
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return 0, "", false
	}

	unit, err := currency.ParseISO(req.Currency)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid currency code")
		return 0, "", false
	}

	return int64(math.Round(req.Price * 100)), unit.String(), true
}

// CreatePaymentIntent handles POST /create-payment-intent.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	amountCents, code, ok := h.decodeAmount(w, r)
	if !ok {
		return
	}

	intent, err := h.service.CreateChargeIntent(r.Context(), amountCents, code)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{
		"clientSecret": intent.ClientSecret,
	})
}

// CreateRedirectPayment handles POST /paypal/create-payment.
func (h *Handler) CreateRedirectPayment(w http.ResponseWriter, r *http.Request) {
	amountCents, code, ok := h.decodeAmount(w, r)
	if !ok {
		return
	}

	order, err := h.service.CreateRedirectPayment(r.Context(), amountCents, code)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{
		"paymentId":   order.PaymentID,
		"approvalUrl": order.ApprovalURL,
	})
}

// ExecutePaymentRequest represents a redirect payment capture body.
type ExecutePaymentRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
	PayerID   string `json:"payerId" validate:"required"`
}

// ExecuteRedirectPayment handles POST /paypal/execute-payment.
func (h *Handler) ExecuteRedirectPayment(w http.ResponseWriter, r *http.Request) {
	var req ExecutePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	confirmation, err := h.service.ExecuteRedirectPayment(r.Context(), req.PaymentID, req.PayerID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, confirmation)
}

// CheckoutRequest represents a checkout body.
type CheckoutRequest struct {
	AmountCents int64    `json:"amount_cents" validate:"required,gt=0"`
	ItemRefs    []string `json:"item_refs" validate:"required,min=1,dive,uuid"`
}

// Checkout handles POST /payment.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	result, err := h.service.Checkout(r.Context(), identity.Email, CheckoutInput{
		AmountCents: req.AmountCents,
		ItemRefs:    req.ItemRefs,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, result)
}

// ListOwnOrders handles GET /orders.
func (h *Handler) ListOwnOrders(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.service.ListOwnOrders(r.Context(), identity.Email)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, orders)
}

// ListAllOrders handles GET /adminOrders.
func (h *Handler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAllOrders(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, orders)
}

// UpdateStatusRequest represents an order status change body.
type UpdateStatusRequest struct {
	NewStatus domain.OrderStatus `json:"newStatus" validate:"required"`
}

// UpdateStatus handles PATCH /adminOrders/{id}.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.NewStatus)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, order)
}
