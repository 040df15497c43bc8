package identity

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/pkg/httputil"
)

// Handler handles HTTP requests for the identity module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new identity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterPublicRoutes registers routes that require no authentication.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

// RegisterProtectedRoutes registers routes available to any authenticated user.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/userinfo", h.UserInfo)
}

// RegisterAdminRoutes registers routes requiring the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.Delete("/user/{id}", h.DeleteUser)
}

// RegisterSuperAdminRoutes registers routes requiring the super-admin role.
func (h *Handler) RegisterSuperAdminRoutes(r chi.Router) {
	r.Patch("/update-role/{id}", h.UpdateRole)
}

var serviceErrorMappings = []httputil.ErrorMapping{
	{Error: ErrUserNotFound, Status: http.StatusNotFound},
	{Error: ErrEmailExists, Status: http.StatusConflict},
	{Error: ErrInvalidCredentials, Status: http.StatusUnauthorized},
	{Error: ErrInvalidRole, Status: http.StatusBadRequest},
}

// RegisterRequest represents registration request body.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), RegisterInput(req))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, user)
}

// LoginRequest represents login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents login response.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	_, token, err := h.service.Login(r.Context(), LoginInput(req))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// UserInfo handles GET /userinfo. The response comes from the store, not
// the token, so it reflects role changes made after the token was issued.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, user)
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, users)
}

// UpdateRoleRequest represents a role change request body.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role" validate:"required"`
}

// UpdateRole handles PATCH /update-role/{id}.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, err := h.service.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /user/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		httputil.HandleError(r.Context(), w, err, serviceErrorMappings)
		return
	}

	httputil.Message(w, http.StatusOK, "user deleted")
}
