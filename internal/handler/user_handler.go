package handler

import (
	"encoding/json"
	"net/http"

	"bistro-api/internal/middleware"
	"bistro-api/internal/model"
	"bistro-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /users requests. Registration is idempotent: an
// already-registered email is acknowledged, not treated as an error.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, created, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if req.Email == "" || err.Error() == "email is required" {
			writeError(w, http.StatusBadRequest, "email is required", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to register user", h.logger)
		return
	}

	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"message": "User Already Exists"})
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// GetAll handles GET /users requests. Admin only.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve users", h.logger)
		return
	}

	if users == nil {
		users = []model.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

// CheckAdmin handles GET /users/admin/{email} requests. A caller may only
// query its own admin status: when the token subject does not match the
// queried email the answer is a plain "not admin", without looking up the
// other identity's role.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.Email != email {
		writeJSON(w, http.StatusOK, map[string]bool{"admin": false})
		return
	}

	isAdmin, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check admin status", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"admin": isAdmin})
}

// PromoteToAdmin handles PATCH /users/admin/{id} requests. Admin only.
func (h *UserHandler) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID format", h.logger)
		return
	}

	updated, err := h.service.PromoteToAdmin(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to promote user", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updatedCount": updated})
}
