package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bistro-api/internal/middleware"
	"bistro-api/internal/model"
	"bistro-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// List handles GET /carts?email= requests. The authenticated subject must be
// the cart owner.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email query parameter is required", h.logger)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized access", h.logger)
		return
	}

	items, err := h.service.ListForOwner(r.Context(), claims.Email, email)
	if err != nil {
		if errors.Is(err, model.ErrForbidden) {
			writeError(w, http.StatusForbidden, "forbidden access", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve cart items", h.logger)
		return
	}

	if items == nil {
		items = []model.EnrichedCartItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// Add handles POST /carts requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Add(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrMenuItemNotFound) {
			writeError(w, http.StatusNotFound, "menu item not found", h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Remove handles DELETE /carts/{id} requests. Removal is idempotent.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart item ID format", h.logger)
		return
	}

	deleted, err := h.service.Remove(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove cart item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
