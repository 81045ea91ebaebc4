package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bistro-api/internal/model"
	"bistro-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// GetAll handles GET /menu requests with an optional category filter.
func (h *MenuHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	items, err := h.service.GetAll(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve menu items", h.logger)
		return
	}

	if items == nil {
		items = []model.MenuItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /menu/{id} requests.
func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item ID format", h.logger)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrMenuItemNotFound) {
			writeError(w, http.StatusNotFound, "menu item not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve menu item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /menu requests. Admin only.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /menu/{id} requests. Admin only.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item ID format", h.logger)
		return
	}

	var upd model.MenuItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	updated, err := h.service.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update menu item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updatedCount": updated})
}

// Delete handles DELETE /menu/{id} requests. Admin only.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item ID format", h.logger)
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete menu item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// GetAll handles GET /reviews requests.
func (h *ReviewHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve reviews", h.logger)
		return
	}

	if reviews == nil {
		reviews = []model.Review{}
	}

	writeJSON(w, http.StatusOK, reviews)
}
