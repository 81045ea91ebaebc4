package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"bistro-api/internal/middleware"
	"bistro-api/internal/model"
	"bistro-api/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.CheckoutService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateIntent handles POST /create-payment-intent requests. Price arrives
// in major units and is converted to cents for the gateway.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "price must be positive", h.logger)
		return
	}

	amountCents := int64(math.Round(req.Price * 100))

	intent, err := h.service.CreateIntent(r.Context(), amountCents)
	if err != nil {
		if errors.Is(err, model.ErrPaymentGateway) {
			writeError(w, http.StatusBadGateway, "payment gateway error", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create payment intent", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// Checkout handles POST /payments requests: it settles the referenced cart
// items for the authenticated subject.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized access", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Checkout(r.Context(), claims.Email, &req)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to checkout"

		switch {
		case errors.Is(err, model.ErrEmptySelection):
			status = http.StatusBadRequest
			message = "checkout must reference at least one cart item"
		case errors.Is(err, model.ErrCartItemNotFound):
			status = http.StatusBadRequest
			message = "one or more cart items not found"
		case errors.Is(err, model.ErrAmountMismatch):
			status = http.StatusBadRequest
			message = "amount does not match cart total"
		case errors.Is(err, model.ErrForbidden):
			status = http.StatusForbidden
			message = "forbidden access"
		case errors.Is(err, model.ErrPaymentGateway):
			status = http.StatusBadGateway
			message = "payment gateway error"
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
