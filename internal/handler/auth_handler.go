package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"bistro-api/internal/auth"

	"github.com/rs/zerolog"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	tokens *auth.TokenManager
	logger zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(tokens *auth.TokenManager, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

// tokenRequest is the POST /jwt payload.
type tokenRequest struct {
	Email string `json:"email"`
}

// tokenResponse carries the issued token.
type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken handles POST /jwt requests.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required", h.logger)
		return
	}

	token, err := h.tokens.Issue(email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
