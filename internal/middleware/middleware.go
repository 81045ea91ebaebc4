package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bistro-api/internal/auth"
	"bistro-api/internal/repository"

	"github.com/rs/zerolog"
)

type contextKey string

const claimsContextKey contextKey = "identityClaims"

// ClaimsFromContext returns the verified identity claims attached by
// Authenticate, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// ContextWithClaims returns a context carrying the given identity claims.
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Authenticate requires a valid Bearer token. On success the verified claims
// are attached to the request context; on any failure the chain halts with
// 401 and no further handler runs.
func Authenticate(tokens *auth.TokenManager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("missing authorization header")
				writeGuardError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
				writeGuardError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				writeGuardError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin requires that the authenticated subject holds the admin role.
// It must run after Authenticate; a request without claims, or whose subject
// is not an admin, halts with 403.
func RequireAdmin(users repository.UserRepository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logger.Error().Str("path", r.URL.Path).Msg("admin check reached without authenticated claims")
				writeGuardError(w, http.StatusForbidden, "forbidden access")
				return
			}

			user, err := users.GetByEmail(r.Context(), claims.Email)
			if err != nil {
				logger.Error().Err(err).Str("email", claims.Email).Msg("failed to load user for admin check")
				writeGuardError(w, http.StatusForbidden, "forbidden access")
				return
			}

			if !user.IsAdmin() {
				logger.Warn().
					Str("email", claims.Email).
					Str("path", r.URL.Path).
					Msg("non-admin denied access")
				writeGuardError(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORS adds CORS headers to the response.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error": "internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeGuardError writes the JSON error body used by the guard chain.
func writeGuardError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   true,
		"message": message,
	})
}
