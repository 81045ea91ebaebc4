package router

import (
	"net/http"

	"bistro-api/internal/auth"
	"bistro-api/internal/handler"
	"bistro-api/internal/middleware"
	"bistro-api/internal/repository"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Menu    *handler.MenuHandler
	Review  *handler.ReviewHandler
	Cart    *handler.CartHandler
	Payment *handler.PaymentHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// Protected routes are wrapped in the guard chain: authentication first,
// then the role elevation check for admin-only operations.
func New(h Handlers, tokens *auth.TokenManager, users repository.UserRepository, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Authenticate(tokens, logger)
	elevated := middleware.RequireAdmin(users, logger)

	admin := func(next http.HandlerFunc) http.Handler {
		return authed(elevated(next))
	}
	protected := func(next http.HandlerFunc) http.Handler {
		return authed(next)
	}

	// Health and liveness endpoints (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "Server is running"}`))
	})

	// Token issuance
	mux.HandleFunc("POST /jwt", h.Auth.IssueToken)

	// User routes
	mux.Handle("GET /users", admin(h.User.GetAll))
	mux.Handle("GET /users/admin/{email}", protected(h.User.CheckAdmin))
	mux.HandleFunc("POST /users", h.User.Register)
	mux.Handle("PATCH /users/admin/{id}", admin(h.User.PromoteToAdmin))

	// Menu routes
	mux.HandleFunc("GET /menu", h.Menu.GetAll)
	mux.HandleFunc("GET /menu/{id}", h.Menu.GetByID)
	mux.Handle("POST /menu", admin(h.Menu.Create))
	mux.Handle("PATCH /menu/{id}", admin(h.Menu.Update))
	mux.Handle("DELETE /menu/{id}", admin(h.Menu.Delete))

	// Review routes
	mux.HandleFunc("GET /reviews", h.Review.GetAll)

	// Cart routes
	mux.Handle("GET /carts", protected(h.Cart.List))
	mux.HandleFunc("POST /carts", h.Cart.Add)
	mux.HandleFunc("DELETE /carts/{id}", h.Cart.Remove)

	// Payment routes
	mux.Handle("POST /create-payment-intent", protected(h.Payment.CreateIntent))
	mux.Handle("POST /payments", protected(h.Payment.Checkout))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
