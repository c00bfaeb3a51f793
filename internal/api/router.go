// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"splitledger/internal/api/handler"
	"splitledger/internal/api/middleware"
	"splitledger/internal/metrics"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Groups      *handler.GroupHandler
	Expenses    *handler.ExpenseHandler
	Balances    *handler.BalanceHandler
	Settlements *handler.SettlementHandler
}

// NewRouter sets up and returns a new HTTP router.
// A nil m disables the /metrics endpoint and request instrumentation.
func NewRouter(h Handlers, tokens middleware.TokenValidator, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(chimw.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))

			r.Get("/users/me", h.Users.Me)
			r.Get("/users", h.Users.List)

			r.Post("/groups", h.Groups.Create)
			r.Get("/groups", h.Groups.List)

			// GET takes a group id, DELETE an expense id; chi needs one name per segment.
			r.Post("/expenses", h.Expenses.Create)
			r.Get("/expenses/{id}", h.Expenses.ListByGroup)
			r.Delete("/expenses/{id}", h.Expenses.Delete)

			r.Get("/balances", h.Balances.Get)

			r.Post("/settle", h.Settlements.Settle)
			r.Get("/settlements", h.Settlements.List)
		})
	})

	return r
}
