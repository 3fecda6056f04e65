package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"welfare/internal/http/handlers"
	"welfare/internal/middleware"
)

// NewRouter builds the route tree. Everything under /v1 except auth and
// health requires a bearer token; the admin subtree additionally checks the
// administrator flag inside the service layer.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(app.JWTSecret))

		r.Get("/v1/me", app.Me)
		r.Get("/v1/dashboard", app.Dashboard)

		r.Route("/v1/contributions", func(r chi.Router) {
			r.Post("/", app.ContributionsCreate)
			r.Get("/", app.ContributionsList)
		})

		r.Route("/v1/withdrawals", func(r chi.Router) {
			r.Post("/", app.WithdrawalsCreate)
			r.Get("/", app.WithdrawalsList)
		})

		r.Route("/v1/admin", func(r chi.Router) {
			r.Get("/summary", app.AdminSummary)
			r.Get("/users", app.AdminUsersList)
			r.Patch("/users/{id}", app.AdminUserUpdate)
			r.Get("/withdrawals", app.AdminWithdrawalsList)
			r.Post("/withdrawals/{id}/approve", app.AdminWithdrawalApprove)
			r.Post("/withdrawals/{id}/reject", app.AdminWithdrawalReject)
		})
	})

	return r
}
