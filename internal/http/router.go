package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nidofinanciero/nido/internal/http/auth"
	"github.com/nidofinanciero/nido/internal/http/budget"
	"github.com/nidofinanciero/nido/internal/http/household"
	"github.com/nidofinanciero/nido/internal/http/importcsv"
	"github.com/nidofinanciero/nido/internal/http/transaction"
	"github.com/nidofinanciero/nido/internal/http/transfer"
	"github.com/nidofinanciero/nido/internal/http/user"
)

type Config struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func New(
	cfg Config,
	usersV1 *user.Handler,
	transfersV1 *transfer.Handler,
	transactionsV1 *transaction.Handler,
	householdsV1 *household.Handler,
	budgetsV1 *budget.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWTSecret))

		r.Route("/users", usersV1.Routes)

		r.Route("/transfers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transfersV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/households", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			householdsV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/savings-goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.GoalRoutes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
