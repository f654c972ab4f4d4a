package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountHandler "github.com/rbarros/pixwallet/internal/http/account"
	"github.com/rbarros/pixwallet/internal/http/middleware"
	"github.com/rbarros/pixwallet/internal/http/wallet"
)

func New(
	walletV1 *wallet.Handler,
	accountsV1 *accountHandler.Handler,
	jwtSecret []byte,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Use(middleware.Auth(jwtSecret))
			r.Use(chimiddleware.AllowContentType("application/json"))
			walletV1.Routes(r)
		})
	})

	return router
}
