package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dromeroc/beneficios/internal/http/catalog"
	"github.com/dromeroc/beneficios/internal/http/company"
	"github.com/dromeroc/beneficios/internal/http/expense"
	"github.com/dromeroc/beneficios/internal/http/export"
	"github.com/dromeroc/beneficios/internal/http/importcsv"
	"github.com/dromeroc/beneficios/internal/http/report"
	"github.com/dromeroc/beneficios/internal/http/treatment"
)

func New(
	companyV1 *company.Handler,
	catalogV1 *catalog.Handler,
	treatmentsV1 *treatment.Handler,
	expensesV1 *expense.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/config", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			companyV1.Routes(r)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			catalogV1.Routes(r)
		})

		r.Route("/treatments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			treatmentsV1.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})
	})

	return router
}
