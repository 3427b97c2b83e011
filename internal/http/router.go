package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dealmatch/internal/handlers"
	"dealmatch/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	MatchService    service.MatchService
	InvestorService service.InvestorService
	// Health is optional; /api/health is not mounted without it.
	Health http.Handler
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	matchHandler := handlers.NewMatchHandler(deps.MatchService)
	investorHandler := handlers.NewInvestorHandler(deps.InvestorService)

	r.Route("/api", func(r chi.Router) {
		if deps.Health != nil {
			r.Method(http.MethodGet, "/health", deps.Health)
		}
		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/match", matchHandler)
			r.Route("/investors", func(r chi.Router) {
				r.Post("/qa", investorHandler.Ask)
				r.Post("/analyze", investorHandler.Analyze)
				r.Get("/{name}", investorHandler.Get)
			})
		})
	})

	return r
}
