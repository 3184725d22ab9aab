/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address from X-Forwarded-For / X-Real-IP
  3. Logger:     Structured request logging (zap)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/depreciation/*   Stateless schedule computation
  /api/assets/*         Asset register and valuations
  /healthz              Liveness and storage check

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/warp/asset-engine/logging"
)

// NewRouter creates a new router with all routes configured.
// allowedOrigins lists the browser origins accepted by CORS.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/depreciation", func(r chi.Router) {
			r.Post("/calculate", h.Calculate)
			r.Get("/methods", h.ListMethods)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", h.ListAssets)
			r.Post("/", h.CreateAsset)
			r.Get("/summary", h.GetSummary)
			r.Get("/current-values", h.ListCurrentValues)
			r.Get("/fully-depreciated", h.ListFullyDepreciated)
			r.Get("/nearing-end-of-life", h.ListNearingEndOfLife)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetAsset)
				r.Patch("/", h.UpdateAsset)
				r.Delete("/", h.DeleteAsset)
				r.Get("/current-value", h.GetCurrentValue)
				r.Get("/projected-value", h.GetProjectedValue)
				r.Get("/schedule", h.GetAssetSchedule)
			})
		})
	})

	return r
}
