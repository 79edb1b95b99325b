package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tradehub/marketplace-backend/api/controllers"
	"github.com/tradehub/marketplace-backend/api/middleware"
	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/config"
	"github.com/tradehub/marketplace-backend/pkg/logger"
)

// NewRouter mounts health, metrics and the authenticated pricing API. A nil
// registry leaves /metrics unmounted.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pricingService pricing.Service,
	registry *prometheus.Registry,
	readiness ...controllers.ReadinessCheck,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness...))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	r.Route("/api/v1/price-calculation", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Post("/calculate", controllers.CalculatePrice(pricingService, logg))
		r.Post("/calculate-bulk", controllers.CalculateBulkPrice(pricingService, logg))
		r.Get("/product/{productId}/info", controllers.ProductPriceInfo(pricingService, logg))
	})

	return r
}
