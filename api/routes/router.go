package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	listingcontrollers "github.com/angelmondragon/storefront/api/controllers/listings"
	sessioncontrollers "github.com/angelmondragon/storefront/api/controllers/sessions"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/listings"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/redis"
)

// Deps bundles everything the router wires. DB and Redis are optional; when
// Redis is nil idempotency and rate limiting are disabled.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Listings    listings.Service
	Checkout    checkout.Service
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.SessionContext(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	var (
		idempotencyStore redis.IdempotencyStore
		limiterStore     middleware.RateLimitStore
		readyDeps        []controllers.Dependency
	)
	if deps.DB != nil {
		readyDeps = append(readyDeps, controllers.Dependency{Name: "db", Pinger: deps.DB})
	}
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
		limiterStore = deps.Redis
		readyDeps = append(readyDeps, controllers.Dependency{Name: "redis", Pinger: deps.Redis})
	}

	sessionPolicy := middleware.NewRateLimitPolicy(
		"sessions",
		cfg.RateLimit.SessionWindow,
		cfg.RateLimit.SessionIPLimit,
	)
	limiter := middleware.RateLimit(sessionPolicy, limiterStore, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps...))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Get("/listings", listingcontrollers.ListingsBrowse(deps.Checkout, logg))
		r.Get("/cuisines", listingcontrollers.CuisinesList(deps.Listings))

		r.With(limiter).Post("/sessions", sessioncontrollers.SessionCreate(deps.Checkout, logg))
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/cart", sessioncontrollers.CartFetch(deps.Checkout, logg))
			r.Post("/cart/lines", sessioncontrollers.CartAddLine(deps.Checkout, logg))
			r.Put("/cart/lines/{lineID}", sessioncontrollers.CartSetQuantity(deps.Checkout, logg))
			r.Delete("/cart/lines/{lineID}", sessioncontrollers.CartRemoveLine(deps.Checkout, logg))
			r.Post("/cart/lines/{lineID}/increment", sessioncontrollers.CartIncrement(deps.Checkout, logg))
			r.Post("/promo", sessioncontrollers.PromoApply(deps.Checkout, logg))
			r.Delete("/promo", sessioncontrollers.PromoClear(deps.Checkout, logg))
			r.Delete("/browse", sessioncontrollers.BrowseReset(deps.Checkout, logg))
		})
	})

	return r
}
