package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/excavacionesmoreno/quote-backend/api/controllers"
	cartcontrollers "github.com/excavacionesmoreno/quote-backend/api/controllers/cart"
	catalogcontrollers "github.com/excavacionesmoreno/quote-backend/api/controllers/catalog"
	"github.com/excavacionesmoreno/quote-backend/api/middleware"
	"github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/internal/quote"
	"github.com/excavacionesmoreno/quote-backend/internal/sessions"
	"github.com/excavacionesmoreno/quote-backend/pkg/config"
	"github.com/excavacionesmoreno/quote-backend/pkg/db"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
	"github.com/excavacionesmoreno/quote-backend/pkg/metrics"
	"github.com/excavacionesmoreno/quote-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	catalogReader catalogcontrollers.Reader,
	cartService cart.Service,
	formatter *quote.Formatter,
	registry *sessions.Registry,
	quoteMetrics *metrics.QuoteMetrics,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
	)

	var limiter middleware.RateLimiterStore
	deps := []controllers.Dependency{}
	if dbP != nil {
		deps = append(deps, controllers.Dependency{Name: "db", Pinger: dbP})
	}
	if redisClient != nil {
		limiter = redisClient
		deps = append(deps, controllers.Dependency{Name: "redis", Pinger: redisClient})
	}
	vat := quote.VAT{Rate: cfg.Quote.VATRate}
	handoffPolicy := middleware.NewRateLimitPolicy("handoff", cfg.RateLimit.HandoffWindow, cfg.RateLimit.HandoffLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, deps...))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", catalogcontrollers.ListCategories(catalogReader, logg))
			r.Get("/products", catalogcontrollers.ListProducts(catalogReader, logg))
			r.Get("/products/{productId}", catalogcontrollers.GetProduct(catalogReader, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(registry, middleware.SessionOptions{
				CookieSecure: cfg.Sessions.CookieSecure,
				CookieMaxAge: cfg.Sessions.IdleTTL,
			}, logg))

			r.Get("/", cartcontrollers.CartFetch(vat, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, vat, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartService, vat, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(cartService, vat, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, vat, logg))
			r.Get("/quote", cartcontrollers.QuoteFetch(formatter, quoteMetrics, logg))
			r.With(middleware.RateLimit(handoffPolicy, limiter, logg)).
				Get("/quote/handoff", cartcontrollers.QuoteHandoff(formatter, quoteMetrics, logg))
		})
	})

	return r
}
