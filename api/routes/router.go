package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lyvest/lyvest-backend/api/controllers"
	"github.com/lyvest/lyvest-backend/api/middleware"
	cartsvc "github.com/lyvest/lyvest-backend/internal/cart"
	favoritessvc "github.com/lyvest/lyvest-backend/internal/favorites"
	sizingsvc "github.com/lyvest/lyvest-backend/internal/sizing"
	"github.com/lyvest/lyvest-backend/pkg/config"
	"github.com/lyvest/lyvest-backend/pkg/logger"
)

// Params carries everything the router wires into handlers. Nil dependencies
// degrade the matching routes rather than the whole server.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Cart     cartsvc.Service
	Favorite favoritessvc.Service
	Sizing   *sizingsvc.Advisor

	// ReadyChecks maps dependency names to their readiness probes.
	ReadyChecks map[string]controllers.Pinger

	// MetricsGatherer exposes /metrics when set.
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
		middleware.SessionUser(p.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.ReadyChecks))
	})

	if p.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.Cart, p.Logger))
			r.Post("/", controllers.CartAddItem(p.Cart, p.Logger))
			r.Delete("/", controllers.CartClear(p.Cart, p.Logger))
			r.Patch("/{productId}", controllers.CartUpdateQuantity(p.Cart, p.Logger))
			r.Delete("/{productId}", controllers.CartRemoveItem(p.Cart, p.Logger))
			r.Post("/coupon", controllers.CouponApply(p.Cart, p.Logger))
			r.Delete("/coupon", controllers.CouponRemove(p.Cart, p.Logger))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(p.Favorite, p.Logger))
			r.Delete("/", controllers.FavoritesClear(p.Favorite, p.Logger))
			r.Put("/{productId}", controllers.FavoriteToggle(p.Favorite, p.Logger))
			r.Post("/sync", controllers.FavoritesSync(p.Favorite, p.Logger))
		})

		r.Route("/sizing", func(r chi.Router) {
			r.Post("/recommendation", controllers.SizingRecommend(p.Sizing, p.Logger))
			r.Post("/references", controllers.SizingReferences(p.Logger))
		})
	})

	return r
}
