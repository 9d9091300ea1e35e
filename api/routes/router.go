package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitrineshop/vitrine-backend/api/controllers"
	"github.com/vitrineshop/vitrine-backend/api/middleware"
	authsvc "github.com/vitrineshop/vitrine-backend/internal/auth"
	"github.com/vitrineshop/vitrine-backend/internal/catalog"
	"github.com/vitrineshop/vitrine-backend/internal/categories"
	"github.com/vitrineshop/vitrine-backend/internal/clients"
	"github.com/vitrineshop/vitrine-backend/internal/paymentmethods"
	"github.com/vitrineshop/vitrine-backend/internal/products"
	"github.com/vitrineshop/vitrine-backend/internal/quotes"
	"github.com/vitrineshop/vitrine-backend/internal/settings"
	"github.com/vitrineshop/vitrine-backend/internal/users"
	"github.com/vitrineshop/vitrine-backend/pkg/config"
	"github.com/vitrineshop/vitrine-backend/pkg/enums"
	"github.com/vitrineshop/vitrine-backend/pkg/logger"
	"github.com/vitrineshop/vitrine-backend/pkg/metrics"
)

// Services bundles everything the router mounts.
type Services struct {
	Catalog        catalog.Service
	Quotes         quotes.Service
	Settings       settings.Service
	PaymentMethods paymentmethods.Service
	Auth           authsvc.Service
	Products       products.Service
	Categories     categories.Service
	Clients        clients.Service
	Users          users.Service
}

// Params collects the router dependencies.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Services    Services
	Readiness   map[string]controllers.Pinger
	MetricsReg  *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
}

// NewRouter wires the public storefront and the admin API.
func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger
	svcs := p.Services

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Readiness))
	})

	if p.MetricsReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsReg, promhttp.HandlerOpts{}))
	}

	// Public storefront.
	r.Get("/", controllers.Home(svcs.Catalog, svcs.Settings, logg))
	r.Get("/product/{slug}", controllers.ProductDetail(svcs.Catalog, svcs.Settings, logg))
	r.Get("/cart", controllers.CartPage(svcs.Catalog, svcs.Settings, svcs.PaymentMethods, logg))
	r.Post("/cart", controllers.CartSubmit(svcs.Quotes, logg))
	r.Get("/quote/{token}", controllers.QuoteView(svcs.Quotes, logg))

	r.Post("/api/admin/v1/auth/login", controllers.AdminLogin(svcs.Auth, logg))

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(svcs.Products, logg))
			r.Post("/", controllers.AdminProductCreate(svcs.Products, logg))
			r.Get("/{productId}", controllers.AdminProductGet(svcs.Products, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(svcs.Products, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(svcs.Products, logg))
		})
		r.Delete("/product-images/{imageId}", controllers.AdminProductImageDelete(svcs.Products, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminCategoryList(svcs.Categories, logg))
			r.Post("/", controllers.AdminCategoryCreate(svcs.Categories, logg))
			r.Put("/{categoryId}", controllers.AdminCategoryUpdate(svcs.Categories, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDelete(svcs.Categories, logg))
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.AdminClientList(svcs.Clients, logg))
			r.Post("/", controllers.AdminClientCreate(svcs.Clients, logg))
			r.Get("/{clientId}", controllers.AdminClientGet(svcs.Clients, logg))
			r.Put("/{clientId}", controllers.AdminClientUpdate(svcs.Clients, logg))
			r.Delete("/{clientId}", controllers.AdminClientDelete(svcs.Clients, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.AdminQuoteList(svcs.Quotes, logg))
			r.Get("/{quoteId}", controllers.AdminQuoteGet(svcs.Quotes, logg))
			r.Patch("/{quoteId}/status", controllers.AdminQuoteUpdateStatus(svcs.Quotes, logg))
			r.Delete("/{quoteId}", controllers.AdminQuoteDelete(svcs.Quotes, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(svcs.Users, logg))
			r.Post("/", controllers.AdminUserCreate(svcs.Users, logg))
			r.Get("/{userId}", controllers.AdminUserGet(svcs.Users, logg))
			r.Put("/{userId}", controllers.AdminUserUpdate(svcs.Users, logg))
			r.Delete("/{userId}", controllers.AdminUserDelete(svcs.Users, logg))
		})

		r.Route("/payment-methods", func(r chi.Router) {
			r.Get("/", controllers.AdminPaymentMethodList(svcs.PaymentMethods, logg))
			r.Post("/", controllers.AdminPaymentMethodCreate(svcs.PaymentMethods, logg))
			r.Put("/{methodId}", controllers.AdminPaymentMethodUpdate(svcs.PaymentMethods, logg))
			r.Delete("/{methodId}", controllers.AdminPaymentMethodDelete(svcs.PaymentMethods, logg))
		})

		r.Get("/settings", controllers.AdminSettingsGet(svcs.Settings, logg))
		r.Put("/settings", controllers.AdminSettingsPut(svcs.Settings, logg))
	})

	return r
}
