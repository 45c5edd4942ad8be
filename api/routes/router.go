package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/spicy-pepper-shop/api/controllers"
	"github.com/angelmondragon/spicy-pepper-shop/api/docs"
	"github.com/angelmondragon/spicy-pepper-shop/api/middleware"
	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
	"github.com/angelmondragon/spicy-pepper-shop/internal/accounts"
	"github.com/angelmondragon/spicy-pepper-shop/internal/admin"
	"github.com/angelmondragon/spicy-pepper-shop/internal/orders"
	"github.com/angelmondragon/spicy-pepper-shop/internal/products"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/config"
	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/metrics"
)

const (
	documentPath = "/openapi.json"
	docsPath     = "/api-docs"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	accountService accounts.Service,
	productService products.Service,
	orderService orders.Service,
	adminService admin.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.CORS(),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not found."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not found."))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health(cfg))
		r.Post("/login", controllers.Login(accountService, logg))
		r.Post("/reset", controllers.Reset(adminService, logg))

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", controllers.ListAccounts(accountService, logg))
			r.Post("/", controllers.CreateAccount(accountService, logg))
			r.Delete("/{id}", controllers.DeleteAccount(accountService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(orderService, logg))
			r.Post("/", controllers.PlaceOrder(orderService, logg))
		})
	})

	publicURL := ""
	if cfg != nil {
		publicURL = cfg.App.PublicURL
	}
	doc := docs.NewDocument(publicURL)
	r.Get(documentPath, docs.DocumentHandler(doc))
	r.Get(docsPath, docs.UIHandler(doc, documentPath))

	if gatherer != nil && (cfg == nil || cfg.Metrics.Enabled) {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
