package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avalosmendoza/wedding-backend/api/controllers"
	"github.com/avalosmendoza/wedding-backend/api/controllers/webhooks"
	"github.com/avalosmendoza/wedding-backend/api/middleware"
	"github.com/avalosmendoza/wedding-backend/internal/comments"
	"github.com/avalosmendoza/wedding-backend/internal/gifts"
	"github.com/avalosmendoza/wedding-backend/internal/payments"
	stripewebhooks "github.com/avalosmendoza/wedding-backend/internal/webhooks/stripe"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
	"github.com/avalosmendoza/wedding-backend/pkg/metrics"
	pkgstripe "github.com/avalosmendoza/wedding-backend/pkg/stripe"
)

// Deps carries everything the router needs, built once in main.
type Deps struct {
	Logger      *logger.Logger
	Comments    *comments.Service
	Payments    *payments.Service
	Webhooks    *stripewebhooks.Service
	Catalog     *gifts.Catalog
	Stripe      *pkgstripe.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

// New assembles the HTTP surface.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(deps.HTTPMetrics))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Registry))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.HealthCheck(deps.Logger))

		r.Get("/comments", controllers.ListComments(deps.Comments, deps.Logger))
		r.Post("/comments", controllers.CreateComment(deps.Comments, deps.Logger))

		r.Get("/gift-packages", controllers.ListGiftPackages(deps.Catalog, deps.Logger))

		r.Post("/payments/checkout", controllers.CreateCheckout(deps.Payments, deps.Logger))
		r.Get("/payments/status/{sessionId}", controllers.PaymentStatus(deps.Payments, deps.Logger))

		r.Post("/webhook/stripe", webhooks.StripeWebhook(deps.Webhooks, deps.Stripe.SigningSecret(), deps.Logger))

		r.Get("/transactions", controllers.ListTransactions(deps.Payments, deps.Logger))
	})

	return r
}
