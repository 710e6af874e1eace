package router

import (
	"net/http"

	"fitflow-box/internal/handler"
	"fitflow-box/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Catalog      *handler.CatalogHandler
	Pricing      *handler.PricingHandler
	Subscription *handler.SubscriptionHandler
	Preorder     *handler.PreorderHandler
	OrderGen     *handler.OrderGenHandler
}

// New creates the HTTP router with all routes and middleware configured.
// Health stays outside the API-key guard so load balancers can probe it.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey, logger))

		r.Get("/boxes", h.Catalog.ListBoxTypes)
		r.Get("/boxes/{id}", h.Catalog.GetBoxType)
		r.Get("/cycles", h.Catalog.ListCycles)
		r.Post("/cycles", h.Catalog.CreateCycle)
		r.Put("/cycles/{id}/status", h.Catalog.UpdateCycleStatus)

		r.Post("/pricing/quote", h.Pricing.Quote)

		r.Get("/subscriptions/{id}", h.Subscription.Get)
		r.Post("/subscriptions/{id}/actions", h.Subscription.ApplyAction)
		r.Put("/subscriptions/{id}/preferences", h.Subscription.UpdatePreferences)
		r.Put("/subscriptions/{id}/frequency", h.Subscription.ChangeFrequency)

		r.Get("/preorders/{token}", h.Preorder.GetByToken)
		r.Post("/preorders/convert", h.Preorder.Convert)

		r.Post("/cycles/{id}/generate-orders", h.OrderGen.Generate)
	})

	return r
}
