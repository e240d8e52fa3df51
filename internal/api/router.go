package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cheapflyer/internal/metrics"
)

// SetupRoutes registers the metrics endpoint, request middleware and the v1 API.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(requestid.New())
	app.Use(AccessLogMiddleware())

	v1 := app.Group("/v1")
	v1.Get("/health", HealthHandler(deps))
	v1.Get("/airports", ListAirportsHandler(deps))
	v1.Get("/airports/nearest", NearestAirportHandler(deps))
	v1.Get("/airlines", ListAirlinesHandler(deps))
	v1.Get("/deals", DealsHandler(deps))
	v1.Get("/packages", PackagesHandler(deps))
	v1.Get("/search", SearchHandler(deps))
	v1.Get("/searches/recent", RecentSearchesHandler(deps))

	v1.Get("/location", GetLocationHandler(deps))
	v1.Put("/location", PutLocationHandler(deps))
	v1.Delete("/location", DeleteLocationHandler(deps))
}
