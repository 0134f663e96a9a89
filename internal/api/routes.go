package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerServiceRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerServiceRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Post("/resolve", handler.Resolve)
	api.Post("/convert", handler.Convert)
	api.Post("/convert/standard", handler.ConvertToStandard)

	canonical := api.Group("/canonical-names")
	canonical.Get("", handler.ListCanonicalNames)
	canonical.Get("/:id", handler.GetCanonicalName)
	canonical.Get("/:id/synonyms", handler.ListSynonyms)
	canonical.Post("/:id/synonyms", handler.CreateCanonicalSynonym)
	canonical.Get("/:id/units", handler.ListUnits)
	canonical.Post("/:id/units", handler.CreateUnit)
	canonical.Get("/:id/conversions", handler.ListConversions)
	canonical.Post("/:id/conversions", handler.CreateConversion)

	synonyms := api.Group("/synonyms")
	synonyms.Post("", handler.CreateSynonym)
	synonyms.Post("/import", handler.ImportSynonyms)
	synonyms.Get("/export", handler.ExportSynonyms)
	synonyms.Delete("/:id", handler.DeleteSynonym)

	api.Delete("/units/:id", handler.DeleteUnit)
	api.Delete("/conversions/:id", handler.DeleteConversion)
}
