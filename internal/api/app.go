package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application serving handler's routes.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "labunify",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(handler.RequestLogger)
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app
}
