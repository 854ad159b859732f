package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serenamente/teletherapy-backend/controllers"
	"github.com/serenamente/teletherapy-backend/middleware"
)

// SetupSettingsRoutes configures all user settings related routes
func SetupSettingsRoutes(app *fiber.App) {
	settings := app.Group("/settings", middleware.Protected())

	settings.Get("/", controllers.GetSettings)
	settings.Put("/", controllers.UpdateSettings)
	settings.Patch("/", controllers.UpdateSettings)
	settings.Post("/reset", controllers.ResetSettings)
}
