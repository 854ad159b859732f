package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serenamente/teletherapy-backend/controllers"
	"github.com/serenamente/teletherapy-backend/middleware"
	"github.com/serenamente/teletherapy-backend/models"
)

// SetupTherapistRoutes configures all therapist related routes
func SetupTherapistRoutes(app *fiber.App) {
	therapist := app.Group("/therapists", middleware.Protected())

	therapist.Get("/", controllers.GetAllTherapists)
	therapist.Get("/me", middleware.RequireRole(models.RoleTherapist), controllers.GetMyTherapistProfile)
	therapist.Put("/me", middleware.RequireRole(models.RoleTherapist), controllers.UpdateMyTherapistProfile)
	therapist.Patch("/me", middleware.RequireRole(models.RoleTherapist), controllers.UpdateMyTherapistProfile)
}
