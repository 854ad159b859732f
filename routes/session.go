package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serenamente/teletherapy-backend/controllers"
	"github.com/serenamente/teletherapy-backend/middleware"
)

// SetupSessionRoutes configures all session related routes
func SetupSessionRoutes(app *fiber.App) {
	session := app.Group("/sessions", middleware.Protected())

	session.Get("/", controllers.GetAllSessions)
	session.Post("/", controllers.CreateSession)
	session.Get("/patient", controllers.GetPatientSessions)
	session.Get("/therapist", controllers.GetTherapistSessions)
	session.Get("/therapist/:therapist_id/availability", controllers.GetTherapistAvailability)
	session.Get("/:id", controllers.GetSession)
	session.Patch("/:id", controllers.UpdateSession)
	session.Post("/:id/confirm", controllers.ConfirmSession)
	session.Post("/:id/cancel", controllers.CancelSession)
	session.Post("/:id/start", controllers.StartSession)
	session.Get("/:id/messages", controllers.GetSessionMessages)
	session.Post("/:id/messages", controllers.CreateSessionMessage)
}
