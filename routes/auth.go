package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serenamente/teletherapy-backend/controllers"
	"github.com/serenamente/teletherapy-backend/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Get("/profile", middleware.Protected(), controllers.GetProfile)
	auth.Put("/profile", middleware.Protected(), controllers.UpdateProfile)
	auth.Patch("/profile", middleware.Protected(), controllers.UpdateProfile)
	auth.Post("/profile/picture", middleware.Protected(), controllers.UploadProfilePicture)
}
