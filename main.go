package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/serenamente/teletherapy-backend/cron"
	"github.com/serenamente/teletherapy-backend/db"
	"github.com/serenamente/teletherapy-backend/redis"
	"github.com/serenamente/teletherapy-backend/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()

	allowOrigins := os.Getenv("ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Teletherapy API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupSessionRoutes(app)
	routes.SetupSettingsRoutes(app)
	routes.SetupTherapistRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
