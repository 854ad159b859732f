package db

import (
	"fmt"
	"log"

	"github.com/serenamente/teletherapy-backend/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Therapist{},
		&models.Session{},
		&models.Message{},
		&models.UserSettings{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
