package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serenamente/teletherapy-backend/db"
	"github.com/serenamente/teletherapy-backend/models"
	"github.com/serenamente/teletherapy-backend/utils"
)

// getOrCreateSettings loads the caller's settings row, creating it with the
// defaults on first access. The unique index on user_id resolves concurrent
// first accesses: a losing insert falls back to re-reading the winner's row.
func getOrCreateSettings(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := db.DB.Where("user_id = ?", userID).First(&settings).Error; err == nil {
		return &settings, nil
	}

	settings = models.DefaultSettings(userID)
	if err := db.DB.Create(&settings).Error; err != nil {
		// Lost a concurrent create; the row exists now.
		if err := db.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
			return nil, err
		}
	}
	return &settings, nil
}

// GetSettings returns the caller's settings, creating defaults on first access.
func GetSettings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	settings, err := getOrCreateSettings(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch settings",
			Error:   err.Error(),
		})
	}
	return c.JSON(settings)
}

// UpdateSettings applies a namespaced partial update. Absent namespaces are
// untouched and unknown keys inside a namespace are ignored.
func UpdateSettings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	settings, err := getOrCreateSettings(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch settings",
			Error:   err.Error(),
		})
	}

	input := new(models.SettingsUpdate)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := settings.Apply(*input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid settings value",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Save(settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update settings",
			Error:   err.Error(),
		})
	}
	return c.JSON(settings)
}

// ResetSettings deletes any existing settings row and recreates the defaults.
func ResetSettings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := db.DB.Where("user_id = ?", userID).Delete(&models.UserSettings{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reset settings",
			Error:   err.Error(),
		})
	}

	settings := models.DefaultSettings(userID)
	if err := db.DB.Create(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reset settings",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(settings)
}
