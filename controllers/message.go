package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/serenamente/teletherapy-backend/db"
	"github.com/serenamente/teletherapy-backend/models"
	"github.com/serenamente/teletherapy-backend/utils"
)

// isSessionParticipant reports whether the caller is the patient or the
// therapist of the given session.
func isSessionParticipant(sessionID uuid.UUID, userID uint, role models.UserRole) bool {
	query, ok := scopedSessions(userID, role)
	if !ok {
		return false
	}
	var count int64
	query.Where("sessions.id = ?", sessionID).Count(&count)
	return count > 0
}

// GetSessionMessages returns a session's chat log oldest-first. Callers who
// are not participants get an empty list, the same as for an unknown session.
func GetSessionMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.UserRole)

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil || !isSessionParticipant(sessionID, userID, role) {
		return c.JSON([]models.Message{})
	}

	var messages []models.Message
	if err := db.DB.Preload("Sender").Where("session_id = ?", sessionID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}
	return c.JSON(messages)
}

type MessageCreateInput struct {
	Content string `json:"content"`
}

// CreateSessionMessage appends a message to a session's chat log. The sender
// is always the caller; there is no edit or delete.
func CreateSessionMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.UserRole)

	input := new(MessageCreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if strings.TrimSpace(input.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Message content is required",
		})
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil || !isSessionParticipant(sessionID, userID, role) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Session not found",
		})
	}

	message := models.Message{
		SessionID: sessionID,
		SenderID:  userID,
		Content:   input.Content,
	}
	if err := db.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create message",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}
