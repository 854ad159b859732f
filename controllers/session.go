package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/serenamente/teletherapy-backend/db"
	"github.com/serenamente/teletherapy-backend/models"
	"github.com/serenamente/teletherapy-backend/utils"
)

func meetDomain() string {
	domain := os.Getenv("JITSI_DOMAIN")
	if domain == "" {
		domain = "meet.jit.si"
	}
	return domain
}

// scopedSessions narrows a query to the sessions visible to the caller: a
// patient sees sessions bound to their patient profile, a therapist those
// bound to their therapist profile. Any other role sees nothing.
func scopedSessions(userID uint, role models.UserRole) (*gorm.DB, bool) {
	switch role {
	case models.RolePatient:
		return db.DB.Model(&models.Session{}).
			Joins("JOIN patients ON patients.id = sessions.patient_id").
			Where("patients.user_id = ?", userID), true
	case models.RoleTherapist:
		return db.DB.Model(&models.Session{}).
			Joins("JOIN therapists ON therapists.id = sessions.therapist_id").
			Where("therapists.user_id = ?", userID), true
	}
	return nil, false
}

// findScopedSession loads one session by id within the caller's scope. An
// out-of-scope session is indistinguishable from a missing one.
func findScopedSession(id string, userID uint, role models.UserRole) (*models.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	query, ok := scopedSessions(userID, role)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var session models.Session
	if err := query.Where("sessions.id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetAllSessions returns the caller's sessions, newest first. Roles without
// session scope get an empty list rather than an error.
func GetAllSessions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.UserRole)

	query, ok := scopedSessions(userID, role)
	if !ok {
		return c.JSON([]models.Session{})
	}

	var sessions []models.Session
	if err := query.Preload("Patient.User").Preload("Therapist.User").
		Order("scheduled_datetime DESC").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch sessions",
			Error:   err.Error(),
		})
	}
	return c.JSON(sessions)
}

// GetPatientSessions lists the caller's sessions as a patient.
func GetPatientSessions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query, ok := scopedSessions(userID, models.RolePatient)
	if !ok || c.Locals("role").(models.UserRole) != models.RolePatient {
		return c.JSON([]models.Session{})
	}

	var sessions []models.Session
	if err := query.Preload("Therapist.User").
		Order("scheduled_datetime DESC").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch sessions",
			Error:   err.Error(),
		})
	}
	return c.JSON(sessions)
}

// GetTherapistSessions lists the caller's sessions as a therapist.
func GetTherapistSessions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query, ok := scopedSessions(userID, models.RoleTherapist)
	if !ok || c.Locals("role").(models.UserRole) != models.RoleTherapist {
		return c.JSON([]models.Session{})
	}

	var sessions []models.Session
	if err := query.Preload("Patient.User").
		Order("scheduled_datetime DESC").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch sessions",
			Error:   err.Error(),
		})
	}
	return c.JSON(sessions)
}

// GetSession returns one session within the caller's scope.
func GetSession(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.UserRole)

	session, err := findScopedSession(c.Params("id"), userID, role)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Session not found",
		})
	}

	if err := db.DB.Preload("Patient.User").Preload("Therapist.User").
		First(session, "id = ?", session.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Session not found",
		})
	}
	return c.JSON(session)
}

type SessionCreateInput struct {
	TherapistID       uint      `json:"therapist_id"`
	ScheduledDatetime time.Time `json:"scheduled_datetime"`
	DurationMinutes   int       `json:"duration_minutes"`
}

// CreateSession books a session for the calling patient. The session is
// always bound to the caller's own patient profile.
func CreateSession(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var patient models.Patient
	if db.DB.Where("user_id = ?", userID).First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Only patients can book sessions",
		})
	}

	input := new(SessionCreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.TherapistID == 0 || input.ScheduledDatetime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "therapist_id and scheduled_datetime are required",
		})
	}

	var therapist models.Therapist
	if err := db.DB.Preload("User").First(&therapist, input.TherapistID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
		})
	}

	session := models.Session{
		PatientID:         patient.ID,
		TherapistID:       therapist.ID,
		ScheduledDatetime: input.ScheduledDatetime,
		DurationMinutes:   input.DurationMinutes,
		Status:            models.StatusScheduled,
	}
	if err := db.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create session",
			Error:   err.Error(),
		})
	}

	var patientUser models.User
	if db.DB.First(&patientUser, patient.UserID).RowsAffected > 0 {
		sendBookingEmails(&session, &patientUser, &therapist.User)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

type SessionUpdateInput struct {
	TherapistNotes  *string               `json:"therapist_notes"`
	PatientFeedback *string               `json:"patient_feedback"`
	Rating          *int                  `json:"rating"`
	Status          *models.SessionStatus `json:"status"`
}

// UpdateSession edits the mutable fields of a session within the caller's
// scope. A status change goes through the state machine, so terminal states
// reject further transitions and confirmed/in_progress generate the link.
func UpdateSession(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.UserRole)

	session, err := findScopedSession(c.Params("id"), userID, role)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Session not found",
		})
	}

	input := new(SessionUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Rating must be between 1 and 5",
		})
	}

	applyString(&session.TherapistNotes, input.TherapistNotes)
	applyString(&session.PatientFeedback, input.PatientFeedback)
	if input.Rating != nil {
		session.Rating = input.Rating
	}

	if input.Status != nil && *input.Status != session.Status {
		if err := session.UpdateStatus(db.DB, *input.Status, meetDomain()); err != nil {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Invalid status change",
				Error:   err.Error(),
			})
		}
	} else if err := db.DB.Save(session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update session",
			Error:   err.Error(),
		})
	}

	if input.Rating != nil {
		refreshTherapistRating(session.TherapistID)
	}

	return c.JSON(session)
}

// refreshTherapistRating recomputes the therapist's average from all rated
// sessions. Failures only log; the rating itself is already saved.
func refreshTherapistRating(therapistID uint) {
	var result struct {
		AvgRating float64
	}
	if err := db.DB.Model(&models.Session{}).
		Select("COALESCE(AVG(rating), 0) as avg_rating").
		Where("therapist_id = ? AND rating IS NOT NULL", therapistID).
		Scan(&result).Error; err != nil {
		log.Printf("Failed to compute average rating for therapist %d: %v", therapistID, err)
		return
	}
	if err := db.DB.Model(&models.Therapist{}).Where("id = ?", therapistID).
		Update("average_rating", result.AvgRating).Error; err != nil {
		log.Printf("Failed to update average rating for therapist %d: %v", therapistID, err)
	}
}

// ConfirmSession moves a session to confirmed. Only the session's therapist
// may confirm; anyone else sees a not-found.
func ConfirmSession(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	session, err := findScopedSession(c.Params("id"), userID, models.RoleTherapist)
	if err != nil || c.Locals("role").(models.UserRole) != models.RoleTherapist {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Session not found",
		})
	}

	if err := session.UpdateStatus(db.DB, models.StatusConfirmed, meetDomain()); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Session cannot be confirmed",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Session confirmed",
		"session": session,
	})
}

// CancelSession cancels a session on behalf of its patient or therapist.
// Cancellation requires at least 24 hours of notice.
func CancelSession(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.UserRole)

	if role != models.RolePatient && role != models.RoleTherapist {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Not authorized",
		})
	}

	session, err := findScopedSession(c.Params("id"), userID, role)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Session not found",
		})
	}

	if !session.CancellableAt(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Sessions cannot be cancelled less than 24 hours in advance",
		})
	}

	if err := session.UpdateStatus(db.DB, models.StatusCancelled, meetDomain()); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Session cannot be cancelled",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Session cancelled",
		"session": session,
	})
}

// StartSession moves a session to in_progress and hands the caller the
// meeting link. Only the session's therapist may start it.
func StartSession(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	session, err := findScopedSession(c.Params("id"), userID, models.RoleTherapist)
	if err != nil || c.Locals("role").(models.UserRole) != models.RoleTherapist {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Session not found",
		})
	}

	if err := session.UpdateStatus(db.DB, models.StatusInProgress, meetDomain()); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Session cannot be started",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Session started",
		"video_link": session.VideoLink,
	})
}

// GetTherapistAvailability returns the free hourly slots for a therapist over
// the next seven days.
func GetTherapistAvailability(c *fiber.Ctx) error {
	var therapist models.Therapist
	if err := db.DB.First(&therapist, c.Params("therapist_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
		})
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizonEnd := startOfDay.AddDate(0, 0, utils.AvailabilityHorizonDays)

	var sessions []models.Session
	if err := db.DB.Where(
		"therapist_id = ? AND status IN ? AND scheduled_datetime >= ? AND scheduled_datetime < ?",
		therapist.ID, models.BlockingStatuses, startOfDay, horizonEnd,
	).Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch sessions",
			Error:   err.Error(),
		})
	}

	booked := make(map[int64]bool, len(sessions))
	for _, s := range sessions {
		booked[s.ScheduledDatetime.Unix()] = true
	}

	slots, err := utils.AvailableSlots(&therapist, booked, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute availability",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"available_slots": slots,
	})
}

func sendBookingEmails(session *models.Session, patient *models.User, therapist *models.User) {
	when := session.ScheduledDatetime.Format("2006-01-02 15:04")

	patientBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your therapy session has been booked.</p>
		<ul>
			<li><strong>Therapist:</strong> %s</li>
			<li><strong>Scheduled:</strong> %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
		</ul>
		<p>You will receive the meeting link once the therapist confirms.</p>
	`, patient.FullName(), therapist.FullName(), when, session.DurationMinutes)
	if err := utils.SendEmail(patient.Email, "Session Booked", patientBody); err != nil {
		log.Printf("Failed to send booking email to patient %s: %v", patient.Email, err)
	}

	therapistBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new session request.</p>
		<ul>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>Scheduled:</strong> %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
		</ul>
		<p>Please confirm the session from your dashboard.</p>
	`, therapist.FullName(), patient.FullName(), when, session.DurationMinutes)
	if err := utils.SendEmail(therapist.Email, "New Session Request", therapistBody); err != nil {
		log.Printf("Failed to send booking email to therapist %s: %v", therapist.Email, err)
	}
}
