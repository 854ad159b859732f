package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/serenamente/teletherapy-backend/db"
	"github.com/serenamente/teletherapy-backend/models"
	"github.com/serenamente/teletherapy-backend/utils"
)

// StartCronJobs initializes and starts the cron scheduler for session reminders
func StartCronJobs() {
	c := cron.New()
	// Run every 5 minutes to check for sessions starting in the next hour
	_, err := c.AddFunc("*/5 * * * *", sendSessionReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for session reminders")
}

// sendSessionReminders emails patients whose confirmed sessions start in
// about an hour, honoring the session_reminders setting.
func sendSessionReminders() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var sessions []models.Session
	err := db.DB.Preload("Patient.User").Preload("Therapist.User").
		Where("status = ? AND scheduled_datetime BETWEEN ? AND ?",
			models.StatusConfirmed, startWindow, endWindow).
		Find(&sessions).Error
	if err != nil {
		log.Printf("Error fetching sessions for reminders: %v", err)
		return
	}

	for _, session := range sessions {
		var settings models.UserSettings
		if db.DB.Where("user_id = ?", session.Patient.UserID).
			First(&settings).RowsAffected > 0 && !settings.SessionReminders {
			continue
		}

		if err := sendReminderEmail(&session); err != nil {
			log.Printf("Failed to send reminder for session %s: %v", session.ID, err)
			continue
		}
		log.Printf("Sent reminder for session %s to %s", session.ID, session.Patient.User.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(session *models.Session) error {
	subject := "Reminder: Upcoming Therapy Session"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your therapy session starting in one hour.</p>
		<ul>
			<li><strong>Therapist:</strong> %s</li>
			<li><strong>Scheduled:</strong> %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
			<li><strong>Meeting link:</strong> %s</li>
		</ul>
		<p>Please join on time. If you need to cancel, remember the 24 hour notice policy.</p>
	`, session.Patient.User.FullName(), session.Therapist.User.FullName(),
		session.ScheduledDatetime.Format("2006-01-02 15:04"),
		session.DurationMinutes, session.VideoLink)

	return utils.SendEmail(session.Patient.User.Email, subject, body)
}
