package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	StatusScheduled  SessionStatus = "scheduled"
	StatusConfirmed  SessionStatus = "confirmed"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
	StatusNoShow     SessionStatus = "no_show"
)

// CancellationWindow is the minimum notice required to cancel a session.
const CancellationWindow = 24 * time.Hour

// Session is a therapy appointment between one patient and one therapist.
type Session struct {
	ID                uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	PatientID         uint          `json:"patient_id" gorm:"not null;index"`
	Patient           Patient       `json:"patient" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	TherapistID       uint          `json:"therapist_id" gorm:"not null;index"`
	Therapist         Therapist     `json:"therapist" gorm:"foreignKey:TherapistID;constraint:OnDelete:CASCADE"`
	ScheduledDatetime time.Time     `json:"scheduled_datetime" gorm:"not null;index"`
	DurationMinutes   int           `json:"duration_minutes" gorm:"default:60"`
	Status            SessionStatus `json:"status" gorm:"size:20;default:'scheduled'"`
	VideoLink         string        `json:"video_link"`
	TherapistNotes    string        `json:"therapist_notes"`
	PatientFeedback   string        `json:"patient_feedback"`
	Rating            *int          `json:"rating"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	Messages          []Message     `json:"messages,omitempty" gorm:"foreignKey:SessionID"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusScheduled
	}
	if s.DurationMinutes == 0 {
		s.DurationMinutes = 60
	}
	return nil
}

// BlockingStatuses are the states in which a session occupies its slot.
// Cancelled, completed and no-show sessions free the slot again.
var BlockingStatuses = []SessionStatus{StatusScheduled, StatusConfirmed, StatusInProgress}

// Blocks reports whether the status keeps the scheduled slot occupied.
func (st SessionStatus) Blocks() bool {
	for _, b := range BlockingStatuses {
		if st == b {
			return true
		}
	}
	return false
}

// CanTransition reports whether a session may move from one status to another.
func CanTransition(from, to SessionStatus) bool {
	switch from {
	case StatusScheduled:
		return to == StatusConfirmed || to == StatusInProgress || to == StatusCancelled || to == StatusNoShow
	case StatusConfirmed:
		return to == StatusInProgress || to == StatusCancelled || to == StatusNoShow
	case StatusInProgress:
		return to == StatusCompleted
	}
	// completed, cancelled and no_show are terminal
	return false
}

// UpdateStatus applies a state transition and persists it. Entering confirmed
// or in_progress generates the video link if none exists yet; an invalid
// transition leaves the session untouched.
func (s *Session) UpdateStatus(tx *gorm.DB, next SessionStatus, meetDomain string) error {
	if !CanTransition(s.Status, next) {
		return fmt.Errorf("invalid transition from %s to %s", s.Status, next)
	}
	s.Status = next
	s.EnsureVideoLink(meetDomain)
	return tx.Save(s).Error
}

// EnsureVideoLink populates the meeting link once the session is confirmed or
// running. The link is derived from the session id and never regenerated.
func (s *Session) EnsureVideoLink(meetDomain string) {
	if s.VideoLink != "" {
		return
	}
	if s.Status != StatusConfirmed && s.Status != StatusInProgress {
		return
	}
	s.VideoLink = fmt.Sprintf("https://%s/therapy-session-%s", meetDomain, s.ID)
}

// CancellableAt reports whether the session may still be cancelled at the
// given instant. Cancellation requires at least the full notice window.
func (s *Session) CancellableAt(now time.Time) bool {
	return s.ScheduledDatetime.Sub(now) >= CancellationWindow
}
