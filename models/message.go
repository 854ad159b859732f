package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry of a session's chat log. Messages are append-only:
// there is no update or delete path.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	Session   Session   `json:"-" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	SenderID  uint      `json:"sender_id" gorm:"not null"`
	Sender    User      `json:"sender" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
