package models

import (
	"fmt"
	"time"
)

const (
	VisibilityPrivate    = "private"
	VisibilityPublic     = "public"
	VisibilityTherapists = "therapists"
)

const (
	QualityAuto   = "auto"
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// UserSettings holds one row of per-user preferences, grouped into the four
// namespaces exposed by the API: notifications, privacy, device, appearance.
type UserSettings struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Notifications
	EmailNotifications       bool `json:"email_notifications" gorm:"default:true"`
	SMSNotifications         bool `json:"sms_notifications" gorm:"default:false"`
	PushNotifications        bool `json:"push_notifications" gorm:"default:true"`
	SessionReminders         bool `json:"session_reminders" gorm:"default:true"`
	AppointmentConfirmations bool `json:"appointment_confirmations" gorm:"default:true"`
	Newsletter               bool `json:"newsletter" gorm:"default:false"`
	Marketing                bool `json:"marketing" gorm:"default:false"`

	// Privacy
	ProfileVisibility string `json:"profile_visibility" gorm:"size:20;default:'private'"`
	DataSharing       bool   `json:"data_sharing" gorm:"default:false"`
	Analytics         bool   `json:"analytics" gorm:"default:true"`
	ThirdParty        bool   `json:"third_party" gorm:"default:false"`

	// Device
	CameraEnabled     bool   `json:"camera_enabled" gorm:"default:true"`
	MicrophoneEnabled bool   `json:"microphone_enabled" gorm:"default:true"`
	SpeakerEnabled    bool   `json:"speaker_enabled" gorm:"default:true"`
	PreferredQuality  string `json:"preferred_quality" gorm:"size:20;default:'auto'"`

	// Appearance
	Theme string `json:"theme" gorm:"size:20;default:'auto'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings returns a fresh settings row for the user with every field
// at its documented default.
func DefaultSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:                   userID,
		EmailNotifications:       true,
		SMSNotifications:         false,
		PushNotifications:        true,
		SessionReminders:         true,
		AppointmentConfirmations: true,
		Newsletter:               false,
		Marketing:                false,
		ProfileVisibility:        VisibilityPrivate,
		DataSharing:              false,
		Analytics:                true,
		ThirdParty:               false,
		CameraEnabled:            true,
		MicrophoneEnabled:        true,
		SpeakerEnabled:           true,
		PreferredQuality:         QualityAuto,
		Theme:                    "auto",
	}
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// NotificationsUpdate carries the recognized notification fields. Pointers
// distinguish "absent" from "false"; unknown JSON keys are dropped by the
// decoder, so they are ignored by construction.
type NotificationsUpdate struct {
	EmailNotifications       *bool `json:"email_notifications"`
	SMSNotifications         *bool `json:"sms_notifications"`
	PushNotifications        *bool `json:"push_notifications"`
	SessionReminders         *bool `json:"session_reminders"`
	AppointmentConfirmations *bool `json:"appointment_confirmations"`
	Newsletter               *bool `json:"newsletter"`
	Marketing                *bool `json:"marketing"`
}

type PrivacyUpdate struct {
	ProfileVisibility *string `json:"profile_visibility"`
	DataSharing       *bool   `json:"data_sharing"`
	Analytics         *bool   `json:"analytics"`
	ThirdParty        *bool   `json:"third_party"`
}

type DeviceUpdate struct {
	CameraEnabled     *bool   `json:"camera_enabled"`
	MicrophoneEnabled *bool   `json:"microphone_enabled"`
	SpeakerEnabled    *bool   `json:"speaker_enabled"`
	PreferredQuality  *string `json:"preferred_quality"`
}

type AppearanceUpdate struct {
	Theme *string `json:"theme"`
}

// SettingsUpdate is a namespaced partial update. Absent namespaces leave
// their group untouched.
type SettingsUpdate struct {
	Notifications *NotificationsUpdate `json:"notifications"`
	Privacy       *PrivacyUpdate       `json:"privacy"`
	Device        *DeviceUpdate        `json:"device"`
	Appearance    *AppearanceUpdate    `json:"appearance"`
}

// Apply copies the recognized fields of the update onto the settings row.
// Enum fields are validated; an invalid value rejects the update without
// touching the row.
func (s *UserSettings) Apply(u SettingsUpdate) error {
	if u.Privacy != nil && u.Privacy.ProfileVisibility != nil {
		switch *u.Privacy.ProfileVisibility {
		case VisibilityPrivate, VisibilityPublic, VisibilityTherapists:
		default:
			return fmt.Errorf("invalid profile_visibility: %s", *u.Privacy.ProfileVisibility)
		}
	}
	if u.Device != nil && u.Device.PreferredQuality != nil {
		switch *u.Device.PreferredQuality {
		case QualityAuto, QualityLow, QualityMedium, QualityHigh:
		default:
			return fmt.Errorf("invalid preferred_quality: %s", *u.Device.PreferredQuality)
		}
	}
	if u.Appearance != nil && u.Appearance.Theme != nil {
		switch *u.Appearance.Theme {
		case "auto", "light", "dark":
		default:
			return fmt.Errorf("invalid theme: %s", *u.Appearance.Theme)
		}
	}

	if n := u.Notifications; n != nil {
		setBool(&s.EmailNotifications, n.EmailNotifications)
		setBool(&s.SMSNotifications, n.SMSNotifications)
		setBool(&s.PushNotifications, n.PushNotifications)
		setBool(&s.SessionReminders, n.SessionReminders)
		setBool(&s.AppointmentConfirmations, n.AppointmentConfirmations)
		setBool(&s.Newsletter, n.Newsletter)
		setBool(&s.Marketing, n.Marketing)
	}
	if p := u.Privacy; p != nil {
		setString(&s.ProfileVisibility, p.ProfileVisibility)
		setBool(&s.DataSharing, p.DataSharing)
		setBool(&s.Analytics, p.Analytics)
		setBool(&s.ThirdParty, p.ThirdParty)
	}
	if d := u.Device; d != nil {
		setBool(&s.CameraEnabled, d.CameraEnabled)
		setBool(&s.MicrophoneEnabled, d.MicrophoneEnabled)
		setBool(&s.SpeakerEnabled, d.SpeakerEnabled)
		setString(&s.PreferredQuality, d.PreferredQuality)
	}
	if a := u.Appearance; a != nil {
		setString(&s.Theme, a.Theme)
	}
	return nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
