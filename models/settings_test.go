package models

import (
	"encoding/json"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(42)

	if s.UserID != 42 {
		t.Errorf("UserID = %d, want 42", s.UserID)
	}
	if !s.EmailNotifications {
		t.Error("email_notifications should default to true")
	}
	if s.SMSNotifications {
		t.Error("sms_notifications should default to false")
	}
	if !s.SessionReminders {
		t.Error("session_reminders should default to true")
	}
	if s.ProfileVisibility != VisibilityPrivate {
		t.Errorf("profile_visibility = %q, want %q", s.ProfileVisibility, VisibilityPrivate)
	}
	if !s.Analytics {
		t.Error("analytics should default to true")
	}
	if s.PreferredQuality != QualityAuto {
		t.Errorf("preferred_quality = %q, want %q", s.PreferredQuality, QualityAuto)
	}
	if s.Theme != "auto" {
		t.Errorf("theme = %q, want auto", s.Theme)
	}
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestApplyPartialUpdate(t *testing.T) {
	s := DefaultSettings(1)

	err := s.Apply(SettingsUpdate{
		Notifications: &NotificationsUpdate{
			EmailNotifications: boolPtr(false),
		},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if s.EmailNotifications {
		t.Error("email_notifications should be false after update")
	}
	// Untouched fields of the same namespace keep their values.
	if !s.PushNotifications {
		t.Error("push_notifications should be unchanged")
	}
	// Absent namespaces stay at their defaults.
	if s.ProfileVisibility != VisibilityPrivate || s.Theme != "auto" {
		t.Error("absent namespaces must stay untouched")
	}
}

func TestApplyValidatesEnums(t *testing.T) {
	tests := []struct {
		name   string
		update SettingsUpdate
	}{
		{
			"bad visibility",
			SettingsUpdate{Privacy: &PrivacyUpdate{ProfileVisibility: strPtr("everyone")}},
		},
		{
			"bad quality",
			SettingsUpdate{Device: &DeviceUpdate{PreferredQuality: strPtr("ultra")}},
		},
		{
			"bad theme",
			SettingsUpdate{Appearance: &AppearanceUpdate{Theme: strPtr("neon")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings(1)
			before := s
			if err := s.Apply(tt.update); err == nil {
				t.Fatal("Apply() expected error")
			}
			if s != before {
				t.Error("failed update must leave settings untouched")
			}
		})
	}
}

func TestApplyRejectsInvalidEnumWithoutPartialWrite(t *testing.T) {
	// A mixed update with one bad enum must not apply the good fields either.
	s := DefaultSettings(1)
	before := s
	err := s.Apply(SettingsUpdate{
		Notifications: &NotificationsUpdate{Newsletter: boolPtr(true)},
		Appearance:    &AppearanceUpdate{Theme: strPtr("neon")},
	})
	if err == nil {
		t.Fatal("Apply() expected error")
	}
	if s != before {
		t.Error("no field may change when validation fails")
	}
}

func TestUnknownKeysIgnored(t *testing.T) {
	raw := []byte(`{
		"notifications": {"email_notifications": false, "carrier_pigeon": true},
		"gibberish": {"x": 1}
	}`)

	var update SettingsUpdate
	if err := json.Unmarshal(raw, &update); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	s := DefaultSettings(1)
	if err := s.Apply(update); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if s.EmailNotifications {
		t.Error("recognized field should still apply alongside unknown keys")
	}
	if s.SMSNotifications || !s.PushNotifications {
		t.Error("other notification fields must be unaffected")
	}
}
