package controllers

import (
	"testing"

	"github.com/serenamente/teletherapy-backend/models"
)

func specialtyPtr(s models.Specialty) *models.Specialty { return &s }
func stringPtr(s string) *string                        { return &s }
func floatPtr(f float64) *float64                       { return &f }
func intPtr(i int) *int                                 { return &i }

func TestApplyTherapistUpdate(t *testing.T) {
	therapist := models.Therapist{
		Specialty:     models.SpecialtyGeneral,
		LicenseNumber: "LIC-000001",
		StartTime:     "09:00",
		EndTime:       "18:00",
	}

	err := applyTherapistUpdate(&therapist, &TherapistUpdateInput{
		Specialty:  specialtyPtr(models.SpecialtyAnxiety),
		HourlyRate: floatPtr(55.5),
		StartTime:  stringPtr("10:00"),
	})
	if err != nil {
		t.Fatalf("applyTherapistUpdate() error = %v", err)
	}

	if therapist.Specialty != models.SpecialtyAnxiety {
		t.Errorf("Specialty = %s, want %s", therapist.Specialty, models.SpecialtyAnxiety)
	}
	if therapist.HourlyRate != 55.5 {
		t.Errorf("HourlyRate = %v, want 55.5", therapist.HourlyRate)
	}
	if therapist.StartTime != "10:00" {
		t.Errorf("StartTime = %s, want 10:00", therapist.StartTime)
	}
	// Untouched fields survive.
	if therapist.EndTime != "18:00" || therapist.LicenseNumber != "LIC-000001" {
		t.Error("fields absent from the update must not change")
	}
}

func TestApplyTherapistUpdateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input TherapistUpdateInput
	}{
		{"unknown specialty", TherapistUpdateInput{Specialty: specialtyPtr("numerologia")}},
		{"malformed start time", TherapistUpdateInput{StartTime: stringPtr("morning")}},
		{"malformed end time", TherapistUpdateInput{EndTime: stringPtr("25:99")}},
		{"negative experience", TherapistUpdateInput{YearsExperience: intPtr(-1)}},
		{"negative rate", TherapistUpdateInput{HourlyRate: floatPtr(-10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			therapist := models.Therapist{Specialty: models.SpecialtyGeneral, StartTime: "09:00", EndTime: "18:00"}
			if err := applyTherapistUpdate(&therapist, &tt.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
