package models

import (
	"testing"
	"time"
)

func TestAvailableOn(t *testing.T) {
	weekdaysOnly := Therapist{
		MondayAvailable:    true,
		TuesdayAvailable:   true,
		WednesdayAvailable: true,
		ThursdayAvailable:  true,
		FridayAvailable:    true,
	}

	tests := []struct {
		day  time.Weekday
		want bool
	}{
		{time.Monday, true},
		{time.Tuesday, true},
		{time.Wednesday, true},
		{time.Thursday, true},
		{time.Friday, true},
		{time.Saturday, false},
		{time.Sunday, false},
	}

	for _, tt := range tests {
		if got := weekdaysOnly.AvailableOn(tt.day); got != tt.want {
			t.Errorf("AvailableOn(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestSpecialtyIsValid(t *testing.T) {
	for _, s := range []Specialty{
		SpecialtyAnxiety, SpecialtyDepression, SpecialtyTrauma, SpecialtyCouples,
		SpecialtyFamily, SpecialtyAdolescents, SpecialtyAddictions, SpecialtyGeneral,
	} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Specialty("podologia").IsValid() {
		t.Error("unknown specialty should be invalid")
	}
}

func TestUserRoleIsValid(t *testing.T) {
	for _, r := range []UserRole{RolePatient, RoleTherapist, RoleAdmin} {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if UserRole("superuser").IsValid() {
		t.Error("unknown role should be invalid")
	}
}
