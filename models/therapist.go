package models

import (
	"time"

	"gorm.io/gorm"
)

type Specialty string

const (
	SpecialtyAnxiety     Specialty = "ansiedad"
	SpecialtyDepression  Specialty = "depresion"
	SpecialtyTrauma      Specialty = "trauma"
	SpecialtyCouples     Specialty = "pareja"
	SpecialtyFamily      Specialty = "familia"
	SpecialtyAdolescents Specialty = "adolescentes"
	SpecialtyAddictions  Specialty = "adicciones"
	SpecialtyGeneral     Specialty = "general"
)

func (s Specialty) IsValid() bool {
	switch s {
	case SpecialtyAnxiety, SpecialtyDepression, SpecialtyTrauma, SpecialtyCouples,
		SpecialtyFamily, SpecialtyAdolescents, SpecialtyAddictions, SpecialtyGeneral:
		return true
	}
	return false
}

// Therapist extends a User with role "terapeuta". Weekly availability is a
// boolean flag per weekday plus one start/end window shared across all
// enabled days, in "HH:MM" 24h format.
type Therapist struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User            User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Specialty       Specialty `json:"specialty" gorm:"size:20;default:'general'"`
	LicenseNumber   string    `json:"license_number" gorm:"uniqueIndex;size:50;not null"`
	YearsExperience int       `json:"years_experience" gorm:"default:0"`
	Bio             string    `json:"bio"`
	HourlyRate      float64   `json:"hourly_rate" gorm:"type:decimal(8,2);default:0"`
	AverageRating   float64   `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	IsAvailable     bool      `json:"is_available" gorm:"default:true"`

	MondayAvailable    bool `json:"monday_available" gorm:"default:true"`
	TuesdayAvailable   bool `json:"tuesday_available" gorm:"default:true"`
	WednesdayAvailable bool `json:"wednesday_available" gorm:"default:true"`
	ThursdayAvailable  bool `json:"thursday_available" gorm:"default:true"`
	FridayAvailable    bool `json:"friday_available" gorm:"default:true"`
	SaturdayAvailable  bool `json:"saturday_available" gorm:"default:false"`
	SundayAvailable    bool `json:"sunday_available" gorm:"default:false"`

	StartTime string `json:"start_time" gorm:"size:5;default:'09:00'"`
	EndTime   string `json:"end_time" gorm:"size:5;default:'18:00'"`
}

// AvailableOn reports whether the therapist works on the given weekday.
func (t *Therapist) AvailableOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return t.MondayAvailable
	case time.Tuesday:
		return t.TuesdayAvailable
	case time.Wednesday:
		return t.WednesdayAvailable
	case time.Thursday:
		return t.ThursdayAvailable
	case time.Friday:
		return t.FridayAvailable
	case time.Saturday:
		return t.SaturdayAvailable
	case time.Sunday:
		return t.SundayAvailable
	}
	return false
}
