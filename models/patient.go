package models

import (
	"gorm.io/gorm"
)

// Patient extends a User with role "paciente". Intake levels use a 1-10 scale
// and stay nil until the initial assessment is completed.
type Patient struct {
	gorm.Model
	UserID               uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User                 User   `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	InitialTestCompleted bool   `json:"initial_test_completed" gorm:"default:false"`
	AnxietyLevel         *int   `json:"anxiety_level"`
	DepressionLevel      *int   `json:"depression_level"`
	StressLevel          *int   `json:"stress_level"`
	MainConcerns         string `json:"main_concerns"`
	PreviousTherapy      bool   `json:"previous_therapy" gorm:"default:false"`
}
