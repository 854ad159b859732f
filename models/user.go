package models

import (
	"time"
)

type UserRole string

const (
	RolePatient   UserRole = "paciente"
	RoleTherapist UserRole = "terapeuta"
	RoleAdmin     UserRole = "admin"
)

// IsValid reports whether the role is one of the three supported roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RolePatient, RoleTherapist, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password       string     `json:"-" gorm:"not null"`
	FirstName      string     `json:"first_name" gorm:"size:150"`
	LastName       string     `json:"last_name" gorm:"size:150"`
	Role           UserRole   `json:"role" gorm:"size:20;default:'paciente'"`
	Phone          string     `json:"phone" gorm:"size:15"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Bio            string     `json:"bio"`
	Timezone       string     `json:"timezone" gorm:"size:50;default:'America/Mexico_City'"`
	Language       string     `json:"language" gorm:"size:10;default:'es'"`
	Theme          string     `json:"theme" gorm:"size:20;default:'auto'"`
	ProfilePicture string     `json:"profile_picture"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FullName returns "First Last", falling back to the username.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
