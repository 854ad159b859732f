package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/serenamente/teletherapy-backend/db"
	"github.com/serenamente/teletherapy-backend/models"
	"github.com/serenamente/teletherapy-backend/utils"
)

// GetAllTherapists lists the therapists currently accepting sessions.
func GetAllTherapists(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var therapists []models.Therapist
	if err := db.DB.Preload("User").
		Where("is_available = ?", true).
		Limit(limit).
		Offset(offset).
		Find(&therapists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch therapists",
			Error:   err.Error(),
		})
	}

	var count int64
	db.DB.Model(&models.Therapist{}).Where("is_available = ?", true).Count(&count)

	return c.JSON(fiber.Map{
		"therapists": therapists,
		"total":      count,
		"page":       page,
		"limit":      limit,
		"pages":      (int(count) + limit - 1) / limit,
	})
}

// getOrCreateTherapist loads the caller's therapist profile, creating one
// with a placeholder specialty and license on first access. The unique index
// on user_id makes concurrent first accesses converge on a single row.
func getOrCreateTherapist(userID uint) (*models.Therapist, error) {
	var therapist models.Therapist
	if err := db.DB.Where("user_id = ?", userID).First(&therapist).Error; err == nil {
		return &therapist, nil
	}

	therapist = models.Therapist{
		UserID:        userID,
		Specialty:     models.SpecialtyGeneral,
		LicenseNumber: fmt.Sprintf("LIC-%06d", userID),
	}
	if err := db.DB.Create(&therapist).Error; err != nil {
		// Lost a concurrent create; the row exists now.
		if err := db.DB.Where("user_id = ?", userID).First(&therapist).Error; err != nil {
			return nil, err
		}
	}
	return &therapist, nil
}

// GetMyTherapistProfile returns the caller's therapist profile, lazily
// created with placeholder values the therapist is expected to edit.
func GetMyTherapistProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	therapist, err := getOrCreateTherapist(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch therapist profile",
			Error:   err.Error(),
		})
	}

	db.DB.Preload("User").First(therapist, therapist.ID)
	return c.JSON(therapist)
}

type TherapistUpdateInput struct {
	Specialty       *models.Specialty `json:"specialty"`
	LicenseNumber   *string           `json:"license_number"`
	YearsExperience *int              `json:"years_experience"`
	Bio             *string           `json:"bio"`
	HourlyRate      *float64          `json:"hourly_rate"`
	IsAvailable     *bool             `json:"is_available"`

	MondayAvailable    *bool `json:"monday_available"`
	TuesdayAvailable   *bool `json:"tuesday_available"`
	WednesdayAvailable *bool `json:"wednesday_available"`
	ThursdayAvailable  *bool `json:"thursday_available"`
	FridayAvailable    *bool `json:"friday_available"`
	SaturdayAvailable  *bool `json:"saturday_available"`
	SundayAvailable    *bool `json:"sunday_available"`

	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

func applyTherapistUpdate(t *models.Therapist, input *TherapistUpdateInput) error {
	if input.Specialty != nil {
		if !input.Specialty.IsValid() {
			return fmt.Errorf("invalid specialty: %s", *input.Specialty)
		}
		t.Specialty = *input.Specialty
	}
	for _, window := range []*string{input.StartTime, input.EndTime} {
		if window != nil {
			if _, err := time.Parse("15:04", *window); err != nil {
				return fmt.Errorf("invalid time %q, expected HH:MM", *window)
			}
		}
	}
	if input.YearsExperience != nil && *input.YearsExperience < 0 {
		return fmt.Errorf("years_experience cannot be negative")
	}
	if input.HourlyRate != nil && *input.HourlyRate < 0 {
		return fmt.Errorf("hourly_rate cannot be negative")
	}

	applyString(&t.LicenseNumber, input.LicenseNumber)
	applyString(&t.Bio, input.Bio)
	applyString(&t.StartTime, input.StartTime)
	applyString(&t.EndTime, input.EndTime)
	if input.YearsExperience != nil {
		t.YearsExperience = *input.YearsExperience
	}
	if input.HourlyRate != nil {
		t.HourlyRate = *input.HourlyRate
	}
	if input.IsAvailable != nil {
		t.IsAvailable = *input.IsAvailable
	}

	applyBool(&t.MondayAvailable, input.MondayAvailable)
	applyBool(&t.TuesdayAvailable, input.TuesdayAvailable)
	applyBool(&t.WednesdayAvailable, input.WednesdayAvailable)
	applyBool(&t.ThursdayAvailable, input.ThursdayAvailable)
	applyBool(&t.FridayAvailable, input.FridayAvailable)
	applyBool(&t.SaturdayAvailable, input.SaturdayAvailable)
	applyBool(&t.SundayAvailable, input.SundayAvailable)
	return nil
}

// UpdateMyTherapistProfile partially updates the caller's therapist profile.
func UpdateMyTherapistProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	therapist, err := getOrCreateTherapist(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch therapist profile",
			Error:   err.Error(),
		})
	}

	input := new(TherapistUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := applyTherapistUpdate(therapist, input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid therapist profile",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Save(therapist).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to update therapist profile",
			Error:   err.Error(),
		})
	}
	return c.JSON(therapist)
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
