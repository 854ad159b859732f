package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/serenamente/teletherapy-backend/db"
	"github.com/serenamente/teletherapy-backend/models"
	"github.com/serenamente/teletherapy-backend/redis"
	"github.com/serenamente/teletherapy-backend/utils"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// generateTokenPair mints an access/refresh pair for the user. The refresh
// token's jti is allow-listed in Redis for its lifetime; logout removes the
// entry so the token can no longer be redeemed.
func generateTokenPair(user *models.User) (access string, refresh string, err error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	jti := uuid.NewString()
	refreshClaims := jwt.MapClaims{
		"id":  user.ID,
		"jti": jti,
		"exp": time.Now().Add(refreshTokenTTL).Unix(),
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	if err := redis.Client.Set(redis.Ctx, "refresh:"+jti, user.ID, refreshTokenTTL).Err(); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// parseRefreshToken validates the signature and expiry and returns the claims.
func parseRefreshToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid refresh token claims")
	}
	return claims, nil
}

type RegisterInput struct {
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	PasswordConfirm string          `json:"password_confirm"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Role            models.UserRole `json:"role"`
	Phone           string          `json:"phone"`
	DateOfBirth     *time.Time      `json:"date_of_birth"`
}

// Register creates the user and, for patients and therapists, the matching
// role profile in the same transaction, then signs the new user in.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if len(input.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 8 characters",
		})
	}
	if input.Password != input.PasswordConfirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Passwords do not match",
		})
	}
	if input.Role == "" {
		input.Role = models.RolePatient
	}
	if !input.Role.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role",
		})
	}

	var existing models.User
	if db.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this username or email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    string(hashedPassword),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Role:        input.Role,
		Phone:       input.Phone,
		DateOfBirth: input.DateOfBirth,
		IsActive:    true,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		switch user.Role {
		case models.RolePatient:
			return tx.Create(&models.Patient{UserID: user.ID}).Error
		case models.RoleTherapist:
			return tx.Create(&models.Therapist{
				UserID:        user.ID,
				Specialty:     models.SpecialtyGeneral,
				LicenseNumber: fmt.Sprintf("LIC-%06d", user.ID),
			}).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user: " + err.Error(),
		})
	}

	access, refresh, err := generateTokenPair(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate tokens",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("username = ?", input.Username).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Account disabled",
		})
	}

	access, refresh, err := generateTokenPair(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate tokens",
		})
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

// Logout drops the presented refresh token from the allow-list. A missing or
// invalid token is reported but never fails the request.
func Logout(c *fiber.Ctx) error {
	type LogoutInput struct {
		Refresh string `json:"refresh"`
	}

	input := new(LogoutInput)
	if err := c.BodyParser(input); err != nil || input.Refresh == "" {
		return c.JSON(fiber.Map{
			"message": "Logged out (no refresh token presented)",
		})
	}

	claims, err := parseRefreshToken(input.Refresh)
	if err != nil {
		return c.JSON(fiber.Map{
			"message": "Logged out (refresh token was not valid)",
		})
	}

	if jti, ok := claims["jti"].(string); ok {
		if err := redis.Client.Del(redis.Ctx, "refresh:"+jti).Err(); err != nil {
			log.Printf("Failed to revoke refresh token: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken rotates a refresh token into a new access/refresh pair. The
// old token must still be allow-listed; it is revoked on use.
func RefreshToken(c *fiber.Ctx) error {
	type RefreshInput struct {
		Refresh string `json:"refresh"`
	}

	input := new(RefreshInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	claims, err := parseRefreshToken(input.Refresh)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	jti, ok := claims["jti"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}
	if redis.Client.Exists(redis.Ctx, "refresh:"+jti).Val() == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Refresh token has been revoked",
		})
	}
	redis.Client.Del(redis.Ctx, "refresh:"+jti)

	userID, ok := claims["id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	var user models.User
	if err := db.DB.First(&user, uint(userID)).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	access, refresh, err := generateTokenPair(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate tokens",
		})
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}

// GetProfile returns the current user plus the role profile when one exists.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	resp := fiber.Map{"user": user}
	switch user.Role {
	case models.RolePatient:
		var patient models.Patient
		if db.DB.Where("user_id = ?", user.ID).First(&patient).RowsAffected > 0 {
			resp["profile"] = patient
		}
	case models.RoleTherapist:
		var therapist models.Therapist
		if db.DB.Where("user_id = ?", user.ID).First(&therapist).RowsAffected > 0 {
			resp["profile"] = therapist
		}
	}

	return c.JSON(resp)
}

type UserUpdateInput struct {
	FirstName   *string         `json:"first_name"`
	LastName    *string         `json:"last_name"`
	Email       *string         `json:"email"`
	Phone       *string         `json:"phone"`
	DateOfBirth *time.Time      `json:"date_of_birth"`
	Bio         *string         `json:"bio"`
	Timezone    *string         `json:"timezone"`
	Language    *string         `json:"language"`
	Theme       *string         `json:"theme"`
	Profile     json.RawMessage `json:"profile"`
}

type PatientUpdateInput struct {
	InitialTestCompleted *bool   `json:"initial_test_completed"`
	AnxietyLevel         *int    `json:"anxiety_level"`
	DepressionLevel      *int    `json:"depression_level"`
	StressLevel          *int    `json:"stress_level"`
	MainConcerns         *string `json:"main_concerns"`
	PreviousTherapy      *bool   `json:"previous_therapy"`
}

// UpdateProfile partially updates the base user and, when a nested profile
// object is present, the role profile. The two updates are validated
// independently: a failing profile update does not roll back the base one.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	input := new(UserUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Theme != nil {
		switch *input.Theme {
		case "auto", "light", "dark":
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid theme",
			})
		}
	}

	applyString(&user.FirstName, input.FirstName)
	applyString(&user.LastName, input.LastName)
	applyString(&user.Email, input.Email)
	applyString(&user.Phone, input.Phone)
	applyString(&user.Bio, input.Bio)
	applyString(&user.Timezone, input.Timezone)
	applyString(&user.Language, input.Language)
	applyString(&user.Theme, input.Theme)
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	if len(input.Profile) > 0 {
		if err := updateRoleProfile(&user, input.Profile); err != nil {
			log.Printf("Skipping role profile update for user %d: %v", user.ID, err)
		}
	}

	return GetProfile(c)
}

func updateRoleProfile(user *models.User, raw json.RawMessage) error {
	switch user.Role {
	case models.RolePatient:
		var patient models.Patient
		if err := db.DB.Where("user_id = ?", user.ID).First(&patient).Error; err != nil {
			return err
		}
		input := new(PatientUpdateInput)
		if err := json.Unmarshal(raw, input); err != nil {
			return err
		}
		for _, level := range []*int{input.AnxietyLevel, input.DepressionLevel, input.StressLevel} {
			if level != nil && (*level < 1 || *level > 10) {
				return fmt.Errorf("assessment levels must be between 1 and 10")
			}
		}
		if input.InitialTestCompleted != nil {
			patient.InitialTestCompleted = *input.InitialTestCompleted
		}
		if input.AnxietyLevel != nil {
			patient.AnxietyLevel = input.AnxietyLevel
		}
		if input.DepressionLevel != nil {
			patient.DepressionLevel = input.DepressionLevel
		}
		if input.StressLevel != nil {
			patient.StressLevel = input.StressLevel
		}
		applyString(&patient.MainConcerns, input.MainConcerns)
		if input.PreviousTherapy != nil {
			patient.PreviousTherapy = *input.PreviousTherapy
		}
		return db.DB.Save(&patient).Error
	case models.RoleTherapist:
		var therapist models.Therapist
		if err := db.DB.Where("user_id = ?", user.ID).First(&therapist).Error; err != nil {
			return err
		}
		input := new(TherapistUpdateInput)
		if err := json.Unmarshal(raw, input); err != nil {
			return err
		}
		if err := applyTherapistUpdate(&therapist, input); err != nil {
			return err
		}
		return db.DB.Save(&therapist).Error
	}
	return fmt.Errorf("role %s has no profile", user.Role)
}

// UploadProfilePicture stores the uploaded image in Cloudinary and saves the
// secure URL on the user record.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("profile_picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get profile picture",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open profile picture",
		})
	}
	defer f.Close()

	publicID := fmt.Sprintf("user_%d_%d", userID, time.Now().Unix())
	secureURL, err := utils.UploadProfilePicture(f, publicID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload profile picture",
		})
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", secureURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile picture",
		})
	}

	return c.JSON(fiber.Map{
		"profile_picture": secureURL,
	})
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
