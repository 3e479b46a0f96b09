package services

import (
	"errors"
	"fmt"
	"time"

	"healthquest/backend/models"
	"healthquest/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const otpTTL = 5 * time.Minute

type AuthService struct {
	db        *gorm.DB
	mailer    utils.Mailer
	jwtSecret string
}

func NewAuthService(db *gorm.DB, mailer utils.Mailer, jwtSecret string) *AuthService {
	return &AuthService{db: db, mailer: mailer, jwtSecret: jwtSecret}
}

// Register creates an inactive account and emails a verification OTP. A
// previous registration that never verified is reused under the same
// user_id instead of being treated as a duplicate.
func (s *AuthService) Register(email, password string) (map[string]any, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	otp := utils.GenerateOTP()
	now := time.Now().UTC()

	var user models.User
	err = s.db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if user.IsActive {
			return nil, utils.Validation("User is already registered.")
		}
		user.Password = hashed
		user.OTP = otp
		user.OTPCreatedAt = now
		user.IsProfileSet = false
		user.IsActive = false
		if err := s.db.Save(&user).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			UserID:       uuid.NewString(),
			Email:        email,
			Password:     hashed,
			OTP:          otp,
			OTPCreatedAt: now,
			UserRole:     "user",
			IsProfileSet: false,
			IsActive:     false,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	subject := "HealthQuest Verification OTP"
	body := fmt.Sprintf("<html><body><p>Your OTP is: %s</p></body></html>", otp)
	if err := s.mailer.Send(email, subject, body); err != nil {
		return nil, err
	}

	return map[string]any{
		"email":   email,
		"user_id": user.UserID,
		"message": "User registered successfully. OTP sent via email.",
	}, nil
}

// VerifyOTP activates the account when the passcode matches and is still
// fresh.
func (s *AuthService) VerifyOTP(email, otp string) (map[string]any, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	if user.OTP == "" || user.OTP != otp {
		return nil, utils.Validation("Invalid OTP")
	}
	if time.Since(user.OTPCreatedAt) > otpTTL {
		return nil, utils.Validation("OTP expired")
	}

	user.IsActive = true
	user.OTP = ""
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"user_id": user.UserID,
		"email":   user.Email,
		"message": "OTP verified successfully. Account activated.",
	}, nil
}

// Login checks credentials, issues a JWT and records it on the user row.
func (s *AuthService) Login(email, password string) (map[string]any, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, utils.Unauthorized("Invalid email or password")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, utils.Unauthorized("Invalid email or password")
	}
	if !user.IsActive {
		return nil, utils.Validation("Account is not verified. Please verify OTP first.")
	}

	token, err := utils.GenerateJWT(s.jwtSecret, user.Email, user.UserID)
	if err != nil {
		return nil, err
	}

	user.AccessToken = token
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"user_id":      user.UserID,
		"access_token": token,
		"is_active":    user.IsActive,
		"message":      "Login successful",
	}, nil
}

// ForgotPassword emails a fresh OTP that ResetPassword will check.
func (s *AuthService) ForgotPassword(email string) (map[string]any, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	otp := utils.GenerateOTP()
	user.OTP = otp
	user.OTPCreatedAt = time.Now().UTC()
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	subject := "HealthQuest Password Reset OTP"
	body := fmt.Sprintf("<html><body><p>Your password reset OTP is: %s</p></body></html>", otp)
	if err := s.mailer.Send(email, subject, body); err != nil {
		return nil, err
	}

	return map[string]any{
		"email":   email,
		"message": "Password reset OTP sent via email.",
	}, nil
}

func (s *AuthService) ResetPassword(email, otp, newPassword string) (map[string]any, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	if user.OTP == "" || user.OTP != otp {
		return nil, utils.Validation("Invalid OTP")
	}
	if time.Since(user.OTPCreatedAt) > otpTTL {
		return nil, utils.Validation("OTP expired")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	user.Password = hashed
	user.OTP = ""
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"email":   email,
		"message": "Password has been reset.",
	}, nil
}
