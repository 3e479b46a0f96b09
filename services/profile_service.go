package services

import (
	"errors"
	"fmt"

	"healthquest/backend/models"
	"healthquest/backend/utils"

	"gorm.io/gorm"
)

type ProfileService struct {
	db             *gorm.DB
	mailer         utils.Mailer
	alerts         *AlertBus
	dietitianEmail string
}

func NewProfileService(db *gorm.DB, mailer utils.Mailer, alerts *AlertBus, dietitianEmail string) *ProfileService {
	return &ProfileService{db: db, mailer: mailer, alerts: alerts, dietitianEmail: dietitianEmail}
}

// SetupProfile creates the one-and-only profile for a user. Profiles are
// immutable after creation; a second attempt is a conflict.
func (s *ProfileService) SetupProfile(userID, firstName, lastName, age, weight, height, gender string) (map[string]any, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	var existing models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("Profile already exists for the user.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := models.UserProfile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
		Weight:    weight,
		Height:    height,
		Gender:    gender,
		IsActive:  true,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, err
	}

	user.IsProfileSet = true
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"user_id": userID,
		"message": "Profile Setup Successfully",
	}, nil
}

// GetProfile returns the merged account + profile view.
func (s *ProfileService) GetProfile(userID string) (map[string]any, error) {
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User profile not found")
		}
		return nil, err
	}

	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	return map[string]any{
		"message":      "Data fetch successful",
		"user_id":      userID,
		"first_name":   profile.FirstName,
		"last_name":    profile.LastName,
		"email":        user.Email,
		"access_token": user.AccessToken,
		"user_role":    user.UserRole,
		"age":          profile.Age,
		"weight":       profile.Weight,
		"height":       profile.Height,
		"gender":       profile.Gender,
		"is_active":    profile.IsActive,
	}, nil
}

// SendUserQuery raises a dietary query against the user's profile, emails
// an acknowledgment and alerts every dietitian. One active query per user:
// a second submission while one is open is rejected.
func (s *ProfileService) SendUserQuery(userID, allergicToFood, preference, disease, dietPlan, queryMessage string) (map[string]any, error) {
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	var openCount int64
	if err := s.db.Model(&models.UserQuery{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&openCount).Error; err != nil {
		return nil, err
	}
	if openCount > 0 {
		return nil, utils.Conflict("An active query already exists for the user.")
	}

	query := models.UserQuery{
		UserID:         userID,
		FirstName:      profile.FirstName,
		AllergicToFood: allergicToFood,
		Preference:     preference,
		Disease:        disease,
		DietPlan:       dietPlan,
		QueryMessage:   queryMessage,
		Status:         models.QueryStatusPending,
		IsActive:       true,
	}
	if err := s.db.Create(&query).Error; err != nil {
		return nil, err
	}

	fullName := fmt.Sprintf("%s %s", profile.FirstName, profile.LastName)
	subject := "HealthQuest Query Submission"
	body := fmt.Sprintf("<html><body><p>Hi %s,</p><p>Your dietary query has been submitted. A dietitian will get back to you with a plan.</p></body></html>", fullName)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		return nil, err
	}

	if s.alerts != nil {
		var dietitians []models.User
		if err := s.db.Where("user_role = ?", "dietitian").Find(&dietitians).Error; err == nil {
			for _, d := range dietitians {
				s.alerts.Emit(d.UserID, "query.submitted",
					fmt.Sprintf("New dietary query from %s", fullName))
			}
		}
	}

	return map[string]any{
		"dietitian_email": s.dietitianEmail,
		"user_email":      user.Email,
		"user_id":         userID,
		"first_name":      profile.FirstName,
		"message":         "Query submitted successfully!",
	}, nil
}

// GetQueryStatus reports the status of the user's most recent query.
func (s *ProfileService) GetQueryStatus(userID string) (map[string]any, error) {
	var query models.UserQuery
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		First(&query).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No query found for the user")
		}
		return nil, err
	}

	return map[string]any{
		"query_status": query.Status,
		"message":      "User Query Status Retrieved Successfully",
	}, nil
}
