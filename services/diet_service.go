package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"healthquest/backend/models"
	"healthquest/backend/utils"

	"gorm.io/gorm"
)

// DietService owns the plan lifecycle: a dietitian answers an active query
// by authoring a plan, the user then records one yes/no tracking entry per
// day until the plan duration is used up, and progress is aggregated into
// per-field percentage scores.
type DietService struct {
	db     *gorm.DB
	mailer utils.Mailer
	alerts *AlertBus

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDietService(db *gorm.DB, mailer utils.Mailer, alerts *AlertBus) *DietService {
	return &DietService{db: db, mailer: mailer, alerts: alerts, locks: make(map[string]*sync.Mutex)}
}

// userLock serializes progress submissions per user so the count check and
// the insert behave as one atomic step.
func (s *DietService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func parsePlanDuration(raw string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, utils.Validation("plan_duration must be an integer number of days")
	}
	return days, nil
}

// CreateUserPlan persists a plan for the user's active query and resolves
// the query. The two writes share one transaction; the notification email
// goes out after commit and its failure is reported without undoing the
// committed writes.
func (s *DietService) CreateUserPlan(userID, breakfast, lunch, dinner, waterIntake, exercise, planDuration, description string) (map[string]any, error) {
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
	fullName := fmt.Sprintf("%s %s", profile.FirstName, profile.LastName)

	var activeQuery models.UserQuery
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).First(&activeQuery).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No active query found for the user")
		}
		return nil, err
	}

	days, err := parsePlanDuration(planDuration)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, utils.Validation("plan_duration must be at least 1 day")
	}

	plan := models.DietPlan{
		UserID:       userID,
		Breakfast:    breakfast,
		Lunch:        lunch,
		Dinner:       dinner,
		WaterIntake:  waterIntake,
		Exercise:     exercise,
		PlanDuration: planDuration,
		Description:  description,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}

		res := tx.Model(&models.UserQuery{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Updates(map[string]any{
				"is_active":  false,
				"status":     models.QueryStatusResolved,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.NotFound("Failed to find and update user query")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	subject := "HealthQuest Diet Plan"
	body := fmt.Sprintf("<html><body><p>Hi %s,</p><p>Your personalized diet plan is ready. Log in to view it and start tracking your daily progress.</p></body></html>", fullName)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		return nil, err
	}

	if s.alerts != nil {
		s.alerts.Emit(userID, "plan.created", "Your diet plan is ready")
	}

	return map[string]any{
		"email":   user.Email,
		"user_id": userID,
		"message": "Diet Plan created successfully",
	}, nil
}

// GetDietPlan fetches the user's plan.
func (s *DietService) GetDietPlan(userID string) (*models.DietPlan, error) {
	var plan models.DietPlan
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc").First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Diet plan not found")
		}
		return nil, err
	}
	return &plan, nil
}

// SubmitDietProgress appends one day's yes/no record. At most
// plan_duration entries are accepted in total: the check uses >=, so the
// submission that would bring the count past the duration is rejected as
// expired. The count and insert run under a per-user critical section so
// concurrent submissions cannot overshoot the duration.
func (s *DietService) SubmitDietProgress(userID, breakfast, lunch, dinner, waterIntake, exercise string) (map[string]any, error) {
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	var plan models.DietPlan
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc").First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Diet plan not found for the user")
		}
		return nil, err
	}

	days, err := parsePlanDuration(plan.PlanDuration)
	if err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var count int64
	if err := s.db.Model(&models.DietTracking{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count >= int64(days) {
		return nil, utils.Conflict("Diet plan expired")
	}

	entry := models.DietTracking{
		UserID:      userID,
		Breakfast:   breakfast,
		Lunch:       lunch,
		Dinner:      dinner,
		WaterIntake: waterIntake,
		Exercise:    exercise,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"user_id":    userID,
		"created_at": entry.CreatedAt,
		"message":    "Diet progress recorded successfully",
	}, nil
}

// GetUserDietProgress aggregates the tracking entries into per-field
// percentage scores. Note the boundary here is strictly greater-than:
// exactly plan_duration entries are still retrievable even though the same
// count already blocks further submissions.
func (s *DietService) GetUserDietProgress(userID string) (map[string]any, error) {
	var plan models.DietPlan
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc").First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Diet plan not found for the user")
		}
		return nil, err
	}

	days, err := parsePlanDuration(plan.PlanDuration)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, utils.Validation("Invalid plan duration")
	}

	var entries []models.DietTracking
	if err := s.db.Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, utils.NotFound("No diet progress found for the user")
	}
	if len(entries) > days {
		return nil, utils.Conflict("Diet plan expired - no further progress can be tracked")
	}

	totalPossible := float64(days * 100)
	var breakfastAcc, lunchAcc, dinnerAcc, waterAcc, exerciseAcc float64
	for _, e := range entries {
		if strings.EqualFold(e.Breakfast, "yes") {
			breakfastAcc += 100
		}
		if strings.EqualFold(e.Lunch, "yes") {
			lunchAcc += 100
		}
		if strings.EqualFold(e.Dinner, "yes") {
			dinnerAcc += 100
		}
		if strings.EqualFold(e.WaterIntake, "yes") {
			waterAcc += 100
		}
		if strings.EqualFold(e.Exercise, "yes") {
			exerciseAcc += 100
		}
	}

	breakfastPct := breakfastAcc / totalPossible * 100
	lunchPct := lunchAcc / totalPossible * 100
	dinnerPct := dinnerAcc / totalPossible * 100
	waterPct := waterAcc / totalPossible * 100
	exercisePct := exerciseAcc / totalPossible * 100
	overall := (breakfastPct + lunchPct + dinnerPct + waterPct + exercisePct) / 5

	return map[string]any{
		"user_id":                userID,
		"plan_duration":          days,
		"diet_followed_for_days": len(entries),
		"progress": map[string]float64{
			"breakfast":        breakfastPct,
			"lunch":            lunchPct,
			"dinner":           dinnerPct,
			"water_intake":     waterPct,
			"exercise":         exercisePct,
			"overall_progress": overall,
		},
	}, nil
}

// ActiveUserQuery is an active query enriched with the submitter's profile
// and derived BMI.
type ActiveUserQuery struct {
	UserID         string    `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Age            string    `json:"age"`
	Height         string    `json:"height"`
	Weight         string    `json:"weight"`
	Gender         string    `json:"gender"`
	AllergicToFood string    `json:"allergic_to_food"`
	Preference     string    `json:"preference"`
	Disease        string    `json:"disease"`
	DietPlan       string    `json:"diet_plan"`
	QueryMessage   string    `json:"query_message"`
	Status         string    `json:"status"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	BMI            *float64  `json:"bmi"`
	BMICategory    string    `json:"bmi_category,omitempty"`
	BMIError       string    `json:"bmi_error,omitempty"`
}

// GetActiveUserQueries lists every open query for the dietitian dashboard.
// A record whose stored height or weight does not parse keeps a nil BMI
// and carries the error message instead of failing the whole listing.
func (s *DietService) GetActiveUserQueries() ([]ActiveUserQuery, error) {
	var queries []models.UserQuery
	if err := s.db.Where("is_active = ?", true).Find(&queries).Error; err != nil {
		return nil, err
	}
	if len(queries) == 0 {
		return nil, utils.NotFound("No active user queries found")
	}

	enriched := make([]ActiveUserQuery, 0, len(queries))
	for _, q := range queries {
		item := ActiveUserQuery{
			UserID:         q.UserID,
			FirstName:      q.FirstName,
			AllergicToFood: q.AllergicToFood,
			Preference:     q.Preference,
			Disease:        q.Disease,
			DietPlan:       q.DietPlan,
			QueryMessage:   q.QueryMessage,
			Status:         q.Status,
			IsActive:       q.IsActive,
			CreatedAt:      q.CreatedAt,
			UpdatedAt:      q.UpdatedAt,
		}

		var profile models.UserProfile
		if err := s.db.Where("user_id = ?", q.UserID).First(&profile).Error; err == nil {
			item.FirstName = profile.FirstName
			item.LastName = profile.LastName
			item.Age = profile.Age
			item.Height = profile.Height
			item.Weight = profile.Weight
			item.Gender = profile.Gender

			if profile.Height != "" && profile.Weight != "" {
				heightCm, herr := strconv.ParseFloat(strings.TrimSpace(profile.Height), 64)
				weightKg, werr := strconv.ParseFloat(strings.TrimSpace(profile.Weight), 64)
				if herr != nil || werr != nil {
					item.BMIError = "Invalid height or weight for BMI calculation"
					log.Printf("active queries: bad height/weight for user %s", q.UserID)
				} else if bmi, err := utils.CalculateBMI(heightCm, weightKg); err != nil {
					item.BMIError = "Invalid height or weight for BMI calculation"
					log.Printf("active queries: %v for user %s", err, q.UserID)
				} else {
					item.BMI = &bmi
					item.BMICategory = utils.BMICategory(bmi)
				}
			}
		}

		enriched = append(enriched, item)
	}
	return enriched, nil
}
