package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"healthquest/backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.UserQuery{},
		&models.DietPlan{},
		&models.DietTracking{},
		&models.UserDevice{},
		&models.Alert{},
	))
	return db
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// stubMailer records outbound mail; set fail to exercise delivery errors.
type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *stubMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

func seedUser(t *testing.T, db *gorm.DB, userID, email string) *models.User {
	t.Helper()
	user := &models.User{
		UserID:   userID,
		Email:    email,
		Password: "x",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProfile(t *testing.T, db *gorm.DB, userID, height, weight string) *models.UserProfile {
	t.Helper()
	profile := &models.UserProfile{
		UserID:    userID,
		FirstName: "Asha",
		LastName:  "Perera",
		Age:       "29",
		Height:    height,
		Weight:    weight,
		Gender:    "female",
		IsActive:  true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func seedActiveQuery(t *testing.T, db *gorm.DB, userID string) *models.UserQuery {
	t.Helper()
	query := &models.UserQuery{
		UserID:     userID,
		FirstName:  "Asha",
		Preference: "vegetarian",
		Status:     models.QueryStatusPending,
		IsActive:   true,
	}
	require.NoError(t, db.Create(query).Error)
	return query
}

func seedPlan(t *testing.T, db *gorm.DB, userID, duration string) *models.DietPlan {
	t.Helper()
	plan := &models.DietPlan{
		UserID:       userID,
		Breakfast:    "oats",
		Lunch:        "rice and curry",
		Dinner:       "salad",
		WaterIntake:  "2l",
		Exercise:     "30min walk",
		PlanDuration: duration,
		IsActive:     true,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func seedTrackingEntry(t *testing.T, db *gorm.DB, userID, breakfast, lunch, dinner, water, exercise string) {
	t.Helper()
	require.NoError(t, db.Create(&models.DietTracking{
		UserID:      userID,
		Breakfast:   breakfast,
		Lunch:       lunch,
		Dinner:      dinner,
		WaterIntake: water,
		Exercise:    exercise,
	}).Error)
}
