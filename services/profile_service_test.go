package services

import (
	"testing"

	"healthquest/backend/models"
	"healthquest/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupProfile_OncePerUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, &stubMailer{}, nil, "dietitian@healthquest.io")

	seedUser(t, db, "u1", "asha@example.com")

	data, err := svc.SetupProfile("u1", "Asha", "Perera", "29", "70", "170", "female")
	require.NoError(t, err)
	assert.Equal(t, "u1", data["user_id"])

	var user models.User
	require.NoError(t, db.Where("user_id = ?", "u1").First(&user).Error)
	assert.True(t, user.IsProfileSet)

	_, err = svc.SetupProfile("u1", "Asha", "Perera", "29", "70", "170", "female")
	require.Error(t, err)
	assert.Equal(t, 409, utils.StatusOf(err))
	assert.EqualError(t, err, "Profile already exists for the user.")
}

func TestSetupProfile_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, &stubMailer{}, nil, "dietitian@healthquest.io")

	_, err := svc.SetupProfile("ghost", "A", "B", "20", "60", "160", "male")
	require.Error(t, err)
	assert.Equal(t, 404, utils.StatusOf(err))
}

func TestGetProfile_MergesAccountAndProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, &stubMailer{}, nil, "dietitian@healthquest.io")

	seedUser(t, db, "u1", "asha@example.com")
	seedProfile(t, db, "u1", "170", "70")

	data, err := svc.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", data["email"])
	assert.Equal(t, "Asha", data["first_name"])
	assert.Equal(t, "170", data["height"])
	assert.Equal(t, "70", data["weight"])
}

func TestSendUserQuery_RequiresProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, &stubMailer{}, nil, "dietitian@healthquest.io")

	_, err := svc.SendUserQuery("ghost", "", "vegetarian", "", "", "help")
	require.Error(t, err)
	assert.Equal(t, 404, utils.StatusOf(err))
}

func TestSendUserQuery_CreatesPendingQueryAndEmails(t *testing.T) {
	db := setupTestDB(t)
	mailer := &stubMailer{}
	svc := NewProfileService(db, mailer, nil, "dietitian@healthquest.io")

	seedUser(t, db, "u1", "asha@example.com")
	seedProfile(t, db, "u1", "170", "70")

	data, err := svc.SendUserQuery("u1", "peanuts", "vegetarian", "diabetes", "", "need a plan")
	require.NoError(t, err)
	assert.Equal(t, "dietitian@healthquest.io", data["dietitian_email"])
	assert.Equal(t, "asha@example.com", data["user_email"])

	var query models.UserQuery
	require.NoError(t, db.Where("user_id = ?", "u1").First(&query).Error)
	assert.Equal(t, models.QueryStatusPending, query.Status)
	assert.True(t, query.IsActive)
	assert.Equal(t, "peanuts", query.AllergicToFood)

	require.Equal(t, 1, mailer.count())
	assert.Equal(t, "asha@example.com", mailer.last().To)
}

func TestSendUserQuery_SingleActiveQuery(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, &stubMailer{}, nil, "dietitian@healthquest.io")

	seedUser(t, db, "u1", "asha@example.com")
	seedProfile(t, db, "u1", "170", "70")

	_, err := svc.SendUserQuery("u1", "", "vegetarian", "", "", "first")
	require.NoError(t, err)

	_, err = svc.SendUserQuery("u1", "", "vegetarian", "", "", "second")
	require.Error(t, err)
	assert.Equal(t, 409, utils.StatusOf(err))
	assert.EqualError(t, err, "An active query already exists for the user.")
}

func TestGetQueryStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, &stubMailer{}, nil, "dietitian@healthquest.io")

	_, err := svc.GetQueryStatus("ghost")
	require.Error(t, err)
	assert.Equal(t, 404, utils.StatusOf(err))

	seedActiveQuery(t, db, "u1")
	data, err := svc.GetQueryStatus("u1")
	require.NoError(t, err)
	assert.Equal(t, models.QueryStatusPending, data["query_status"])
}
