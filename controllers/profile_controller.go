package controllers

import (
	"healthquest/backend/services"
	"healthquest/backend/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profile *services.ProfileService
}

func NewProfileController(profile *services.ProfileService) *ProfileController {
	return &ProfileController{Profile: profile}
}

type ProfileSetupInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Age       string `json:"age" binding:"required"`
	Weight    string `json:"weight" binding:"required"`
	Height    string `json:"height" binding:"required"`
	Gender    string `json:"gender" binding:"required"`
}

type UserQueryInput struct {
	AllergicToFood string `json:"allergic_to_food"`
	Preference     string `json:"preference" binding:"required"`
	Disease        string `json:"disease"`
	DietPlan       string `json:"diet_plan"`
	QueryMessage   string `json:"query_message"`
}

func (pc *ProfileController) SetupProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var input ProfileSetupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := pc.Profile.SetupProfile(userID, input.FirstName, input.LastName,
		input.Age, input.Weight, input.Height, input.Gender)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	data, err := pc.Profile.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (pc *ProfileController) SendUserQuery(c *gin.Context) {
	userID := c.GetString("userID")

	var input UserQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := pc.Profile.SendUserQuery(userID, input.AllergicToFood,
		input.Preference, input.Disease, input.DietPlan, input.QueryMessage)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (pc *ProfileController) GetQueryStatus(c *gin.Context) {
	userID := c.GetString("userID")

	data, err := pc.Profile.GetQueryStatus(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}
