package controllers

import (
	"healthquest/backend/services"
	"healthquest/backend/utils"

	"github.com/gin-gonic/gin"
)

type DietController struct {
	Diet *services.DietService
}

func NewDietController(diet *services.DietService) *DietController {
	return &DietController{Diet: diet}
}

type CreatePlanInput struct {
	UserID       string `json:"user_id" binding:"required"`
	Breakfast    string `json:"breakfast" binding:"required"`
	Lunch        string `json:"lunch" binding:"required"`
	Dinner       string `json:"dinner" binding:"required"`
	WaterIntake  string `json:"water_intake" binding:"required"`
	Exercise     string `json:"exercise" binding:"required"`
	PlanDuration string `json:"plan_duration" binding:"required"`
	Description  string `json:"description"`
}

type DietProgressInput struct {
	Breakfast   string `json:"breakfast" binding:"required"`
	Lunch       string `json:"lunch" binding:"required"`
	Dinner      string `json:"dinner" binding:"required"`
	WaterIntake string `json:"water_intake" binding:"required"`
	Exercise    string `json:"exercise" binding:"required"`
}

// CreatePlan is the dietitian's answer to an active user query.
func (dc *DietController) CreatePlan(c *gin.Context) {
	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := dc.Diet.CreateUserPlan(input.UserID, input.Breakfast, input.Lunch,
		input.Dinner, input.WaterIntake, input.Exercise, input.PlanDuration, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (dc *DietController) GetDietPlan(c *gin.Context) {
	userID := c.GetString("userID")

	plan, err := dc.Diet.GetDietPlan(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, plan, "Diet plan fetched successfully")
}

func (dc *DietController) SubmitProgress(c *gin.Context) {
	userID := c.GetString("userID")

	var input DietProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := dc.Diet.SubmitDietProgress(userID, input.Breakfast, input.Lunch,
		input.Dinner, input.WaterIntake, input.Exercise)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (dc *DietController) GetProgress(c *gin.Context) {
	userID := c.GetString("userID")

	data, err := dc.Diet.GetUserDietProgress(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, data, "Diet progress fetched successfully")
}

// GetActiveQueries backs the dietitian dashboard.
func (dc *DietController) GetActiveQueries(c *gin.Context) {
	queries, err := dc.Diet.GetActiveUserQueries()
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, queries, "Active user queries fetched successfully")
}
