package controllers

import (
	"healthquest/backend/services"
	"healthquest/backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := ac.Auth.Register(input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var input VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := ac.Auth.VerifyOTP(input.Email, input.OTP)
	if err != nil {
		status := utils.StatusOf(err)
		c.JSON(status, Response{
			Data:    gin.H{"is_active": false},
			Success: false,
			Message: err.Error(),
			Status:  status,
		})
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := ac.Auth.Login(input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := ac.Auth.ForgotPassword(input.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, utils.Validation(err.Error()))
		return
	}

	data, err := ac.Auth.ResetPassword(input.Email, input.OTP, input.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, _ := data["message"].(string)
	delete(data, "message")
	respondOK(c, data, msg)
}
