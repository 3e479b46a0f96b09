package routes

import (
	"healthquest/backend/controllers"
	"healthquest/backend/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Profile  *controllers.ProfileController
	Diet     *controllers.DietController
	Device   *controllers.DeviceController
	Realtime *controllers.RealtimeController
}

func SetupRouter(db *gorm.DB, jwtSecret string, ctrl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/registration", ctrl.Auth.Register)
		auth.POST("/verify-otp", ctrl.Auth.VerifyOTP)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/password-forget", ctrl.Auth.ForgotPassword)
		auth.POST("/password-reset", ctrl.Auth.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware(db, jwtSecret))
	{
		user.POST("/profile-setup", ctrl.Profile.SetupProfile)
		user.GET("/profile", ctrl.Profile.GetProfile)
		user.POST("/user-query", ctrl.Profile.SendUserQuery)
		user.GET("/query-status", ctrl.Profile.GetQueryStatus)
		user.GET("/diet-plan", ctrl.Diet.GetDietPlan)
		user.POST("/diet-progress", ctrl.Diet.SubmitProgress)
		user.GET("/diet-progress", ctrl.Diet.GetProgress)
		if ctrl.Device != nil {
			user.POST("/devices/register", ctrl.Device.Register)
			user.POST("/notifications/toggle", ctrl.Device.ToggleNotifications)
		}
		if ctrl.Realtime != nil {
			user.GET("/ws/alerts", ctrl.Realtime.AlertsWS)
		}
	}

	// Dietitian workflow
	dietitian := r.Group("/dietitian")
	dietitian.Use(middlewares.AuthMiddleware(db, jwtSecret), middlewares.RequireRole("dietitian"))
	{
		dietitian.POST("/create-plan", ctrl.Diet.CreatePlan)
		dietitian.GET("/user-queries", ctrl.Diet.GetActiveQueries)
	}

	return r
}
