package controllers

import (
	"net/http"

	"healthquest/backend/models"
	"healthquest/backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DeviceController struct {
	Push *services.PushService
	DB   *gorm.DB
}

func NewDeviceController(ps *services.PushService, db *gorm.DB) *DeviceController {
	return &DeviceController{Push: ps, DB: db}
}

func (dc *DeviceController) Register(c *gin.Context) {
	userID := c.GetString("userID")

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(userID, req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"endpoint_arn": dev.EndpointARN})
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// ToggleNotifications flips push delivery for every device the user owns.
func (dc *DeviceController) ToggleNotifications(c *gin.Context) {
	userID := c.GetString("userID")

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := dc.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", req.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
