package controllers

import (
	"net/http"

	"healthquest/backend/utils"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope: every reply carries the payload, a
// success flag, a human message and the numeric status.
type Response struct {
	Data    any    `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Response{
		Data:    data,
		Success: true,
		Message: message,
		Status:  http.StatusOK,
	})
}

func respondError(c *gin.Context, err error) {
	status := utils.StatusOf(err)
	c.JSON(status, Response{
		Data:    nil,
		Success: false,
		Message: err.Error(),
		Status:  status,
	})
}
