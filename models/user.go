package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID       string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	OTP          string
	OTPCreatedAt time.Time
	UserRole     string `gorm:"size:16;default:user"`
	AccessToken  string `gorm:"type:text"`
	IsProfileSet bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:false"`
}
