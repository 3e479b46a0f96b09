package models

import (
	"gorm.io/gorm"
)

// UserProfile is created once per user and never updated in the current
// flows. Age, weight and height are kept as strings exactly as submitted;
// numeric parsing happens where the values are consumed (BMI enrichment).
type UserProfile struct {
	gorm.Model
	UserID    string `gorm:"uniqueIndex;not null"`
	FirstName string
	LastName  string
	Age       string
	Weight    string
	Height    string
	Gender    string
	IsActive  bool `gorm:"default:true"`
}
