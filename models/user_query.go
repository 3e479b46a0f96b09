package models

import (
	"gorm.io/gorm"
)

// Query status is a closed enum: a query starts pending and becomes
// resolved when a dietitian creates a plan for it.
const (
	QueryStatusPending  = "pending"
	QueryStatusResolved = "resolved"
)

type UserQuery struct {
	gorm.Model
	UserID         string `gorm:"index;not null"`
	DietitianID    string
	FirstName      string
	AllergicToFood string
	Preference     string `gorm:"not null"`
	Disease        string
	DietPlan       string `gorm:"type:text"`
	QueryMessage   string `gorm:"type:text"`
	Status         string `gorm:"size:16;default:pending"`
	IsActive       bool   `gorm:"default:true"`
}
