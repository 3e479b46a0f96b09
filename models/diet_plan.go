package models

import (
	"gorm.io/gorm"
)

// DietPlan is authored by a dietitian in response to a resolved query.
// PlanDuration is stored as text (it arrives as a string field) and is
// parsed to an integer day count wherever it is consumed; creation rejects
// anything that does not parse to a positive integer.
type DietPlan struct {
	gorm.Model
	UserID       string `gorm:"index;not null"`
	Breakfast    string `gorm:"type:text"`
	Lunch        string `gorm:"type:text"`
	Dinner       string `gorm:"type:text"`
	WaterIntake  string
	Exercise     string `gorm:"type:text"`
	PlanDuration string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	IsActive     bool   `gorm:"default:true"`
}

// DietTracking holds one day's yes/no record against the five tracked
// plan dimensions. Rows are append-only; the per-user row count is
// compared against the plan duration to gate further submissions.
type DietTracking struct {
	gorm.Model
	UserID      string `gorm:"index;not null"`
	Breakfast   string `gorm:"size:8"`
	Lunch       string `gorm:"size:8"`
	Dinner      string `gorm:"size:8"`
	WaterIntake string `gorm:"size:8"`
	Exercise    string `gorm:"size:8"`
}
