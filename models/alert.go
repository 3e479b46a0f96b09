package models

import "time"

type Alert struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Type      string `gorm:"size:32"` // "query.submitted" | "plan.created"
	Message   string `gorm:"type:text"`
	CreatedAt time.Time
}
