package services

import (
	"time"

	"healthquest/backend/models"

	"gorm.io/gorm"
)

// AlertBus persists an alert row, mirrors it to any open websockets and
// pushes it to registered devices. Hub and push are optional; a nil
// collaborator is skipped.
type AlertBus struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

func NewAlertBus(db *gorm.DB, hub *RealtimeHub, push *PushService) *AlertBus {
	return &AlertBus{db: db, hub: hub, push: push}
}

func (b *AlertBus) Emit(userID, typ, message string) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = b.db.Create(a).Error

	if b.hub != nil {
		b.hub.BroadcastAlert(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.push != nil {
		b.push.PushToUser(userID, "HealthQuest", message, map[string]string{"type": typ})
	}
}
