package main

import (
	"log"

	"healthquest/backend/config"
	"healthquest/backend/controllers"
	"healthquest/backend/routes"
	"healthquest/backend/services"
	"healthquest/backend/utils"
)

func main() {
	cfg := config.Load()

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	mailer, err := utils.NewSESMailer(cfg.AWSRegion, cfg.SenderEmail)
	if err != nil {
		log.Fatalf("mailer init failed: %v", err)
	}

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(db, cfg.AWSRegion)
	if err != nil {
		log.Printf("push init failed, continuing without push: %v", err)
		push = nil
	}

	alerts := services.NewAlertBus(db, hub, push)

	authSvc := services.NewAuthService(db, mailer, cfg.JWTSecret)
	profileSvc := services.NewProfileService(db, mailer, alerts, cfg.DietitianEmail)
	dietSvc := services.NewDietService(db, mailer, alerts)

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Profile:  controllers.NewProfileController(profileSvc),
		Diet:     controllers.NewDietController(dietSvc),
		Realtime: controllers.NewRealtimeController(hub),
	}
	if push != nil {
		ctrl.Device = controllers.NewDeviceController(push, db)
	}

	r := routes.SetupRouter(db, cfg.JWTSecret, ctrl)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
