package config

import (
	"fmt"
	"os"

	"healthquest/backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	JWTSecret      string
	SenderEmail    string
	DietitianEmail string
	AWSRegion      string
	ServerPort     string
}

// Load reads the .env file if present and builds the process config from
// the environment. A missing .env is not fatal so deployments can rely on
// injected env vars alone.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SenderEmail:    os.Getenv("SENDER_EMAIL"),
		DietitianEmail: os.Getenv("DIETITIAN_EMAIL"),
		AWSRegion:      os.Getenv("AWS_REGION"),
		ServerPort:     os.Getenv("SERVER_PORT"),
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	return cfg
}

// Connect opens the Postgres connection and migrates the schema. The
// returned handle is owned by the caller and injected into services; there
// is deliberately no package-level DB.
func Connect(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.UserQuery{},
		&models.DietPlan{},
		&models.DietTracking{},
		&models.UserDevice{},
		&models.Alert{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}
