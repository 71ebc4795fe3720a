package config

import (
	"fmt"
	"os"

	"github.com/gorilla/sessions"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB    *gorm.DB
	Store = sessions.NewCookieStore([]byte(sessionSecret()))
)

func sessionSecret() string {
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		return secret
	}
	return "something-very-secret"
}

// InitDB opens the database selected by DB_DRIVER. Postgres is the
// production driver; sqlite keeps local development self-contained.
func InitDB() error {
	var err error

	switch os.Getenv("DB_DRIVER") {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "unimatch.db"
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"))
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	return nil
}
