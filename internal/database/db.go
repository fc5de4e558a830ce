package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/talentgate/resume-screener/internal/models"
)

// Connect opens the Postgres connection and runs migrations. TranslateError
// is on so a unique-constraint violation surfaces as gorm.ErrDuplicatedKey,
// which the submission service maps to the duplicate_detected outcome.
func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	if err := db.AutoMigrate(&models.Posting{}, &models.Submission{}, &models.ScoringResult{}); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return db
}
